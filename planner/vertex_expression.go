package planner

import "github.com/mereth/vertexdb/ir"

// expressionVertex plans an Expression (pure N-input, 1-output
// computation) pattern.
type expressionVertex struct {
	id      ir.PatternID
	pattern *ir.Expression
}

func (v *expressionVertex) ID() VertexID { return PatVertex(v.id) }

// IsValid requires all inputs to already be ordered (spec 4.3).
func (v *expressionVertex) IsValid(f *Frontier, g *Graph) bool {
	return allOrdered(f, v.pattern.Inputs)
}

// CostAndMetadata returns a fixed simple cost; a pure computation yields
// exactly one output row per input (spec 4.3).
func (v *expressionVertex) CostAndMetadata(f *Frontier, g *Graph) (CombinedCost, CostMetadata, error) {
	return CombinedCost{Cost: SimpleOpCostLow, IORatio: 1}, CostMetadata{}, nil
}
