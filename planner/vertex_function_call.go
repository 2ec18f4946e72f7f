package planner

import "github.com/mereth/vertexdb/ir"

// functionCallVertex plans a FunctionCall pattern.
type functionCallVertex struct {
	id      ir.PatternID
	pattern *ir.FunctionCall
}

func (v *functionCallVertex) ID() VertexID { return PatVertex(v.id) }

// IsValid requires every argument to already be ordered (spec 4.3).
func (v *functionCallVertex) IsValid(f *Frontier, g *Graph) bool {
	return allOrdered(f, v.pattern.Arguments)
}

// CostAndMetadata returns the placeholder function-call cost (spec 9,
// Open Question (i): the reference defaults this to 1.0 pending real
// per-function costing). io_ratio is 1: a function call is assumed to
// bind its outputs deterministically from its arguments unless a richer
// cost source says otherwise.
func (v *functionCallVertex) CostAndMetadata(f *Frontier, g *Graph) (CombinedCost, CostMetadata, error) {
	return CombinedCost{Cost: DefaultFunctionCallCost, IORatio: 1}, CostMetadata{}, nil
}
