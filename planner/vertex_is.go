package planner

import "github.com/mereth/vertexdb/ir"

// isVertex plans an Is (variable equality) pattern.
type isVertex struct {
	id      ir.PatternID
	pattern *ir.Is
}

func (v *isVertex) ID() VertexID { return PatVertex(v.id) }

// IsValid requires exactly one side already ordered — the other is the
// side this pattern produces (spec 4.3: "Is additionally requires exactly
// one side be already ordered").
func (v *isVertex) IsValid(f *Frontier, g *Graph) bool {
	left := f.VariableOrdered(v.pattern.Left)
	right := f.VariableOrdered(v.pattern.Right)
	return left != right
}

// CostAndMetadata returns a fixed simple cost; equating to an
// already-known value yields exactly one row per input (spec 4.3:
// "is, comparisons return a fixed simple/complex cost"). The unordered
// side, if any, is reported as the produced sort variable.
func (v *isVertex) CostAndMetadata(f *Frontier, g *Graph) (CombinedCost, CostMetadata, error) {
	meta := CostMetadata{}
	if !f.VariableOrdered(v.pattern.Right) {
		meta.HasSortVariable = true
		meta.SortVariable = v.pattern.Right
	} else if !f.VariableOrdered(v.pattern.Left) {
		meta.HasSortVariable = true
		meta.SortVariable = v.pattern.Left
	}
	return CombinedCost{Cost: SimpleOpCostLow, IORatio: 1}, meta, nil
}
