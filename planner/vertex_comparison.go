package planner

import "github.com/mereth/vertexdb/ir"

// comparisonVertex plans a Comparison pattern.
type comparisonVertex struct {
	id      ir.PatternID
	pattern *ir.Comparison
}

func (v *comparisonVertex) ID() VertexID { return PatVertex(v.id) }

// IsValid: at least one participating variable must already be ordered,
// or the comparison is free (no variable operands at all) (spec 4.3).
func (v *comparisonVertex) IsValid(f *Frontier, g *Graph) bool {
	vars := v.pattern.Variables()
	if len(vars) == 0 {
		return true
	}
	return anyOrdered(f, vars)
}

// CostAndMetadata returns a fixed simple cost. When both operands are
// already bound, the comparison behaves as a filter and its io_ratio
// reflects the operator's typical selectivity; when only one side is
// bound it cannot yet filter anything, so io_ratio stays 1 (spec 4.3:
// "comparisons return a fixed simple/complex cost"; selectivity shaping
// beyond the bare fixed cost is this implementation's extension).
func (v *comparisonVertex) CostAndMetadata(f *Frontier, g *Graph) (CombinedCost, CostMetadata, error) {
	vars := v.pattern.Variables()
	ratio := 1.0
	if len(vars) == 0 || allOrdered(f, vars) {
		ratio = comparisonSelectivity(v.pattern.Op)
	}
	return CombinedCost{Cost: SimpleOpCostLow, IORatio: clampIORatio(ratio)}, CostMetadata{}, nil
}

// comparisonSelectivity estimates the fraction of rows an already-bound
// comparison passes.
func comparisonSelectivity(op ir.CompareOp) float64 {
	switch op {
	case ir.OpEQ:
		return 0.1
	case ir.OpNEQ:
		return 0.9
	case ir.OpLT, ir.OpLTE, ir.OpGT, ir.OpGTE:
		return 0.33
	default:
		return 1.0
	}
}
