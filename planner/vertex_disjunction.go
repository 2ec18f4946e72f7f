package planner

import (
	"sync"

	"github.com/mereth/vertexdb/ir"
)

// disjunctionVertex plans a Disjunction pattern: each branch is planned
// independently against the same captured input set, and the branch costs
// are combined as parallel alternatives (spec 4.3, 4.6): branch costs and
// io_ratios are summed, since every branch is evaluated and the union of
// their rows is produced.
//
// Branch plans depend only on the captured variables, which are fixed at
// registration time and don't vary with the outer frontier beyond all being
// ordered, so they're computed once and memoized rather than replanned on
// every search candidate check.
type disjunctionVertex struct {
	id      ir.PatternID
	pattern *ir.Disjunction

	once     sync.Once
	branches []*Plan
	planErr  error
}

func (v *disjunctionVertex) ID() VertexID { return PatVertex(v.id) }

// IsValid requires every captured variable to already be ordered (spec
// 4.3), mirroring negation.
func (v *disjunctionVertex) IsValid(f *Frontier, g *Graph) bool {
	return allOrdered(f, v.pattern.Captured)
}

func (v *disjunctionVertex) planBranches(g *Graph) {
	v.branches = make([]*Plan, 0, len(v.pattern.Branches))
	for _, branch := range v.pattern.Branches {
		plan, _, err := PlanConjunction(branch, v.pattern.Captured, g.Registry, g.Annotations, g.Stats, g.Options)
		if err != nil {
			v.planErr = err
			return
		}
		v.branches = append(v.branches, plan)
	}
}

// CostAndMetadata plans every branch (once) and combines their costs via
// ParallelCombine (spec 4.3).
func (v *disjunctionVertex) CostAndMetadata(f *Frontier, g *Graph) (CombinedCost, CostMetadata, error) {
	v.once.Do(func() { v.planBranches(g) })
	if v.planErr != nil {
		return CombinedCost{}, CostMetadata{}, v.planErr
	}
	if len(v.branches) == 0 {
		return CombinedCost{}, CostMetadata{}, emptyPlanSpace("disjunction %s has no branches", v.id)
	}
	costs := make([]CombinedCost, len(v.branches))
	for i, p := range v.branches {
		costs[i] = p.Cost
	}
	return ParallelCombine(costs), CostMetadata{DisjunctionBranches: v.branches}, nil
}
