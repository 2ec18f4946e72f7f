package planner

import "github.com/mereth/vertexdb/ir"

// negationVertex plans a Negation pattern. Its sub-conjunction is planned
// once, at construction (i.e. at the owning graph's Seal time), against the
// captured variables as that sub-plan's sole inputs; the cached sub-plan's
// total cost is what search sees as this vertex's marginal cost (spec 4.3:
// "the negated sub-plan is pre-planned at construction and its cached cost
// is returned"). A negation only checks for the absence of rows, so it
// never produces new bindings: io_ratio is always 1.
type negationVertex struct {
	id      ir.PatternID
	pattern *ir.Negation
	plan    *Plan
}

// newNegationVertex builds and pre-plans a negation vertex. The body
// conjunction is planned in its own sub-graph, sharing the outer graph's
// registry/annotations/statistics/options (variable ids are allocated from
// one global space, so the sub-graph resolves captured variables'
// categories from the same registry).
func newNegationVertex(g *Graph, n *ir.Negation) (PlannerVertex, error) {
	plan, _, err := PlanConjunction(n.Body, n.Captured, g.Registry, g.Annotations, g.Stats, g.Options)
	if err != nil {
		return nil, err
	}
	return &negationVertex{id: n.ID(), pattern: n, plan: plan}, nil
}

func (v *negationVertex) ID() VertexID { return PatVertex(v.id) }

// IsValid requires every captured variable to already be ordered (spec
// 4.3): a negation checks a condition over values the outer plan has
// already produced.
func (v *negationVertex) IsValid(f *Frontier, g *Graph) bool {
	return allOrdered(f, v.pattern.Captured)
}

// CostAndMetadata returns the pre-planned sub-plan's cost, unchanged
// regardless of the outer frontier (it was fixed at construction time),
// with an io_ratio of 1.
func (v *negationVertex) CostAndMetadata(f *Frontier, g *Graph) (CombinedCost, CostMetadata, error) {
	return CombinedCost{Cost: v.plan.Cost.Cost, IORatio: 1}, CostMetadata{NegationPlan: v.plan}, nil
}
