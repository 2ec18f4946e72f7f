package planner

import "github.com/mereth/vertexdb/ir"

// GreedySearch builds a plan by repeatedly choosing the valid, unplaced
// pattern with the cheapest marginal cost, breaking ties by ascending
// PatternID (spec 4.4, spec 8 invariant 7: deterministic tie-break). It
// never backtracks, so it is O(patterns^2) in the worst case. It runs only
// when Options.Strategy is StrategyGreedy; PlanConjunction does not switch
// to it on its own.
func GreedySearch(g *Graph) (*Plan, error) {
	frontier := seedFrontier(g)
	order := append([]VertexID(nil), frontier.Order()...)
	metadata := make(map[VertexID]CostMetadata)
	total := CombinedCost{Cost: 0, IORatio: 1}

	remaining := make(map[ir.PatternID]bool)
	for _, id := range g.AllPatternIDs() {
		remaining[id] = true
	}

	for len(remaining) > 0 {
		bestID, bestCost, bestMeta, found := pickCheapestValid(g, frontier, remaining)
		if !found {
			return nil, emptyPlanSpace("no valid pattern placement given %d remaining", len(remaining))
		}

		total = total.Chain(bestCost)
		order = append(order, PatVertex(bestID))
		metadata[PatVertex(bestID)] = bestMeta

		pat, _ := g.Pattern(bestID)
		fresh := newlyBoundVariables(pat, frontier)
		frontier = frontier.Extend(PatVertex(bestID))
		for _, v := range fresh {
			frontier = frontier.Extend(VarVertex(v))
			order = append(order, VarVertex(v))
		}
		delete(remaining, bestID)
	}

	return &Plan{Graph: g, Order: order, Cost: total, Metadata: metadata}, nil
}

// seedFrontier returns a frontier containing every Input-origin variable,
// in ascending id order, as the starting point for search (spec 4.2: input
// variables are bound before planning begins).
func seedFrontier(g *Graph) *Frontier {
	var inputs []ir.VariableID
	for _, id := range g.AllVariableIDs() {
		v, ok := g.Variable(id)
		if ok && v.Origin == ir.OriginInput {
			inputs = append(inputs, id)
		}
	}
	inputs = sortedVariableIDs(inputs)
	order := make([]VertexID, len(inputs))
	for i, id := range inputs {
		order[i] = VarVertex(id)
	}
	return NewFrontier(order)
}

// pickCheapestValid scans every remaining pattern, in ascending PatternID
// order, and returns the cheapest one valid against frontier. Iterating in
// ascending order and only replacing the best on a strict improvement
// implements the ascending-PatternID tie-break.
func pickCheapestValid(g *Graph, frontier *Frontier, remaining map[ir.PatternID]bool) (ir.PatternID, CombinedCost, CostMetadata, bool) {
	var (
		bestID   ir.PatternID
		bestCost CombinedCost
		bestMeta CostMetadata
		found    bool
	)
	for _, id := range g.AllPatternIDs() {
		if !remaining[id] {
			continue
		}
		vertex := g.Vertex(PatVertex(id))
		if !vertex.IsValid(frontier, g) {
			continue
		}
		cost, meta, err := vertex.CostAndMetadata(frontier, g)
		if err != nil {
			continue
		}
		traceOf(g).ConsideredPattern(id, cost)
		if !found || cost.Less(bestCost) {
			bestID, bestCost, bestMeta, found = id, cost, meta, true
		}
	}
	if found {
		traceOf(g).ChoseVertex(PatVertex(bestID), bestCost)
	}
	return bestID, bestCost, bestMeta, found
}

// traceOf returns g's configured Trace, or NoopTrace if none was set.
func traceOf(g *Graph) Trace {
	if g.Options.Trace == nil {
		return NoopTrace{}
	}
	return g.Options.Trace
}
