package planner

import (
	"sort"

	"github.com/mereth/vertexdb/ir"
)

// beamState is one partial plan carried through BeamSearch: an ordering
// prefix, the frontier it implies, its accumulated cost, and the patterns
// still unplaced. stepVar/stepRatio track the currently open step's join
// variable and the io_ratio contributed by that step alone, so a later
// joinable extension can apply JoinReduce against just the step's own
// contribution rather than the whole plan's cumulative ratio (spec 4.5).
type beamState struct {
	order     []VertexID
	frontier  *Frontier
	cost      CombinedCost
	metadata  map[VertexID]CostMetadata
	remaining map[ir.PatternID]bool

	stepHasVar bool
	stepVar    ir.VariableID
	stepRatio  float64
}

func (s *beamState) complete() bool { return len(s.remaining) == 0 }

func (s *beamState) clone() *beamState {
	remaining := make(map[ir.PatternID]bool, len(s.remaining))
	for k, v := range s.remaining {
		remaining[k] = v
	}
	metadata := make(map[VertexID]CostMetadata, len(s.metadata))
	for k, v := range s.metadata {
		metadata[k] = v
	}
	return &beamState{
		order:      append([]VertexID(nil), s.order...),
		frontier:   s.frontier,
		cost:       s.cost,
		metadata:   metadata,
		remaining:  remaining,
		stepHasVar: s.stepHasVar,
		stepVar:    s.stepVar,
		stepRatio:  s.stepRatio,
	}
}

// candidate is one valid extension of a beam state, scored by its marginal
// cost.
type candidate struct {
	id   ir.PatternID
	cost CombinedCost
	meta CostMetadata
}

// extend applies candidate c to state s, returning the resulting child
// state. A candidate "joins" the currently open step when it shares that
// step's join variable (spec 4.5): a joining Comparison is absorbed at
// zero marginal cost, a joining Constraint reduces the step's io_ratio via
// JoinReduce against the join variable's estimated cardinality. Any other
// extension finalizes the open step and starts a fresh one at the
// candidate's own produced variable, if it has one.
func extend(g *Graph, s *beamState, c candidate) *beamState {
	child := s.clone()
	pat, _ := g.Pattern(c.id)
	fresh := newlyBoundVariables(pat, s.frontier)

	_, isComparison := pat.(*ir.Comparison)
	var joins bool
	if isComparison {
		// A comparison has nothing of its own to "produce"; it joins the
		// open step whenever it constrains the step's join variable, and
		// is then absorbed for free rather than costed as its own scan
		// (spec 4.5).
		joins = s.stepHasVar && touchesVariable(pat, s.stepVar)
	} else {
		joins = s.stepHasVar && c.meta.HasSortVariable && c.meta.SortVariable == s.stepVar
	}
	if isComparison && joins {
		// Absorbed into the scan: no marginal cost, plan cost unchanged.
	} else if joins {
		joinSize := joinSizeEstimate(g, s.stepVar)
		joined := JoinReduce(CombinedCost{Cost: 0, IORatio: s.stepRatio}, c.cost, joinSize)
		child.cost = CombinedCost{
			Cost:    s.cost.Cost + c.cost.Cost,
			IORatio: clampIORatio(s.cost.IORatio / s.stepRatio * joined.IORatio),
		}
		child.stepRatio = joined.IORatio
	} else {
		child.cost = s.cost.Chain(c.cost)
		child.stepHasVar = c.meta.HasSortVariable
		child.stepVar = c.meta.SortVariable
		child.stepRatio = c.cost.IORatio
	}

	child.frontier = child.frontier.Extend(PatVertex(c.id))
	child.order = append(child.order, PatVertex(c.id))
	child.metadata[PatVertex(c.id)] = c.meta
	for _, v := range fresh {
		child.frontier = child.frontier.Extend(VarVertex(v))
		child.order = append(child.order, VarVertex(v))
	}
	delete(child.remaining, c.id)
	return child
}

// BeamSearch builds a plan by maintaining up to Options.BeamWidth partial
// plans, at each depth extending each one by up to Options.ExtensionWidth
// of its cheapest valid next patterns, then keeping only the BeamWidth
// cheapest resulting partial plans (spec 4.5, spec 6). It returns the
// complete plan with the lowest total cost.
func BeamSearch(g *Graph) (*Plan, error) {
	width := g.Options.BeamWidth
	if width <= 0 {
		width = DefaultOptions().BeamWidth
	}
	extWidth := g.Options.ExtensionWidth
	if extWidth <= 0 {
		extWidth = DefaultOptions().ExtensionWidth
	}

	remaining := make(map[ir.PatternID]bool)
	for _, id := range g.AllPatternIDs() {
		remaining[id] = true
	}
	frontier := seedFrontier(g)
	states := []*beamState{{
		order:     append([]VertexID(nil), frontier.Order()...),
		frontier:  frontier,
		cost:      CombinedCost{Cost: 0, IORatio: 1},
		metadata:  map[VertexID]CostMetadata{},
		remaining: remaining,
	}}

	for depth := 0; depth < len(remaining); depth++ {
		if allComplete(states) {
			break
		}
		var next []*beamState
		for _, s := range states {
			if s.complete() {
				next = append(next, s)
				continue
			}
			candidates := topCandidates(g, s, extWidth)
			for _, c := range candidates {
				next = append(next, extend(g, s, c))
			}
		}
		if len(next) == 0 {
			return nil, emptyPlanSpace("beam search exhausted with %d patterns unplaced", len(states[0].remaining))
		}
		// Stable: next was appended in (state, candidate) order, and
		// candidates are themselves tie-broken by ascending PatternID
		// (topCandidates), so a stable sort here keeps the whole frontier
		// deterministic on cost ties (spec 8, invariant 7).
		sort.SliceStable(next, func(i, j int) bool { return next[i].cost.Less(next[j].cost) })
		if len(next) > width {
			next = next[:width]
		}
		states = next
	}

	var best *beamState
	for _, s := range states {
		if !s.complete() {
			continue
		}
		if best == nil || s.cost.Less(best.cost) {
			best = s
		}
	}
	if best == nil {
		return nil, emptyPlanSpace("beam search produced no complete plan")
	}
	return &Plan{Graph: g, Order: best.order, Cost: best.cost, Metadata: best.metadata}, nil
}

// touchesVariable reports whether pat references id among its variables.
func touchesVariable(pat ir.Pattern, id ir.VariableID) bool {
	for _, v := range pat.Variables() {
		if v == id {
			return true
		}
	}
	return false
}

func allComplete(states []*beamState) bool {
	for _, s := range states {
		if !s.complete() {
			return false
		}
	}
	return true
}

// topCandidates returns up to limit valid next-pattern extensions of s,
// sorted cheapest first.
func topCandidates(g *Graph, s *beamState, limit int) []candidate {
	var out []candidate
	for _, id := range g.AllPatternIDs() {
		if !s.remaining[id] {
			continue
		}
		vertex := g.Vertex(PatVertex(id))
		if !vertex.IsValid(s.frontier, g) {
			continue
		}
		cost, meta, err := vertex.CostAndMetadata(s.frontier, g)
		if err != nil {
			continue
		}
		traceOf(g).ConsideredPattern(id, cost)
		out = append(out, candidate{id: id, cost: cost, meta: meta})
	}
	// out was built from g.AllPatternIDs() in ascending order; a stable
	// sort keeps cost ties broken by ascending PatternID (spec 4.4's
	// "Ties: f64::total_cmp on cost", spec 8 invariant 7: determinism).
	sort.SliceStable(out, func(i, j int) bool { return out[i].cost.Less(out[j].cost) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
