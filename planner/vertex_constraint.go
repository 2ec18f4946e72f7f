package planner

import (
	"github.com/mereth/vertexdb/internal/schema"
	"github.com/mereth/vertexdb/internal/stats"
	"github.com/mereth/vertexdb/ir"
)

// constraintVertex plans a Constraint pattern: isa/has/links/sub/owns/
// plays/relates/iid, and the unary type-list filters (label/kind/
// role_name/value). Binary kinds compute both canonical and reverse
// traversal costs and pick the cheaper (spec 4.3).
type constraintVertex struct {
	id      ir.PatternID
	pattern *ir.Constraint
}

func newConstraintVertex(g *Graph, c *ir.Constraint) (PlannerVertex, error) {
	return &constraintVertex{id: c.ID(), pattern: c}, nil
}

func (v *constraintVertex) ID() VertexID { return PatVertex(v.id) }

// IsValid: at least one participating variable must already be ordered,
// or the constraint is free (no variables) (spec 4.3).
func (v *constraintVertex) IsValid(f *Frontier, g *Graph) bool {
	vars := v.pattern.Variables()
	if len(vars) == 0 {
		return true
	}
	return anyOrdered(f, vars)
}

// CostAndMetadata computes both canonical and reverse costs for binary
// constraints, picks the cheaper, and reports which variable becomes the
// candidate sort/join key for its step: the cheaper direction's first
// produced variable (spec 4.3, 4.4).
func (v *constraintVertex) CostAndMetadata(f *Frontier, g *Graph) (CombinedCost, CostMetadata, error) {
	if !v.pattern.Kind.IsBinary() {
		return v.costTypeListOrIID(f, g)
	}
	if v.pattern.Kind.IsLinks() {
		return v.costLinks(f, g)
	}

	canonical, canonicalFirst := v.costDirection(f, g, DirectionCanonical)
	reverse, reverseFirst := v.costDirection(f, g, DirectionReverse)

	chosen := DirectionCanonical
	chosenCost := canonical
	firstProduced := canonicalFirst
	if reverse.Less(canonical) {
		chosen = DirectionReverse
		chosenCost = reverse
		firstProduced = reverseFirst
	}

	meta := CostMetadata{HasDirection: true, Direction: chosen}
	if firstProduced.produced {
		meta.HasSortVariable = true
		meta.SortVariable = firstProduced.variable
	}
	return chosenCost, meta, nil
}

type candidateVariable struct {
	variable ir.VariableID
	produced bool
}

// costDirection estimates the cost of walking a binary constraint in one
// direction given what's already bound. The "from" endpoint of the
// direction is the side assumed bound (or scanned fully if unbound); the
// "to" endpoint is what gets produced.
func (v *constraintVertex) costDirection(f *Frontier, g *Graph, dir Direction) (CombinedCost, candidateVariable) {
	from, to := v.pattern.From, v.pattern.To
	if dir == DirectionReverse {
		from, to = to, from
	}

	fromBound := f.VariableOrdered(from)
	toBound := f.VariableOrdered(to)

	cost, ioRatio := v.edgeCost(g, from, to, dir, fromBound)

	produced := candidateVariable{}
	if !toBound {
		produced = candidateVariable{variable: to, produced: true}
	} else if toVar, ok := g.Variable(to); ok && toVar.Origin != ir.OriginInput {
		// "to" is already ordered but was never an input: an earlier
		// pattern produced it. This scan still lands on that same
		// variable rather than merely checking a pre-supplied value, so
		// it is still reported as producing/sorting on it — letting
		// beam search recognize it as joinable against the step that
		// already produced it (spec 4.5's step-intersection joinability).
		produced = candidateVariable{variable: to, produced: true}
	}
	return CombinedCost{Cost: cost, IORatio: clampIORatio(ioRatio)}, produced
}

// edgeCost estimates the open+advance cost and io_ratio of traversing
// kind in direction dir from "from" to "to", consulting the statistics
// oracle for the relevant edge/type counts (spec 4.1).
func (v *constraintVertex) edgeCost(g *Graph, from, to ir.VariableID, dir Direction, fromBound bool) (cost, ioRatio float64) {
	fromType := representativeType(g, from)
	toType := representativeType(g, to)

	switch v.pattern.Kind {
	case ir.ConstraintIsa:
		// Canonical: type -> thing (scan instances of a type).
		// Reverse: thing -> type (look up a thing's direct type), O(1).
		if dir == DirectionCanonical {
			count := g.Stats.EntityCount(toTypeOrFrom(fromType, toType))
			return OpenIteratorCost, ratioOrOne(count)
		}
		return AdvanceIteratorCost, 1
	case ir.ConstraintHas:
		if dir == DirectionCanonical {
			// owner -> attribute: average attributes per owner.
			edges := g.Stats.EdgeCount(fromType, stats.EdgeHas)
			owners := g.Stats.EntityCount(fromType)
			return OpenIteratorCost, ratioOrOne(edges) / denom(owners)
		}
		// attribute -> owner: average owners per distinct attribute value.
		// Here "from" is the attribute and "to" the owner.
		edges := g.Stats.EdgeCount(toType, stats.EdgeHas)
		card := g.Stats.AttributeCardinality(fromType)
		return OpenIteratorCost, ratioOrOne(edges) / denom(card)
	case ir.ConstraintOwns, ir.ConstraintPlays, ir.ConstraintRelates:
		// Schema-level constraints: small, roughly constant-cost lookups
		// against the type catalogue rather than instance data.
		return SimpleOpCostHigh, 1
	case ir.ConstraintSub:
		// Type hierarchy edge: cheap, typically near-1:1.
		_ = fromBound
		return SimpleOpCostHigh, 1
	default:
		return ComplexOpCostHigh, 1
	}
}

func toTypeOrFrom(fromType, toType schema.TypeLabel) schema.TypeLabel {
	if toType != "" {
		return toType
	}
	return fromType
}

func denom(v int64) float64 {
	if v <= 0 {
		return 1
	}
	return float64(v)
}

func ratioOrOne(v int64) float64 {
	if v <= 0 {
		return 1
	}
	return float64(v)
}

// joinSizeEstimate estimates the cardinality of a variable for join-size
// purposes (spec 4.5: "joinability... grants a join cost reduction (divide
// io-ratio by join size)"): an attribute variable's join size is its
// distinct-value cardinality (two scans landing on the same attribute
// value only intersect on shared values), anything else falls back to its
// annotated type's instance count.
func joinSizeEstimate(g *Graph, id ir.VariableID) float64 {
	v, ok := g.Variable(id)
	typ := representativeType(g, id)
	if ok && v.Category == ir.CategoryAttribute {
		return ratioOrOne(g.Stats.AttributeCardinality(typ))
	}
	return ratioOrOne(g.Stats.EntityCount(typ))
}

// representativeType picks a single type label to key statistics lookups
// on: the first annotated type for the variable, or empty if untyped
// (statistics then read as zero, per spec).
func representativeType(g *Graph, id ir.VariableID) schema.TypeLabel {
	if g.Annotations == nil {
		return ""
	}
	types := g.Annotations.VariableTypes(id)
	if len(types) == 0 {
		return ""
	}
	return types[0]
}

// costLinks handles the three-endpoint `links` constraint: with both
// relation and player bound, links is a cheap existence check; with one
// bound, scanning is proportional to the relation-index cross-product
// distribution (the `index` edge kind); with neither bound, links scans
// from the relation side canonically (spec 4.6 describes the analogous
// lowering rule; costing mirrors it).
func (v *constraintVertex) costLinks(f *Frontier, g *Graph) (CombinedCost, CostMetadata, error) {
	relation, player, role := v.pattern.From, v.pattern.To, v.pattern.Role
	relationBound := f.VariableOrdered(relation)
	playerBound := f.VariableOrdered(player)

	relType := representativeType(g, relation)
	idx := ratioOrOne(g.Stats.EdgeCount(relType, stats.EdgeIndex))

	switch {
	case relationBound && playerBound:
		return CombinedCost{Cost: AdvanceIteratorCost, IORatio: 1}, CostMetadata{HasDirection: true, Direction: DirectionCanonical}, nil
	case relationBound:
		return CombinedCost{Cost: OpenIteratorCost, IORatio: clampIORatio(idx)},
			CostMetadata{HasDirection: true, Direction: DirectionCanonical, HasSortVariable: true, SortVariable: player}, nil
	case playerBound:
		roleCount := ratioOrOne(g.Stats.RoleCount(representativeType(g, role)))
		return CombinedCost{Cost: OpenIteratorCost, IORatio: clampIORatio(idx / roleCount)},
			CostMetadata{HasDirection: true, Direction: DirectionReverse, HasSortVariable: true, SortVariable: relation}, nil
	default:
		count := ratioOrOne(g.Stats.EntityCount(relType))
		return CombinedCost{Cost: OpenIteratorCost, IORatio: clampIORatio(count)},
			CostMetadata{HasDirection: true, Direction: DirectionCanonical, HasSortVariable: true, SortVariable: relation}, nil
	}
}

// costTypeListOrIID handles iid and the unary type-list filters: cheap,
// non-directional checks against an already-annotated type set.
func (v *constraintVertex) costTypeListOrIID(f *Frontier, g *Graph) (CombinedCost, CostMetadata, error) {
	if v.pattern.Kind == ir.ConstraintIID {
		return CombinedCost{Cost: AdvanceIteratorCost, IORatio: 1}, CostMetadata{}, nil
	}
	return CombinedCost{Cost: SimpleOpCostHigh, IORatio: 1}, CostMetadata{}, nil
}
