package planner

import "github.com/mereth/vertexdb/ir"

// Plan is a search strategy's output: a total ordering over every vertex of
// a sealed graph (variables interleaved with the patterns that produce or
// check them), its accumulated cost, and per-pattern metadata needed by
// lowering (spec 3, 4.4, 4.5).
type Plan struct {
	Graph    *Graph
	Order    []VertexID
	Cost     CombinedCost
	Metadata map[VertexID]CostMetadata
}

// MetadataFor returns the metadata recorded for a pattern vertex, if any.
func (p *Plan) MetadataFor(id ir.PatternID) (CostMetadata, bool) {
	m, ok := p.Metadata[PatVertex(id)]
	return m, ok
}

// Patterns returns the pattern ids in the plan's order, skipping variable
// vertices.
func (p *Plan) Patterns() []ir.PatternID {
	out := make([]ir.PatternID, 0, len(p.Order))
	for _, v := range p.Order {
		if v.Kind == PatternVertexKind {
			out = append(out, v.Pat)
		}
	}
	return out
}

// newlyBoundVariables returns the variables of pattern p not already
// ordered in the frontier, in a deterministic order — the variables a
// placed pattern is assumed to bind (spec 4.3: a pattern that IsValid
// admits for placement either filters already-bound variables or produces
// the rest; both cases leave every one of its variables ordered once
// placed).
func newlyBoundVariables(pat ir.Pattern, f *Frontier) []ir.VariableID {
	var fresh []ir.VariableID
	for _, v := range pat.Variables() {
		if !f.VariableOrdered(v) {
			fresh = append(fresh, v)
		}
	}
	return sortedVariableIDs(fresh)
}
