package planner

import "github.com/mereth/vertexdb/ir"

// Trace is an optional diagnostic hook search invokes as it evaluates
// candidates, for logging or test assertions without coupling the search
// loop itself to any particular logger (spec 5.1's ambient tracing, named
// rather than hard-wired so callers can plug in their own sink).
type Trace interface {
	// ConsideredPattern is called once per valid candidate a search step
	// evaluates, before a choice among them is made.
	ConsideredPattern(id ir.PatternID, cost CombinedCost)
	// ChoseVertex is called once a greedy search step commits to a
	// vertex. BeamSearch does not call it.
	ChoseVertex(id VertexID, cost CombinedCost)
}

// NoopTrace implements Trace with no-ops; DefaultOptions sets it, and a
// nil Options.Trace is treated the same way, so tracing costs nothing
// unless a caller opts in.
type NoopTrace struct{}

func (NoopTrace) ConsideredPattern(ir.PatternID, CombinedCost) {}
func (NoopTrace) ChoseVertex(VertexID, CombinedCost)           {}
