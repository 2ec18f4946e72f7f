package ir

// Conjunction is an AND of patterns over a shared variable scope. It is
// the unit the planner plans: a top-level query body, or a nested
// sub-conjunction captured by a Negation/Disjunction branch.
type Conjunction struct {
	Patterns []Pattern
	// Nested holds disjunction/negation patterns separately so callers
	// that only want the flat constraint set don't have to filter them
	// out of Patterns; every entry here also appears in Patterns.
	Nested []Pattern
}

// NewConjunction wraps a pattern slice, splitting out the nested
// (negation/disjunction) patterns for convenience.
func NewConjunction(patterns []Pattern) *Conjunction {
	c := &Conjunction{Patterns: patterns}
	for _, p := range patterns {
		switch p.(type) {
		case *Negation, *Disjunction:
			c.Nested = append(c.Nested, p)
		}
	}
	return c
}

// Scope identifies a nesting level for variable visibility queries.
type Scope uint32

// BlockContext is the scope/variable-visibility oracle supplied by the IR
// builder (spec 6): it tells the planner which variables a nested scope
// captures from its enclosing conjunction versus declares locally.
type BlockContext interface {
	// CapturedVariables returns the variables a scope shares with its
	// enclosing conjunction (its "inputs" when planned recursively).
	CapturedVariables(scope Scope) []VariableID
	// DeclaredVariables returns the variables first introduced within a
	// scope (not visible to its enclosing conjunction).
	DeclaredVariables(scope Scope) []VariableID
}
