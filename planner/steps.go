package planner

import "github.com/mereth/vertexdb/ir"

// StepKind tags a lowered Step's execution shape.
type StepKind uint8

const (
	// StepIntersect evaluates a constraint, Is or comparison pattern that
	// produces a sort variable (spec 4.6). Lower emits one pattern per
	// step; constraints sharing a produced variable are not fused into a
	// single multi-way intersection.
	StepIntersect StepKind = iota
	// StepCheck evaluates a pattern that only filters already-bound
	// variables and produces no new ones (comparisons, constraints whose
	// endpoints are all bound, unary type-list and iid filters).
	StepCheck
	// StepProduce evaluates a pattern that introduces new bindings not
	// covered by StepIntersect's sorted-iterator model: expressions and
	// function calls.
	StepProduce
	// StepNegation runs a pre-planned sub-plan and keeps only rows for
	// which it produced no output.
	StepNegation
	// StepDisjunction runs every branch sub-plan and unions their rows.
	StepDisjunction
)

func (k StepKind) String() string {
	switch k {
	case StepIntersect:
		return "intersect"
	case StepCheck:
		return "check"
	case StepProduce:
		return "produce"
	case StepNegation:
		return "negation"
	case StepDisjunction:
		return "disjunction"
	default:
		return "unknown"
	}
}

// Step is one node of the lowered execution tree: a group of one or more
// patterns executed together, plus the binding/direction metadata the
// executor needs (spec 4.6).
type Step struct {
	Kind StepKind

	// Patterns lists the pattern ids folded into this step. Lower always
	// puts exactly one pattern here.
	Patterns []ir.PatternID

	// SortVariable is the variable StepIntersect/StepProduce steps produce
	// and sort on.
	SortVariable ir.VariableID
	HasSortVariable bool

	// Directions records, per pattern, which traversal direction lowering
	// chose (only meaningful for binary Constraint patterns).
	Directions map[ir.PatternID]Direction

	// Sub holds the nested plan for StepNegation (one) and StepDisjunction
	// (one per branch).
	Sub []*Plan
}

// StepTree is the fully lowered form of a Plan: an ordered list of Steps
// ready for the executor to walk (spec 4.6).
type StepTree struct {
	Steps []Step
}
