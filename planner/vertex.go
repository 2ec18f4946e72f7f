package planner

import (
	"github.com/mereth/vertexdb/ir"
)

// CostMetadata carries whatever a vertex's cost computation needs to
// communicate to the search/lowering stages beyond the bare cost number:
// a direction choice for constraints, a candidate sort variable, or a
// cached sub-plan for negation/disjunction (spec 4.3).
type CostMetadata struct {
	HasDirection bool
	Direction    Direction

	HasSortVariable bool
	SortVariable    ir.VariableID

	// NegationPlan is set only on Negation vertices: the pre-planned,
	// cached sub-plan (spec 4.3: "the negated sub-plan is pre-planned at
	// construction and its cached cost is returned").
	NegationPlan *Plan

	// DisjunctionBranches is set only on Disjunction vertices: one plan
	// per branch, (re-)computed against the current captured inputs
	// (spec 4.3, 4.6).
	DisjunctionBranches []*Plan
}

// PlannerVertex is the tagged-union interface every graph node
// implements: a variable, or one of the pattern kinds (spec 4.3, spec 9
// "implement as a sum type with inherent methods, avoiding deep
// inheritance" — realized here as one interface with one implementing
// type per pattern kind instead of a class hierarchy).
type PlannerVertex interface {
	// ID returns this vertex's identity.
	ID() VertexID

	// IsValid reports whether this vertex may legally be placed
	// immediately after the given frontier (spec 4.3).
	IsValid(f *Frontier, g *Graph) bool

	// CostAndMetadata returns this vertex's marginal cost given the
	// frontier, plus any metadata the search/lowering stages need
	// (spec 4.3).
	CostAndMetadata(f *Frontier, g *Graph) (CombinedCost, CostMetadata, error)
}

// buildVertex dispatches pattern construction by concrete IR type —
// the sum-type "switch on tag" spec.md section 9 describes.
func buildVertex(g *Graph, p ir.Pattern) (PlannerVertex, error) {
	switch pat := p.(type) {
	case *ir.Constraint:
		return newConstraintVertex(g, pat)
	case *ir.Is:
		return &isVertex{id: pat.ID(), pattern: pat}, nil
	case *ir.Comparison:
		return &comparisonVertex{id: pat.ID(), pattern: pat}, nil
	case *ir.Expression:
		return &expressionVertex{id: pat.ID(), pattern: pat}, nil
	case *ir.FunctionCall:
		return &functionCallVertex{id: pat.ID(), pattern: pat}, nil
	case *ir.Negation:
		return newNegationVertex(g, pat)
	case *ir.Disjunction:
		return &disjunctionVertex{id: pat.ID(), pattern: pat}, nil
	default:
		return nil, invariantViolation("unrecognized pattern type %T", p)
	}
}

// allOrdered reports whether every variable in vars is already ordered.
func allOrdered(f *Frontier, vars []ir.VariableID) bool {
	for _, v := range vars {
		if !f.VariableOrdered(v) {
			return false
		}
	}
	return true
}

// anyOrdered reports whether at least one variable in vars is ordered.
func anyOrdered(f *Frontier, vars []ir.VariableID) bool {
	for _, v := range vars {
		if f.VariableOrdered(v) {
			return true
		}
	}
	return false
}

// variableVertex is the trivial vertex wrapping a Variable node. It is
// never directly chosen by search (spec 4.3: "Variable vertex: never
// directly chosen (it is produced by a pattern)"); IsValid always fails
// and CostAndMetadata is never meant to be invoked by search, only
// referenced by vertex id.
type variableVertex struct {
	id ir.VariableID
}

func (v *variableVertex) ID() VertexID { return VarVertex(v.id) }

func (v *variableVertex) IsValid(f *Frontier, g *Graph) bool { return false }

func (v *variableVertex) CostAndMetadata(f *Frontier, g *Graph) (CombinedCost, CostMetadata, error) {
	return CombinedCost{}, CostMetadata{}, invariantViolation("variable vertex %s cannot be directly costed", v.id)
}
