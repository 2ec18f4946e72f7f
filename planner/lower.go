package planner

import "github.com/mereth/vertexdb/ir"

// Lower walks a Plan's ordering and emits the Step tree the executor
// consumes (spec 4.6). Each pattern becomes exactly one Step; grouping
// multiple constraints that produce the same variable into a single
// multi-way StepIntersect is left as a future executor optimization — this
// lowering always hands the executor one producing/checking pattern per
// step, which is correct, just not maximally fused.
func Lower(plan *Plan) (*StepTree, error) {
	tree := &StepTree{}
	for _, vid := range plan.Order {
		if vid.Kind != PatternVertexKind {
			continue
		}
		pat, ok := plan.Graph.Pattern(vid.Pat)
		if !ok {
			return nil, invariantViolation("plan references unknown pattern %s", vid.Pat)
		}
		meta := plan.Metadata[vid]
		step, err := lowerPattern(pat, meta)
		if err != nil {
			return nil, err
		}
		tree.Steps = append(tree.Steps, step)
	}
	return tree, nil
}

func lowerPattern(pat ir.Pattern, meta CostMetadata) (Step, error) {
	switch p := pat.(type) {
	case *ir.Negation:
		return Step{Kind: StepNegation, Patterns: []ir.PatternID{p.ID()}, Sub: []*Plan{meta.NegationPlan}}, nil
	case *ir.Disjunction:
		return Step{Kind: StepDisjunction, Patterns: []ir.PatternID{p.ID()}, Sub: meta.DisjunctionBranches}, nil
	case *ir.Expression:
		return Step{Kind: StepProduce, Patterns: []ir.PatternID{p.ID()}, SortVariable: p.Output, HasSortVariable: true}, nil
	case *ir.FunctionCall:
		step := Step{Kind: StepProduce, Patterns: []ir.PatternID{p.ID()}}
		if len(p.Outputs) > 0 {
			step.HasSortVariable = true
			step.SortVariable = p.Outputs[0]
		}
		return step, nil
	case *ir.Constraint:
		return lowerDirectional(p.ID(), meta), nil
	case *ir.Is:
		return lowerDirectional(p.ID(), meta), nil
	case *ir.Comparison:
		return lowerDirectional(p.ID(), meta), nil
	default:
		return Step{}, invariantViolation("lowering: unrecognized pattern type %T", pat)
	}
}

// lowerDirectional builds the step for a pattern whose metadata may carry a
// produced sort variable and/or a traversal direction: StepIntersect when
// it produces a new binding, StepCheck when it only filters already-bound
// variables (spec 4.6).
func lowerDirectional(id ir.PatternID, meta CostMetadata) Step {
	kind := StepCheck
	if meta.HasSortVariable {
		kind = StepIntersect
	}
	step := Step{Kind: kind, Patterns: []ir.PatternID{id}}
	if meta.HasSortVariable {
		step.HasSortVariable = true
		step.SortVariable = meta.SortVariable
	}
	if meta.HasDirection {
		step.Directions = map[ir.PatternID]Direction{id: meta.Direction}
	}
	return step
}
