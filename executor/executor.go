package executor

import (
	"fmt"

	"github.com/mereth/vertexdb/internal/kv"
	"github.com/mereth/vertexdb/ir"
	"github.com/mereth/vertexdb/planner"
)

// Function evaluates an Expression or FunctionCall pattern's outputs given
// its already-bound arguments, in argument order.
type Function func(args ...interface{}) ([]interface{}, error)

// FunctionRegistry resolves Expression labels and FunctionCall names to
// their implementation. The planner never interprets these; only the
// executor does (spec.md section 1, 4.3's "the planner does not interpret
// expression semantics, only its input/output shape").
type FunctionRegistry map[string]Function

// Execute walks tree against snap, starting from initial's bindings, and
// returns every complete row the conjunction admits. plan.Graph supplies
// the pattern definitions the step tree only references by id.
func Execute(plan *planner.Plan, tree *planner.StepTree, matcher Matcher, funcs FunctionRegistry, snap kv.Snapshot, initial Row) ([]Row, error) {
	rows := []Row{initial.Clone()}
	for _, step := range tree.Steps {
		var err error
		rows, err = applyStep(plan, step, matcher, funcs, snap, rows)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return rows, nil
		}
	}
	return rows, nil
}

func applyStep(plan *planner.Plan, step planner.Step, matcher Matcher, funcs FunctionRegistry, snap kv.Snapshot, rows []Row) ([]Row, error) {
	switch step.Kind {
	case planner.StepNegation:
		return applyNegation(plan, step, matcher, funcs, snap, rows)
	case planner.StepDisjunction:
		return applyDisjunction(plan, step, matcher, funcs, snap, rows)
	default:
		return applyPattern(plan, step, matcher, funcs, snap, rows)
	}
}

func applyPattern(plan *planner.Plan, step planner.Step, matcher Matcher, funcs FunctionRegistry, snap kv.Snapshot, rows []Row) ([]Row, error) {
	pat, ok := plan.Graph.Pattern(step.Patterns[0])
	if !ok {
		return nil, fmt.Errorf("executor: unknown pattern %s", step.Patterns[0])
	}

	switch p := pat.(type) {
	case *ir.Constraint:
		dir := planner.DirectionCanonical
		if d, ok := step.Directions[p.ID()]; ok {
			dir = d
		}
		var out []Row
		for _, r := range rows {
			matches, err := matcher.Match(snap, p, dir, r)
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				out = append(out, r.Merge(m))
			}
		}
		return out, nil

	case *ir.Is:
		var out []Row
		for _, r := range rows {
			left, leftOK := r.Get(p.Left)
			right, rightOK := r.Get(p.Right)
			switch {
			case leftOK && rightOK:
				if left == right {
					out = append(out, r)
				}
			case leftOK:
				out = append(out, r.Merge(Row{p.Right: left}))
			case rightOK:
				out = append(out, r.Merge(Row{p.Left: right}))
			}
		}
		return out, nil

	case *ir.Comparison:
		var out []Row
		for _, r := range rows {
			ok, err := evalComparison(p, r)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, r)
			}
		}
		return out, nil

	case *ir.Expression:
		fn, ok := funcs[p.Label]
		if !ok {
			return nil, fmt.Errorf("executor: no function registered for expression %q", p.Label)
		}
		var out []Row
		for _, r := range rows {
			args, err := resolveArgs(p.Inputs, r)
			if err != nil {
				return nil, err
			}
			results, err := fn(args...)
			if err != nil {
				return nil, err
			}
			if len(results) != 1 {
				return nil, fmt.Errorf("executor: expression %q returned %d values, want 1", p.Label, len(results))
			}
			out = append(out, r.Merge(Row{p.Output: results[0]}))
		}
		return out, nil

	case *ir.FunctionCall:
		fn, ok := funcs[p.Name]
		if !ok {
			return nil, fmt.Errorf("executor: no function registered for call %q", p.Name)
		}
		var out []Row
		for _, r := range rows {
			args, err := resolveArgs(p.Arguments, r)
			if err != nil {
				return nil, err
			}
			results, err := fn(args...)
			if err != nil {
				return nil, err
			}
			if len(results) != len(p.Outputs) {
				return nil, fmt.Errorf("executor: function %q returned %d values, want %d", p.Name, len(results), len(p.Outputs))
			}
			bound := make(Row, len(p.Outputs))
			for i, out := range p.Outputs {
				bound[out] = results[i]
			}
			out2 := r.Merge(bound)
			out = append(out, out2)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("executor: unhandled pattern type %T", pat)
	}
}

func applyNegation(plan *planner.Plan, step planner.Step, matcher Matcher, funcs FunctionRegistry, snap kv.Snapshot, rows []Row) ([]Row, error) {
	sub := step.Sub[0]
	subTree, err := planner.Lower(sub)
	if err != nil {
		return nil, err
	}
	var out []Row
	for _, r := range rows {
		results, err := Execute(sub, subTree, matcher, funcs, snap, r)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			out = append(out, r)
		}
	}
	return out, nil
}

func applyDisjunction(plan *planner.Plan, step planner.Step, matcher Matcher, funcs FunctionRegistry, snap kv.Snapshot, rows []Row) ([]Row, error) {
	var out []Row
	for _, branch := range step.Sub {
		tree, err := planner.Lower(branch)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			results, err := Execute(branch, tree, matcher, funcs, snap, r)
			if err != nil {
				return nil, err
			}
			for _, res := range results {
				out = append(out, r.Merge(res))
			}
		}
	}
	return out, nil
}

func resolveArgs(vars []ir.VariableID, r Row) ([]interface{}, error) {
	args := make([]interface{}, len(vars))
	for i, v := range vars {
		val, ok := r.Get(v)
		if !ok {
			return nil, fmt.Errorf("executor: argument %s unbound", v)
		}
		args[i] = val
	}
	return args, nil
}
