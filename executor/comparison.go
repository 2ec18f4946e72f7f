package executor

import (
	"fmt"

	"github.com/mereth/vertexdb/ir"
)

// evalComparison evaluates a Comparison pattern against a fully- or
// partially-bound row; an unbound operand makes the comparison vacuously
// true (the planner only schedules a Comparison once IsValid holds, which
// for an otherwise-free comparison means it is scheduled with nothing yet
// bound at all).
func evalComparison(c *ir.Comparison, r Row) (bool, error) {
	left, leftOK := operandValue(c.Left, r)
	right, rightOK := operandValue(c.Right, r)
	if !leftOK || !rightOK {
		return true, nil
	}

	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if lok && rok {
		return compareFloats(c.Op, lf, rf), nil
	}
	ls, rs := fmt.Sprintf("%v", left), fmt.Sprintf("%v", right)
	switch c.Op {
	case ir.OpEQ:
		return ls == rs, nil
	case ir.OpNEQ:
		return ls != rs, nil
	case ir.OpLT:
		return ls < rs, nil
	case ir.OpLTE:
		return ls <= rs, nil
	case ir.OpGT:
		return ls > rs, nil
	case ir.OpGTE:
		return ls >= rs, nil
	default:
		return false, fmt.Errorf("executor: unsupported comparator %s", c.Op)
	}
}

func operandValue(o ir.Operand, r Row) (interface{}, bool) {
	if !o.IsVar {
		return o.Constant, true
	}
	return r.Get(o.Variable)
}

func compareFloats(op ir.CompareOp, l, r float64) bool {
	switch op {
	case ir.OpEQ:
		return l == r
	case ir.OpNEQ:
		return l != r
	case ir.OpLT:
		return l < r
	case ir.OpLTE:
		return l <= r
	case ir.OpGT:
		return l > r
	case ir.OpGTE:
		return l >= r
	default:
		return false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}
