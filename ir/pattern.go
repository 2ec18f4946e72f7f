package ir

import "fmt"

// PatternID is an opaque identifier for a pattern within a conjunction,
// assigned in registration order. Tie-breaks during search and lowering
// use ascending PatternID for determinism (spec 8, invariant 7).
type PatternID uint32

func (id PatternID) String() string {
	return fmt.Sprintf("p%d", uint32(id))
}

// Pattern is a unit of work in the plan: a constraint, an equality, a
// comparison, a pure expression, a function call, a negated sub-conjunction
// or a disjunction of alternatives.
type Pattern interface {
	// ID returns the pattern's identity within its owning conjunction.
	ID() PatternID
	// Variables returns every variable this pattern touches, in a stable
	// order (used to build the graph's adjacency index).
	Variables() []VariableID
	// String renders the pattern for diagnostics/tracing.
	String() string

	pattern() // unexported marker, restricts Pattern to this package's types
}

// ConstraintKind enumerates the binary/unary schema relations a Constraint
// pattern may express (spec 3).
type ConstraintKind uint8

const (
	ConstraintIsa ConstraintKind = iota
	ConstraintHas
	ConstraintLinks
	ConstraintSub
	ConstraintOwns
	ConstraintPlays
	ConstraintRelates
	ConstraintIID
	// Unary type-list filters.
	ConstraintLabel
	ConstraintKindFilter
	ConstraintRoleName
	ConstraintValue
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintIsa:
		return "isa"
	case ConstraintHas:
		return "has"
	case ConstraintLinks:
		return "links"
	case ConstraintSub:
		return "sub"
	case ConstraintOwns:
		return "owns"
	case ConstraintPlays:
		return "plays"
	case ConstraintRelates:
		return "relates"
	case ConstraintIID:
		return "iid"
	case ConstraintLabel:
		return "label"
	case ConstraintKindFilter:
		return "kind"
	case ConstraintRoleName:
		return "role_name"
	case ConstraintValue:
		return "value"
	default:
		return "unknown"
	}
}

// IsBinary reports whether this constraint kind has two distinct endpoint
// variables (as opposed to a unary type-list filter or a zero-variable
// free constraint).
func (k ConstraintKind) IsBinary() bool {
	switch k {
	case ConstraintIsa, ConstraintHas, ConstraintLinks, ConstraintSub,
		ConstraintOwns, ConstraintPlays, ConstraintRelates:
		return true
	default:
		return false
	}
}

// IsLinks reports whether this is the three-endpoint `links` constraint,
// which plan lowering treats specially (relation, player, role).
func (k ConstraintKind) IsLinks() bool {
	return k == ConstraintLinks
}

// Constraint is a binary (or unary) pattern over schema relations. For
// binary kinds, From is the canonical-direction source (e.g. the owner in
// `has`, the subtype in `sub`) and To is the canonical-direction target.
// `links` additionally carries a Role endpoint.
type Constraint struct {
	id   PatternID
	Kind ConstraintKind

	From VariableID
	To   VariableID
	// Role is only meaningful when Kind == ConstraintLinks.
	Role VariableID
	HasRole bool

	// TypeList constraints (Label/Kind/RoleName/Value) apply to a single
	// variable, stored in From, with no To/Role.
}

// NewConstraint builds a binary constraint.
func NewConstraint(id PatternID, kind ConstraintKind, from, to VariableID) *Constraint {
	return &Constraint{id: id, Kind: kind, From: from, To: to}
}

// NewLinksConstraint builds a links constraint with all three endpoints.
func NewLinksConstraint(id PatternID, relation, player, role VariableID) *Constraint {
	return &Constraint{id: id, Kind: ConstraintLinks, From: relation, To: player, Role: role, HasRole: true}
}

// NewTypeListConstraint builds a unary type-list filter constraint.
func NewTypeListConstraint(id PatternID, kind ConstraintKind, variable VariableID) *Constraint {
	return &Constraint{id: id, Kind: kind, From: variable}
}

func (c *Constraint) ID() PatternID { return c.id }
func (c *Constraint) pattern()      {}

func (c *Constraint) Variables() []VariableID {
	if !c.Kind.IsBinary() {
		return []VariableID{c.From}
	}
	if c.HasRole {
		return []VariableID{c.From, c.To, c.Role}
	}
	return []VariableID{c.From, c.To}
}

func (c *Constraint) String() string {
	if c.HasRole {
		return fmt.Sprintf("%s(%s, %s, %s)", c.Kind, c.From, c.To, c.Role)
	}
	if !c.Kind.IsBinary() {
		return fmt.Sprintf("%s(%s)", c.Kind, c.From)
	}
	return fmt.Sprintf("%s(%s, %s)", c.Kind, c.From, c.To)
}

// Is represents equality between two variables: $a = $b (variable-to-variable,
// distinct from Comparison which also covers operand-to-operand ordering).
type Is struct {
	id      PatternID
	Left    VariableID
	Right   VariableID
}

func NewIs(id PatternID, left, right VariableID) *Is { return &Is{id: id, Left: left, Right: right} }

func (i *Is) ID() PatternID          { return i.id }
func (i *Is) pattern()               {}
func (i *Is) Variables() []VariableID { return []VariableID{i.Left, i.Right} }
func (i *Is) String() string         { return fmt.Sprintf("is(%s, %s)", i.Left, i.Right) }

// CompareOp enumerates ordered comparators (spec 3). like/contains are
// string operators the planner rejects eagerly as unsupported.
type CompareOp uint8

const (
	OpEQ CompareOp = iota
	OpNEQ
	OpLT
	OpLTE
	OpGT
	OpGTE
	OpLike
	OpContains
)

func (o CompareOp) String() string {
	switch o {
	case OpEQ:
		return "="
	case OpNEQ:
		return "!="
	case OpLT:
		return "<"
	case OpLTE:
		return "<="
	case OpGT:
		return ">"
	case OpGTE:
		return ">="
	case OpLike:
		return "like"
	case OpContains:
		return "contains"
	default:
		return "?"
	}
}

// IsUnsupported reports whether this operator is not implemented by the
// planner (spec 7: UnsupportedFeature).
func (o CompareOp) IsUnsupported() bool {
	return o == OpLike || o == OpContains
}

// Operand is either a variable or a fixed parameter value known at plan
// time (a query input constant).
type Operand struct {
	Variable VariableID
	IsVar    bool
	Constant interface{}
}

// VarOperand builds a variable operand.
func VarOperand(id VariableID) Operand { return Operand{Variable: id, IsVar: true} }

// ConstOperand builds a constant operand.
func ConstOperand(v interface{}) Operand { return Operand{Constant: v} }

func (o Operand) String() string {
	if o.IsVar {
		return o.Variable.String()
	}
	return fmt.Sprintf("%v", o.Constant)
}

// Comparison is an ordered comparator between two operands.
type Comparison struct {
	id    PatternID
	Op    CompareOp
	Left  Operand
	Right Operand
}

func NewComparison(id PatternID, op CompareOp, left, right Operand) *Comparison {
	return &Comparison{id: id, Op: op, Left: left, Right: right}
}

func (c *Comparison) ID() PatternID { return c.id }
func (c *Comparison) pattern()      {}

func (c *Comparison) Variables() []VariableID {
	var vars []VariableID
	if c.Left.IsVar {
		vars = append(vars, c.Left.Variable)
	}
	if c.Right.IsVar {
		vars = append(vars, c.Right.Variable)
	}
	return vars
}

func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}

// Expression is a pure computation from N input variables to one output
// variable (e.g. an arithmetic or type-coercion expression compiled
// upstream by the IR builder).
type Expression struct {
	id     PatternID
	Inputs []VariableID
	Output VariableID
	// Label names the compiled expression for tracing; the planner does
	// not interpret expression semantics, only its input/output shape.
	Label string
}

func NewExpression(id PatternID, inputs []VariableID, output VariableID, label string) *Expression {
	return &Expression{id: id, Inputs: inputs, Output: output, Label: label}
}

func (e *Expression) ID() PatternID { return e.id }
func (e *Expression) pattern()      {}

func (e *Expression) Variables() []VariableID {
	vars := make([]VariableID, 0, len(e.Inputs)+1)
	vars = append(vars, e.Inputs...)
	vars = append(vars, e.Output)
	return vars
}

func (e *Expression) String() string {
	return fmt.Sprintf("%s(%v) -> %s", e.Label, e.Inputs, e.Output)
}

// FunctionCall invokes a named function, binding input arguments and
// assigning output variables.
type FunctionCall struct {
	id        PatternID
	Name      string
	Arguments []VariableID
	Outputs   []VariableID
}

func NewFunctionCall(id PatternID, name string, args, outputs []VariableID) *FunctionCall {
	return &FunctionCall{id: id, Name: name, Arguments: args, Outputs: outputs}
}

func (f *FunctionCall) ID() PatternID { return f.id }
func (f *FunctionCall) pattern()      {}

func (f *FunctionCall) Variables() []VariableID {
	vars := make([]VariableID, 0, len(f.Arguments)+len(f.Outputs))
	vars = append(vars, f.Arguments...)
	vars = append(vars, f.Outputs...)
	return vars
}

func (f *FunctionCall) String() string {
	return fmt.Sprintf("%s(%v) -> %v", f.Name, f.Arguments, f.Outputs)
}

// Negation is a fully-planned sub-conjunction that must yield no rows
// given the shared (captured) inputs.
type Negation struct {
	id       PatternID
	Captured []VariableID
	Body     *Conjunction
}

func NewNegation(id PatternID, captured []VariableID, body *Conjunction) *Negation {
	return &Negation{id: id, Captured: captured, Body: body}
}

func (n *Negation) ID() PatternID           { return n.id }
func (n *Negation) pattern()                {}
func (n *Negation) Variables() []VariableID { return n.Captured }
func (n *Negation) String() string          { return fmt.Sprintf("not(%v)", n.Captured) }

// Disjunction is a set of alternative sub-conjunction builders sharing an
// input set; each branch is planned independently with the same inputs.
type Disjunction struct {
	id       PatternID
	Captured []VariableID
	Branches []*Conjunction
}

func NewDisjunction(id PatternID, captured []VariableID, branches []*Conjunction) *Disjunction {
	return &Disjunction{id: id, Captured: captured, Branches: branches}
}

func (d *Disjunction) ID() PatternID           { return d.id }
func (d *Disjunction) pattern()                {}
func (d *Disjunction) Variables() []VariableID { return d.Captured }
func (d *Disjunction) String() string          { return fmt.Sprintf("or(%d branches)", len(d.Branches)) }
