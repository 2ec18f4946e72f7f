package planner

import (
	"sort"

	"github.com/mereth/vertexdb/internal/schema"
	"github.com/mereth/vertexdb/internal/stats"
	"github.com/mereth/vertexdb/ir"
)

// VertexKind tags a VertexID as naming a variable or a pattern.
type VertexKind uint8

const (
	VariableVertexKind VertexKind = iota
	PatternVertexKind
)

// VertexID names one node of the plan ordering: either a variable or a
// pattern (spec 3: "Plan: an ordered sequence of vertex ids (interleaving
// variables and patterns)").
type VertexID struct {
	Kind VertexKind
	Var  ir.VariableID
	Pat  ir.PatternID
}

// VarVertex builds the vertex id naming a variable.
func VarVertex(id ir.VariableID) VertexID { return VertexID{Kind: VariableVertexKind, Var: id} }

// PatVertex builds the vertex id naming a pattern.
func PatVertex(id ir.PatternID) VertexID { return VertexID{Kind: PatternVertexKind, Pat: id} }

func (v VertexID) String() string {
	if v.Kind == VariableVertexKind {
		return v.Var.String()
	}
	return v.Pat.String()
}

// graphState is the per-conjunction lifecycle (spec 4.7): Building while
// variables/constraints are being registered, Sealed once planning may
// begin. A sealed graph is immutable.
type graphState uint8

const (
	stateBuilding graphState = iota
	stateSealed
)

// Frontier is a fast membership/position index over an ordering prefix,
// used by vertex validity/cost logic instead of re-scanning the raw
// ordering slice on every check.
type Frontier struct {
	positions map[VertexID]int
	order     []VertexID
}

// NewFrontier builds a frontier over an ordering prefix.
func NewFrontier(prefix []VertexID) *Frontier {
	f := &Frontier{positions: make(map[VertexID]int, len(prefix)), order: prefix}
	for i, v := range prefix {
		f.positions[v] = i
	}
	return f
}

// EmptyFrontier returns a frontier with nothing ordered yet.
func EmptyFrontier() *Frontier { return NewFrontier(nil) }

// Contains reports whether v appears in the frontier.
func (f *Frontier) Contains(v VertexID) bool {
	_, ok := f.positions[v]
	return ok
}

// VariableOrdered reports whether a variable has already been ordered
// (i.e. is an input, or has been produced by an already-ordered pattern).
func (f *Frontier) VariableOrdered(id ir.VariableID) bool {
	return f.Contains(VarVertex(id))
}

// PatternOrdered reports whether a pattern has already been placed.
func (f *Frontier) PatternOrdered(id ir.PatternID) bool {
	return f.Contains(PatVertex(id))
}

// Extend returns a new frontier with v appended, copying the underlying
// prefix rather than sharing it — callers on a hot path (beam search) should batch
// extensions rather than calling this per-candidate-check where avoidable.
func (f *Frontier) Extend(v VertexID) *Frontier {
	next := make([]VertexID, len(f.order), len(f.order)+1)
	copy(next, f.order)
	next = append(next, v)
	return NewFrontier(next)
}

// Order returns the ordering this frontier represents.
func (f *Frontier) Order() []VertexID { return f.order }

// Graph is the constraint graph: a bipartite variable↔pattern structure
// plus an adjacency index, owning every PlannerVertex for one conjunction
// (spec 3, 4.2). Built once via the Register* methods, then Seal()ed;
// planning and lowering are pure over a sealed graph.
type Graph struct {
	state graphState

	Stats       stats.Oracle
	Registry    schema.VariableRegistry
	Annotations schema.TypeAnnotations
	Options     Options

	variables map[ir.VariableID]*ir.Variable
	varOrder  []ir.VariableID // registration order, for deterministic iteration

	patterns    map[ir.PatternID]ir.Pattern
	patternOrder []ir.PatternID

	// adjacency: variable -> patterns touching it, and vice versa.
	varPatterns  map[ir.VariableID][]ir.PatternID
	patternVars  map[ir.PatternID][]ir.VariableID

	labelIndex map[string]ir.VariableID

	vertices map[VertexID]PlannerVertex

	nextVariableID ir.VariableID
	nextPatternID  ir.PatternID
}

// NewGraph creates an empty, building-state graph over the given
// read-only collaborators (spec 5: "the planner holds immutable borrows
// only").
func NewGraph(statsOracle stats.Oracle, registry schema.VariableRegistry, annotations schema.TypeAnnotations, opts Options) *Graph {
	return &Graph{
		state:       stateBuilding,
		Stats:       statsOracle,
		Registry:    registry,
		Annotations: annotations,
		Options:     opts,
		variables:   make(map[ir.VariableID]*ir.Variable),
		patterns:    make(map[ir.PatternID]ir.Pattern),
		varPatterns: make(map[ir.VariableID][]ir.PatternID),
		patternVars: make(map[ir.PatternID][]ir.VariableID),
		labelIndex:  make(map[string]ir.VariableID),
		vertices:    make(map[VertexID]PlannerVertex),
	}
}

func (g *Graph) requireBuilding() {
	if g.state != stateBuilding {
		panic(invariantViolation("graph is sealed; cannot mutate"))
	}
}

// AllocateVariableID reserves the next variable id.
func (g *Graph) AllocateVariableID() ir.VariableID {
	id := g.nextVariableID
	g.nextVariableID++
	return id
}

// AllocatePatternID reserves the next pattern id.
func (g *Graph) AllocatePatternID() ir.PatternID {
	id := g.nextPatternID
	g.nextPatternID++
	return id
}

// RegisterVariable registers a variable in the category the
// VariableRegistry oracle resolved it to (spec 4.2: three passes —
// inputs, then shared-with-enclosing-scope, then locally declared;
// origin drives which pass this call belongs to, category drives the
// planner variant). List-typed categories are rejected eagerly.
// A variable still carrying CategoryAttributeOrValue is a programmer
// error upstream (the type system promised to resolve it first).
func (g *Graph) RegisterVariable(id ir.VariableID, origin ir.VariableOrigin) error {
	g.requireBuilding()
	category, ok := g.Registry.Category(id)
	if !ok {
		return invariantViolation("variable %s has no registered category", id)
	}
	if category.IsListCategory() {
		return unsupportedFeature("list-typed variable " + id.String())
	}
	if category == ir.CategoryAttributeOrValue {
		return invariantViolation("variable %s still carries AttributeOrValue category", id)
	}
	if category == ir.CategoryUnknown {
		return invariantViolation("variable %s has unknown category", id)
	}
	v := ir.NewVariable(id, category, origin)
	g.variables[id] = v
	g.varOrder = append(g.varOrder, id)
	return nil
}

// registerPattern records a pattern's adjacency: every variable it
// touches gets the pattern added to its incidence list (spec 3: "every
// pattern's variables are indexed").
func (g *Graph) registerPattern(p ir.Pattern) {
	g.patterns[p.ID()] = p
	g.patternOrder = append(g.patternOrder, p.ID())
	vars := p.Variables()
	g.patternVars[p.ID()] = vars
	for _, v := range vars {
		g.varPatterns[v] = append(g.varPatterns[v], p.ID())
	}
}

// RegisterConstraint registers a binary/unary schema constraint once; the
// pattern becomes adjacent to both (or all, for `links`) of its endpoint
// variables.
func (g *Graph) RegisterConstraint(c *ir.Constraint) error {
	g.requireBuilding()
	g.registerPattern(c)
	return nil
}

// RegisterIs registers an equality pattern between two variables,
// additionally mirroring the equality fact onto both variable planners
// (spec 4.2).
func (g *Graph) RegisterIs(is *ir.Is) error {
	g.requireBuilding()
	g.registerPattern(is)
	left, ok := g.variables[is.Left]
	if !ok {
		return invariantViolation("is pattern references unregistered variable %s", is.Left)
	}
	right, ok := g.variables[is.Right]
	if !ok {
		return invariantViolation("is pattern references unregistered variable %s", is.Right)
	}
	left.AddEquality(is.Right)
	right.AddEquality(is.Left)
	return nil
}

// RegisterComparison registers an ordered comparator, mirroring ordering
// bounds on both sides for range-aware costing (spec 4.2). like/contains
// are rejected eagerly as unsupported (spec 7).
func (g *Graph) RegisterComparison(c *ir.Comparison) error {
	g.requireBuilding()
	if c.Op.IsUnsupported() {
		return unsupportedFeature("comparator " + c.Op.String())
	}
	g.registerPattern(c)

	addBound := func(varID ir.VariableID, operand ir.Operand, upper bool) {
		v, ok := g.variables[varID]
		if !ok {
			return
		}
		b := ir.Bound{Operand: operand, Inclusive: c.Op == ir.OpLTE || c.Op == ir.OpGTE || c.Op == ir.OpEQ}
		if upper {
			v.AddUpperBound(b)
		} else {
			v.AddLowerBound(b)
		}
	}

	switch c.Op {
	case ir.OpLT, ir.OpLTE:
		if c.Left.IsVar {
			addBound(c.Left.Variable, c.Right, true)
		}
		if c.Right.IsVar {
			addBound(c.Right.Variable, c.Left, false)
		}
	case ir.OpGT, ir.OpGTE:
		if c.Left.IsVar {
			addBound(c.Left.Variable, c.Right, false)
		}
		if c.Right.IsVar {
			addBound(c.Right.Variable, c.Left, true)
		}
	case ir.OpEQ:
		if c.Left.IsVar {
			addBound(c.Left.Variable, c.Right, true)
			addBound(c.Left.Variable, c.Right, false)
		}
		if c.Right.IsVar {
			addBound(c.Right.Variable, c.Left, true)
			addBound(c.Right.Variable, c.Left, false)
		}
	}
	return nil
}

// RegisterExpression registers a pure computation, linking the output
// variable's producer pattern exactly once (spec 3, 4.2).
func (g *Graph) RegisterExpression(e *ir.Expression) error {
	g.requireBuilding()
	g.registerPattern(e)
	return g.setProducer(e.Output, e.ID())
}

// RegisterFunctionCall registers an invocation binding, linking every
// assigned-output variable's producer pattern (spec 3, 4.2). A function
// output absent from the variable index is an invariant violation (spec
// 7): the IR builder must have registered every output variable first.
func (g *Graph) RegisterFunctionCall(f *ir.FunctionCall) error {
	g.requireBuilding()
	for _, out := range f.Outputs {
		if _, ok := g.variables[out]; !ok {
			return invariantViolation("function call %q output %s not in variable index", f.Name, out)
		}
	}
	g.registerPattern(f)
	for _, out := range f.Outputs {
		if err := g.setProducer(out, f.ID()); err != nil {
			return err
		}
	}
	return nil
}

// RegisterNegation registers a negation pattern. Its captured variables
// must already be registered; the sub-conjunction is planned separately
// (see newNegationVertex in vertex_negation.go), owned by this graph before
// search begins (spec 5).
func (g *Graph) RegisterNegation(n *ir.Negation) error {
	g.requireBuilding()
	g.registerPattern(n)
	return nil
}

// RegisterDisjunction registers a disjunction pattern sharing an input
// set across its branches.
func (g *Graph) RegisterDisjunction(d *ir.Disjunction) error {
	g.requireBuilding()
	g.registerPattern(d)
	return nil
}

func (g *Graph) setProducer(varID ir.VariableID, patternID ir.PatternID) error {
	v, ok := g.variables[varID]
	if !ok {
		return invariantViolation("producer pattern %s references unregistered variable %s", patternID, varID)
	}
	if v.HasProducer && v.Producer != patternID {
		return invariantViolation("variable %s already has producer %s, cannot set %s", varID, v.Producer, patternID)
	}
	v.SetProducer(patternID)
	return nil
}

// Variable looks up a registered variable.
func (g *Graph) Variable(id ir.VariableID) (*ir.Variable, bool) {
	v, ok := g.variables[id]
	return v, ok
}

// Pattern looks up a registered pattern.
func (g *Graph) Pattern(id ir.PatternID) (ir.Pattern, bool) {
	p, ok := g.patterns[id]
	return p, ok
}

// PatternsOf returns the patterns adjacent to a variable, in registration
// order.
func (g *Graph) PatternsOf(id ir.VariableID) []ir.PatternID {
	return g.varPatterns[id]
}

// VariablesOf returns the variables adjacent to a pattern.
func (g *Graph) VariablesOf(id ir.PatternID) []ir.VariableID {
	return g.patternVars[id]
}

// AllPatternIDs returns every registered pattern id in ascending id order,
// which search relies on for its ascending-PatternID tie-break.
func (g *Graph) AllPatternIDs() []ir.PatternID {
	out := make([]ir.PatternID, len(g.patternOrder))
	copy(out, g.patternOrder)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllVariableIDs returns every registered variable id in registration
// order.
func (g *Graph) AllVariableIDs() []ir.VariableID {
	out := make([]ir.VariableID, len(g.varOrder))
	copy(out, g.varOrder)
	return out
}

// Vertex returns the planner vertex for an id; panics if the graph isn't
// sealed, since vertices only exist once sealed.
func (g *Graph) Vertex(id VertexID) PlannerVertex {
	v, ok := g.vertices[id]
	if !ok {
		panic(invariantViolation("no vertex for %s", id))
	}
	return v
}

// Sealed reports whether the graph has been sealed.
func (g *Graph) Sealed() bool { return g.state == stateSealed }

// Seal transitions the graph from Building to Sealed (spec 4.7),
// constructing every PlannerVertex. After this call the graph is
// immutable: planning and lowering are pure over it.
func (g *Graph) Seal() error {
	g.requireBuilding()
	for _, id := range g.varOrder {
		g.vertices[VarVertex(id)] = &variableVertex{id: id}
	}
	for _, id := range g.patternOrder {
		p := g.patterns[id]
		vertex, err := buildVertex(g, p)
		if err != nil {
			return err
		}
		g.vertices[PatVertex(id)] = vertex
	}
	g.state = stateSealed
	return nil
}

// sortedVariableIDs is a small helper used by vertex implementations that
// need a deterministic variable ordering (e.g. join-variable selection).
func sortedVariableIDs(ids []ir.VariableID) []ir.VariableID {
	out := append([]ir.VariableID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
