// Package schema is the typed-schema stand-in the planner consumes as a
// read-only collaborator: a variable-category registry and per-variable /
// per-constraint type annotations. It is deliberately thin — the real
// type system is out of this repo's planning scope (spec.md section 1) —
// but concrete enough to exercise and test the planner against.
package schema

import (
	"fmt"

	"github.com/mereth/vertexdb/ir"
)

// TypeLabel names a schema type: an entity type, relation type, attribute
// type, or role type.
type TypeLabel string

// VariableRegistry maps a variable id to the category the IR builder
// resolved it to (spec 6: "VariableRegistry"). The planner treats it as an
// immutable, read-only oracle.
type VariableRegistry interface {
	Category(id ir.VariableID) (ir.VariableCategory, bool)
}

// MapRegistry is a simple map-backed VariableRegistry, the kind an IR
// builder would populate directly while registering variables.
type MapRegistry struct {
	categories map[ir.VariableID]ir.VariableCategory
}

// NewMapRegistry creates an empty registry.
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{categories: make(map[ir.VariableID]ir.VariableCategory)}
}

// Set records a variable's category.
func (r *MapRegistry) Set(id ir.VariableID, category ir.VariableCategory) {
	r.categories[id] = category
}

// Category implements VariableRegistry.
func (r *MapRegistry) Category(id ir.VariableID) (ir.VariableCategory, bool) {
	c, ok := r.categories[id]
	return c, ok
}

// TypeAnnotations is the per-variable inferred type-set oracle (spec 6).
// The planner uses it only to pick a variable's first annotated type
// label as the key for statistics lookups — it never mutates or
// re-infers types.
type TypeAnnotations interface {
	// VariableTypes returns the inferred possible types for a variable,
	// or nil if the variable is untyped/unconstrained.
	VariableTypes(id ir.VariableID) []TypeLabel
}

// MapTypeAnnotations is a simple map-backed TypeAnnotations.
type MapTypeAnnotations struct {
	types map[ir.VariableID][]TypeLabel
}

// NewMapTypeAnnotations creates an empty annotation set.
func NewMapTypeAnnotations() *MapTypeAnnotations {
	return &MapTypeAnnotations{types: make(map[ir.VariableID][]TypeLabel)}
}

// Set records the inferred types for a variable.
func (a *MapTypeAnnotations) Set(id ir.VariableID, types []TypeLabel) {
	a.types[id] = types
}

func (a *MapTypeAnnotations) VariableTypes(id ir.VariableID) []TypeLabel {
	return a.types[id]
}

// ErrUnresolvedAttributeOrValue describes a variable that still carries
// CategoryAttributeOrValue at graph-build time: the type system promised
// to resolve this before handing the conjunction to the planner (spec 4.2,
// spec 7: InvariantViolation). The planner's Graph does not return this
// type; it reports the same case as an InvariantViolationError.
type ErrUnresolvedAttributeOrValue struct {
	Variable ir.VariableID
}

func (e *ErrUnresolvedAttributeOrValue) Error() string {
	return fmt.Sprintf("variable %s still carries AttributeOrValue category at graph build time", e.Variable)
}
