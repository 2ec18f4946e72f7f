package planner

import "fmt"

// UnsupportedFeatureError is returned for constructs the planner does not
// implement: list-typed variables, like/contains comparators, optional
// patterns (spec 7). The query compiler is expected to reject the query
// using this error, not retry or degrade.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("planner: unsupported feature: %s", e.Feature)
}

// InvariantViolationError marks a bug upstream of the planner: a missing
// variable category, an unresolved AttributeOrValue, a function-call
// output absent from the variable index (spec 7). These never happen on
// valid input; they exist so a broken upstream collaborator fails loudly
// instead of producing a silently wrong plan.
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("planner: invariant violation: %s", e.Detail)
}

// EmptyPlanSpaceError is returned when no valid ordering exists for a
// conjunction — e.g. a pattern with all-unbound inputs and no candidate
// vertex ever becomes valid (spec 7). The planner reports this instead of
// emitting a partial plan.
type EmptyPlanSpaceError struct {
	Detail string
}

func (e *EmptyPlanSpaceError) Error() string {
	return fmt.Sprintf("planner: empty plan space: %s", e.Detail)
}

func unsupportedFeature(feature string) error {
	return &UnsupportedFeatureError{Feature: feature}
}

func invariantViolation(format string, args ...interface{}) error {
	return &InvariantViolationError{Detail: fmt.Sprintf(format, args...)}
}

func emptyPlanSpace(format string, args ...interface{}) error {
	return &EmptyPlanSpaceError{Detail: fmt.Sprintf(format, args...)}
}
