package groups

import "fmt"

// Machine-readable validation rule codes surfaced to callers.
const (
	// RuleAlreadyExists reports a group name that is already taken.
	RuleAlreadyExists = "already-exist"
	// RulePattern reports a group name not matching the required pattern.
	// The Value of the error carries the expected pattern.
	RulePattern = "pattern"
	// RuleUnknownID reports a referenced group that does not exist.
	RuleUnknownID = "unknown-id"
	// RuleGroupType reports a group outside the project scope.
	RuleGroupType = "group-type"
)

// Subscription parameter names of the group provisioning workflow.
const (
	// ParameterGroup is the requested group name.
	ParameterGroup = "sql:group"
	// ParameterOU is the organizational unit the group belongs to.
	ParameterOU = "sql:ou"
	// ParameterParentGroup is the optional parent group name.
	ParameterParentGroup = "sql:parent-group"
)

// ValidationError reports a group workflow validation failure with the
// offending parameter and a machine-readable rule code. Validation
// errors are never retried; they always surface to the caller.
type ValidationError struct {
	// Parameter is the name of the rejected parameter.
	Parameter string
	// Rule is the machine-readable reason code.
	Rule string
	// Value carries the rejected value, or the expected pattern for
	// RulePattern failures.
	Value string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation of %q failed: %s (%s)", e.Parameter, e.Rule, e.Value)
}

func newValidationError(parameter, rule, value string) *ValidationError {
	return &ValidationError{Parameter: parameter, Rule: rule, Value: value}
}
