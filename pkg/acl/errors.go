package acl

import "errors"

// Domain errors for ACL construction and queries.
var (
	// ErrUnknownSymbol is returned when a role or resource name is
	// referenced before it was declared.
	ErrUnknownSymbol = errors.New("acl.unknown_symbol")

	// ErrEmptySymbol is returned when an empty string is used where a
	// role, resource or privilege name is required. The empty string is
	// reserved as the query-time wildcard.
	ErrEmptySymbol = errors.New("acl.empty_symbol")

	// ErrBuilderSealed is returned when a Builder is used after Build
	// has been called on it.
	ErrBuilderSealed = errors.New("acl.builder_sealed")

	// ErrCycleDetected is returned from Build when a role or resource
	// inheritance graph contains a directed cycle.
	ErrCycleDetected = errors.New("acl.cycle_detected")

	// ErrInvalidRuleEffect is returned when a declarative rule carries an
	// effect other than "allow" or "deny".
	ErrInvalidRuleEffect = errors.New("acl.invalid_rule_effect")

	// ErrMalformedPolicy is returned when a declarative policy document
	// cannot be decoded.
	ErrMalformedPolicy = errors.New("acl.malformed_policy")

	// ErrRoleNotInContext is returned when no role is found in the context.
	ErrRoleNotInContext = errors.New("acl.role_not_in_context")

	// ErrPermissionDenied is returned by the HTTP middleware when the
	// policy denies the request.
	ErrPermissionDenied = errors.New("acl.permission_denied")
)
