package perms

import "errors"

// Domain errors for permission checks.
var (
	// ErrUnknownRole is returned when a role does not exist.
	ErrUnknownRole = errors.New("perms.unknown_role")

	// ErrPermissionDenied is returned when a required permission is not
	// granted.
	ErrPermissionDenied = errors.New("perms.permission_denied")

	// ErrNoRoleInContext is returned when no role is found in the context.
	ErrNoRoleInContext = errors.New("perms.no_role_in_context")

	// ErrCircularInheritance is returned when role inheritance contains
	// a cycle.
	ErrCircularInheritance = errors.New("perms.circular_inheritance")
)
