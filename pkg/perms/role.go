package perms

import "strings"

// wildcard grants match everything in their namespace.
const (
	wildcard  = "*"
	delimiter = "."
)

// Role is a named set of granted permissions with optional inheritance.
// All permissions of inherited roles are included in the role's
// effective grant set.
type Role struct {
	// Permissions directly granted to this role. Entries may be exact
	// ("users.read"), namespace wildcards ("users.*") or the global
	// wildcard ("*").
	Permissions []string

	// Inherits lists the roles this role inherits from. Every listed
	// role must be declared.
	Inherits []string
}

// matches reports whether a single grant covers the permission.
func matches(permission, grant string) bool {
	if grant == wildcard || grant == permission {
		return true
	}
	if prefix, ok := strings.CutSuffix(grant, delimiter+wildcard); ok {
		return strings.HasPrefix(permission, prefix+delimiter)
	}
	return false
}

// covered reports whether any grant in the set covers the permission.
func covered(grants []string, permission string) bool {
	for _, grant := range grants {
		if matches(permission, grant) {
			return true
		}
	}
	return false
}
