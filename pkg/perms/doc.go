// Package perms provides flat role-based permission checking: roles are
// named permission sets that may inherit from other roles, and a check
// asks whether a role's transitive permission union contains a given
// permission. There is no resource dimension and no deny rules — for
// resource-aware, deny-by-default authorization use the acl package.
//
// Permissions are dot-separated strings (e.g. "users.read") and grants
// may use wildcards: "*" matches everything, "users.*" matches every
// permission under the users namespace.
//
// The permission union for every role is computed once, at construction,
// so an Authorizer is immutable and safe for concurrent use.
//
// Basic usage:
//
//	roles := map[string]perms.Role{
//	    "viewer": {
//	        Permissions: []string{"content.read"},
//	    },
//	    "editor": {
//	        Permissions: []string{"content.write"},
//	        Inherits:    []string{"viewer"},
//	    },
//	    "admin": {
//	        Permissions: []string{"*"},
//	    },
//	}
//
//	auth, err := perms.NewAuthorizer(ctx, perms.NewStaticSource(roles))
//	if err != nil {
//	    // circular or dangling inheritance
//	}
//
//	if err := auth.Can("editor", "content.read"); err != nil {
//	    // denied
//	}
//
//	ctx = perms.SetRoleToContext(ctx, "editor")
//	if err := auth.CanFromContext(ctx, "content.write"); err != nil {
//	    // denied
//	}
package perms
