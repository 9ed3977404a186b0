package perms

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// RoleSource provides role definitions to NewAuthorizer.
type RoleSource interface {
	// Load returns all roles by name.
	Load(ctx context.Context) (map[string]Role, error)
}

// staticSource is a RoleSource over a fixed in-memory role map.
type staticSource struct {
	mu    sync.RWMutex
	roles map[string]Role
}

// NewStaticSource creates a RoleSource from an in-memory role map. The
// map is deep-copied so later caller mutation cannot leak in.
func NewStaticSource(roles map[string]Role) RoleSource {
	copied := make(map[string]Role, len(roles))
	for name, role := range roles {
		copied[name] = Role{
			Permissions: slices.Clone(role.Permissions),
			Inherits:    slices.Clone(role.Inherits),
		}
	}
	return &staticSource{roles: copied}
}

func (s *staticSource) Load(ctx context.Context) (map[string]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roles, nil
}

// Authorizer answers permission checks against a precomputed, immutable
// role→grants table. All inheritance is flattened at construction;
// queries never traverse, so concurrent use needs no locking.
type Authorizer struct {
	grants map[string][]string
}

// NewAuthorizer loads roles from the source, validates the inheritance
// relation (every inherited role declared, no cycles) and flattens each
// role's transitive permission union.
func NewAuthorizer(ctx context.Context, source RoleSource) (*Authorizer, error) {
	roles, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateInheritance(roles); err != nil {
		return nil, err
	}

	grants := make(map[string][]string, len(roles))
	for name := range roles {
		union := flatten(name, roles, make(map[string]bool))
		slices.Sort(union)
		grants[name] = slices.Compact(union)
	}

	return &Authorizer{grants: grants}, nil
}

// HasRole reports whether the role is declared.
func (a *Authorizer) HasRole(name string) bool {
	_, ok := a.grants[name]
	return ok
}

// Roles returns all role names in lexical order.
func (a *Authorizer) Roles() []string {
	names := make([]string, 0, len(a.grants))
	for name := range a.grants {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Permissions returns the role's flattened grant set, inherited grants
// included, in lexical order.
func (a *Authorizer) Permissions(role string) ([]string, error) {
	grants, ok := a.grants[role]
	if !ok {
		return nil, errors.Join(ErrUnknownRole, fmt.Errorf("unknown role %q", role))
	}
	return slices.Clone(grants), nil
}

// Can checks whether the role is granted the permission, directly or
// through inheritance.
func (a *Authorizer) Can(role, permission string) error {
	grants, ok := a.grants[role]
	if !ok {
		return errors.Join(ErrUnknownRole, fmt.Errorf("unknown role %q", role))
	}
	if !covered(grants, permission) {
		return errors.Join(ErrPermissionDenied,
			fmt.Errorf("role %q lacks %q", role, permission))
	}
	return nil
}

// CanAny checks whether the role holds at least one of the permissions.
// An empty permission list is always satisfied.
func (a *Authorizer) CanAny(role string, permissions ...string) error {
	grants, ok := a.grants[role]
	if !ok {
		return errors.Join(ErrUnknownRole, fmt.Errorf("unknown role %q", role))
	}
	if len(permissions) == 0 {
		return nil
	}
	for _, permission := range permissions {
		if covered(grants, permission) {
			return nil
		}
	}
	return errors.Join(ErrPermissionDenied,
		fmt.Errorf("role %q holds none of %q", role, permissions))
}

// CanAll checks whether the role holds every one of the permissions.
func (a *Authorizer) CanAll(role string, permissions ...string) error {
	grants, ok := a.grants[role]
	if !ok {
		return errors.Join(ErrUnknownRole, fmt.Errorf("unknown role %q", role))
	}
	for _, permission := range permissions {
		if !covered(grants, permission) {
			return errors.Join(ErrPermissionDenied,
				fmt.Errorf("role %q lacks %q", role, permission))
		}
	}
	return nil
}

// CanFromContext checks the permission against the role stored in the
// context.
func (a *Authorizer) CanFromContext(ctx context.Context, permission string) error {
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return errors.Join(ErrNoRoleInContext, ErrPermissionDenied)
	}
	return a.Can(role, permission)
}

// CanAnyFromContext is CanAny for the context role.
func (a *Authorizer) CanAnyFromContext(ctx context.Context, permissions ...string) error {
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return errors.Join(ErrNoRoleInContext, ErrPermissionDenied)
	}
	return a.CanAny(role, permissions...)
}

// CanAllFromContext is CanAll for the context role.
func (a *Authorizer) CanAllFromContext(ctx context.Context, permissions ...string) error {
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return errors.Join(ErrNoRoleInContext, ErrPermissionDenied)
	}
	return a.CanAll(role, permissions...)
}

// flatten collects a role's permissions plus everything it inherits.
// Inheritance is already validated, so dangling names cannot occur here.
func flatten(name string, roles map[string]Role, visited map[string]bool) []string {
	if visited[name] {
		return nil
	}
	visited[name] = true

	role := roles[name]
	result := slices.Clone(role.Permissions)
	for _, inherited := range role.Inherits {
		result = append(result, flatten(inherited, roles, visited)...)
	}
	return result
}

// validateInheritance rejects references to undeclared roles and
// inheritance cycles. Roles are walked in lexical order so the reported
// cycle is stable across runs.
func validateInheritance(roles map[string]Role) error {
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		for _, inherited := range roles[name].Inherits {
			if _, ok := roles[inherited]; !ok {
				return errors.Join(ErrUnknownRole,
					fmt.Errorf("role %q inherits undeclared role %q", name, inherited))
			}
		}
	}

	state := make(map[string]int, len(roles))
	var path []string

	var visit func(name string) []string
	visit = func(name string) []string {
		state[name] = onStack
		path = append(path, name)

		for _, inherited := range roles[name].Inherits {
			switch state[inherited] {
			case onStack:
				for i, n := range path {
					if n == inherited {
						return append(slices.Clone(path[i:]), inherited)
					}
				}
			case unvisited:
				if cycle := visit(inherited); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		state[name] = finished
		return nil
	}

	for _, name := range names {
		if state[name] != unvisited {
			continue
		}
		if cycle := visit(name); cycle != nil {
			return errors.Join(ErrCircularInheritance,
				fmt.Errorf("inheritance cycle: %s", strings.Join(cycle, " -> ")))
		}
	}

	return nil
}

// DFS states for inheritance validation.
const (
	unvisited = iota
	onStack
	finished
)

// roleCtxKey is the context key for storing the caller's role.
type roleCtxKey struct{}

// SetRoleToContext stores the caller's role in the context.
func SetRoleToContext(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// GetRoleFromContext retrieves the caller's role from the context.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(string)
	return role, ok
}
