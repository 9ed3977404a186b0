package perms_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elycruz/walrs-sub000/pkg/perms"
)

func testRoles() map[string]perms.Role {
	return map[string]perms.Role{
		"viewer": {
			Permissions: []string{"content.read"},
		},
		"editor": {
			Permissions: []string{"content.write", "content.publish"},
			Inherits:    []string{"viewer"},
		},
		"moderator": {
			Permissions: []string{"comments.*"},
			Inherits:    []string{"viewer"},
		},
		"admin": {
			Permissions: []string{"admin.*"},
			Inherits:    []string{"editor", "moderator"},
		},
		"superadmin": {
			Permissions: []string{"*"},
		},
	}
}

func newAuthorizer(t *testing.T) *perms.Authorizer {
	t.Helper()

	auth, err := perms.NewAuthorizer(context.Background(), perms.NewStaticSource(testRoles()))
	require.NoError(t, err)
	return auth
}

func TestAuthorizer_Can(t *testing.T) {
	t.Parallel()

	auth := newAuthorizer(t)

	tests := []struct {
		name       string
		role       string
		permission string
		wantErr    error
	}{
		{"direct permission", "editor", "content.write", nil},
		{"inherited permission", "editor", "content.read", nil},
		{"diamond inheritance", "admin", "content.read", nil},
		{"namespace wildcard", "moderator", "comments.delete", nil},
		{"global wildcard", "superadmin", "anything.at.all", nil},
		{"not granted", "viewer", "content.write", perms.ErrPermissionDenied},
		{"wildcard does not cross namespaces", "moderator", "billing.view", perms.ErrPermissionDenied},
		{"unknown role", "nobody", "content.read", perms.ErrUnknownRole},
		{"empty permission", "viewer", "", perms.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.Can(tt.role, tt.permission)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizer_CanAnyAll(t *testing.T) {
	t.Parallel()

	auth := newAuthorizer(t)

	t.Run("any", func(t *testing.T) {
		assert.NoError(t, auth.CanAny("editor", "billing.view", "content.write"))
		assert.ErrorIs(t, auth.CanAny("viewer", "billing.view", "content.write"), perms.ErrPermissionDenied)
		assert.NoError(t, auth.CanAny("viewer")) // vacuously satisfied
		assert.ErrorIs(t, auth.CanAny("nobody", "content.read"), perms.ErrUnknownRole)
	})

	t.Run("all", func(t *testing.T) {
		assert.NoError(t, auth.CanAll("admin", "content.read", "content.write", "comments.flag"))
		assert.ErrorIs(t, auth.CanAll("editor", "content.read", "comments.flag"), perms.ErrPermissionDenied)
		assert.NoError(t, auth.CanAll("viewer"))
	})
}

func TestAuthorizer_Introspection(t *testing.T) {
	t.Parallel()

	auth := newAuthorizer(t)

	assert.True(t, auth.HasRole("editor"))
	assert.False(t, auth.HasRole("nobody"))
	assert.Equal(t, []string{"admin", "editor", "moderator", "superadmin", "viewer"}, auth.Roles())

	grants, err := auth.Permissions("editor")
	require.NoError(t, err)
	assert.Equal(t, []string{"content.publish", "content.read", "content.write"}, grants)

	_, err = auth.Permissions("nobody")
	assert.ErrorIs(t, err, perms.ErrUnknownRole)
}

func TestAuthorizer_ContextChecks(t *testing.T) {
	t.Parallel()

	auth := newAuthorizer(t)

	t.Run("role in context", func(t *testing.T) {
		ctx := perms.SetRoleToContext(context.Background(), "editor")
		assert.NoError(t, auth.CanFromContext(ctx, "content.write"))
		assert.NoError(t, auth.CanAnyFromContext(ctx, "billing.view", "content.read"))
		assert.ErrorIs(t, auth.CanAllFromContext(ctx, "content.read", "admin.users"), perms.ErrPermissionDenied)
	})

	t.Run("no role in context", func(t *testing.T) {
		ctx := context.Background()
		assert.ErrorIs(t, auth.CanFromContext(ctx, "content.read"), perms.ErrNoRoleInContext)
		assert.ErrorIs(t, auth.CanFromContext(ctx, "content.read"), perms.ErrPermissionDenied)
	})
}

func TestNewAuthorizer_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("circular inheritance", func(t *testing.T) {
		t.Parallel()

		roles := map[string]perms.Role{
			"a": {Inherits: []string{"b"}},
			"b": {Inherits: []string{"c"}},
			"c": {Inherits: []string{"a"}},
		}

		_, err := perms.NewAuthorizer(ctx, perms.NewStaticSource(roles))
		assert.ErrorIs(t, err, perms.ErrCircularInheritance)
	})

	t.Run("self inheritance", func(t *testing.T) {
		t.Parallel()

		roles := map[string]perms.Role{
			"a": {Inherits: []string{"a"}},
		}

		_, err := perms.NewAuthorizer(ctx, perms.NewStaticSource(roles))
		assert.ErrorIs(t, err, perms.ErrCircularInheritance)
	})

	t.Run("dangling inheritance", func(t *testing.T) {
		t.Parallel()

		roles := map[string]perms.Role{
			"a": {Inherits: []string{"ghost"}},
		}

		_, err := perms.NewAuthorizer(ctx, perms.NewStaticSource(roles))
		assert.ErrorIs(t, err, perms.ErrUnknownRole)
	})

	t.Run("source mutation after creation is invisible", func(t *testing.T) {
		t.Parallel()

		roles := testRoles()
		source := perms.NewStaticSource(roles)
		roles["viewer"] = perms.Role{Permissions: []string{"*"}}

		auth, err := perms.NewAuthorizer(ctx, source)
		require.NoError(t, err)
		assert.ErrorIs(t, auth.Can("viewer", "content.write"), perms.ErrPermissionDenied)
	})
}

func TestAuthorizer_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	auth := newAuthorizer(t)

	const numGoroutines = 50
	const numOperations = 500

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()

			for j := 0; j < numOperations; j++ {
				switch (id + j) % 4 {
				case 0:
					assert.NoError(t, auth.Can("editor", "content.write"))
				case 1:
					assert.Error(t, auth.Can("viewer", "content.write"))
				case 2:
					assert.NoError(t, auth.CanAll("admin", "content.read", "comments.flag"))
				case 3:
					_ = auth.Roles()
				}
			}
		}(i)
	}

	wg.Wait()
}
