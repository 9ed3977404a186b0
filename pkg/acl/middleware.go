package acl

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorHandler handles authorization failures in the HTTP middleware.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// middlewareConfig holds middleware configuration.
type middlewareConfig struct {
	errorHandler ErrorHandler
}

// MiddlewareOption configures the authorization middleware.
type MiddlewareOption func(*middlewareConfig)

// WithErrorHandler sets a custom handler for denied or malformed
// requests.
func WithErrorHandler(handler ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.errorHandler = handler
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrRoleNotInContext):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrPermissionDenied):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Require creates HTTP middleware that admits a request only if the role
// in the request context is allowed the privilege on the resource. A
// missing role or a denied query rejects the request through the error
// handler, so unauthenticated requests fail closed.
func Require(policy *Policy, resource, privilege string, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				cfg.errorHandler(w, r, ErrRoleNotInContext)
				return
			}

			if !policy.IsAllowed(role, resource, privilege) {
				cfg.errorHandler(w, r, errors.Join(ErrPermissionDenied,
					fmt.Errorf("role %q is not allowed %q on %q", role, privilege, resource)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny is Require for alternatives: the request is admitted if any
// (resource, privilege) pair from the given lists is allowed for the
// context role. Nil lists widen to the wildcard, as in IsAllowedAny.
func RequireAny(policy *Policy, resources, privileges []string, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				cfg.errorHandler(w, r, ErrRoleNotInContext)
				return
			}

			if !policy.IsAllowedAny([]string{role}, resources, privileges) {
				cfg.errorHandler(w, r, errors.Join(ErrPermissionDenied,
					fmt.Errorf("role %q is not allowed any of the requested operations", role)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
