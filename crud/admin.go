package crud

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/crudkit/handler"
)

// AdminContext is the identity of the authenticated admin, supplied by the
// auth collaborator. A non-empty Name is the sole authentication signal.
type AdminContext struct {
	Name     string
	UserPath string
	User     any
	Settings map[string]any
}

// Authenticated reports whether the context identifies an admin.
func (a AdminContext) Authenticated() bool {
	return a.Name != ""
}

// Setting returns the stored setting key formatted as a string.
// Missing and empty settings report false.
func (a AdminContext) Setting(key string) (string, bool) {
	v, ok := a.Settings[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return s, s != ""
}

var adminKey = handler.NewContextKey("crud.admin")

// WithAdmin stores admin in ctx.
func WithAdmin(ctx context.Context, admin AdminContext) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// AdminFromContext returns the admin stored in ctx. ok is false for requests
// without an authenticated admin.
func AdminFromContext(ctx context.Context) (AdminContext, bool) {
	admin, ok := handler.ContextValueOK[AdminContext](ctx, adminKey)
	return admin, ok && admin.Authenticated()
}

// AdminResolver derives the admin identity of a request, e.g. from a session.
type AdminResolver func(r *http.Request) (AdminContext, bool)

// AdminMiddleware attaches the admin resolved by resolve to each request.
// Unauthenticated requests pass through unchanged.
func AdminMiddleware(resolve AdminResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if admin, ok := resolve(r); ok && admin.Authenticated() {
				r = r.WithContext(WithAdmin(r.Context(), admin))
			}
			next.ServeHTTP(w, r)
		})
	}
}
