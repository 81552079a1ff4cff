package csrf

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/crudkit/handler"
)

// Middleware assigns each client a session cookie and rejects state-changing
// requests that do not carry a valid token in the header, the form field or
// one of the WithTokenSource lookups.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(m.cookieName); err == nil && uuid.Validate(c.Value) == nil {
			sid = c.Value
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		r = r.WithContext(WithSession(r.Context(), sid))

		if safeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		if err := m.Verify(r.Context(), m.token(r)); err != nil {
			m.onError(w, r, errors.Join(handler.ErrForbidden, err))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// token looks in the header, the form field and then the extra sources.
func (m *Manager) token(r *http.Request) string {
	if tok := r.Header.Get(m.headerName); tok != "" {
		return tok
	}
	if tok := r.PostFormValue(m.fieldName); tok != "" {
		return tok
	}
	for _, src := range m.sources {
		if tok := src(r); tok != "" {
			return tok
		}
	}
	return ""
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func rejectForbidden(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, handler.ErrForbidden.Key, handler.ErrForbidden.Code)
}
