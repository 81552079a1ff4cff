package csrf

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"github.com/dmitrymomot/crudkit/handler"
)

const (
	DefaultCookieName = "crudkit_sid"
	DefaultHeaderName = "X-CSRF-Token"
	DefaultFieldName  = "csrf"
	DefaultTTL        = 12 * time.Hour
)

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets how long issued tokens stay valid.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name = strings.TrimSpace(name); name != "" {
			m.cookieName = name
		}
	}
}

// WithHeaderName overrides the request header carrying the token.
func WithHeaderName(name string) Option {
	return func(m *Manager) {
		if name = strings.TrimSpace(name); name != "" {
			m.headerName = name
		}
	}
}

// WithFieldName overrides the form field carrying the token.
func WithFieldName(name string) Option {
	return func(m *Manager) {
		if name = strings.TrimSpace(name); name != "" {
			m.fieldName = name
		}
	}
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithErrorHandler sets the handler for rejected requests.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(m *Manager) {
		if h != nil {
			m.onError = h
		}
	}
}

// WithTokenSource adds a lookup consulted when neither the header nor the
// form field carries a token, e.g. a JSON body already decoded by an
// earlier middleware.
func WithTokenSource(src func(*http.Request) string) Option {
	return func(m *Manager) {
		if src != nil {
			m.sources = append(m.sources, src)
		}
	}
}

// Manager issues and verifies tokens bound to a cookie session.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	headerName string
	fieldName  string
	secure     bool
	onError    handler.ErrorHandler
	sources    []func(*http.Request) string
	now        func() time.Time
}

// New creates a Manager signing tokens with a key derived from secret.
func New(secret string, opts ...Option) (*Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte("crudkit csrf")), key); err != nil {
		return nil, err
	}
	m := &Manager{
		secret:     key,
		ttl:        DefaultTTL,
		cookieName: DefaultCookieName,
		headerName: DefaultHeaderName,
		fieldName:  DefaultFieldName,
		onError:    rejectForbidden,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

var sessionKey = handler.NewContextKey("csrf.session")

// WithSession stores a session id in ctx.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionFromContext returns the session id stored by the middleware.
func SessionFromContext(ctx context.Context) string {
	return handler.ContextValue[string](ctx, sessionKey)
}

// GenerateToken issues a fresh token for the session in ctx.
func (m *Manager) GenerateToken(ctx context.Context) (string, error) {
	sid := SessionFromContext(ctx)
	if sid == "" {
		return "", ErrNoSession
	}
	return sign(payload{
		SessionID: sid,
		Nonce:     uuid.NewString(),
		ExpiresAt: m.now().Add(m.ttl).Unix(),
	}, m.secret)
}

// Verify checks that tok was issued by m for the session in ctx and has not
// expired.
func (m *Manager) Verify(ctx context.Context, tok string) error {
	if tok == "" {
		return ErrMissingToken
	}
	sid := SessionFromContext(ctx)
	if sid == "" {
		return ErrNoSession
	}
	p, err := parse(tok, m.secret)
	if err != nil {
		return err
	}
	if m.now().Unix() > p.ExpiresAt {
		return ErrTokenExpired
	}
	if subtle.ConstantTimeCompare([]byte(p.SessionID), []byte(sid)) != 1 {
		return ErrSessionMismatch
	}
	return nil
}
