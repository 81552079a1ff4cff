// Package csrf protects form posts with signed, session-bound tokens.
//
// The middleware gives every client a random session cookie. Tokens are
// base64url(json).base64url(hmac-sha256) over the session id, a nonce and an
// expiry, so they need no server-side storage:
//
//	m, err := csrf.New(cfg.CSRFSecret)
//	r.Use(m.Middleware)
//
//	tok, err := m.GenerateToken(r.Context()) // render into the form
//
// POST, PUT, PATCH and DELETE requests must send the token in the
// X-CSRF-Token header or the "csrf" form field; anything else is answered
// with 403.
package csrf
