package csrf

import "errors"

var (
	ErrEmptySecret      = errors.New("csrf: secret must not be empty")
	ErrNoSession        = errors.New("csrf: no session in context")
	ErrMissingToken     = errors.New("csrf: token missing")
	ErrInvalidToken     = errors.New("csrf: invalid token format")
	ErrSignatureInvalid = errors.New("csrf: signature mismatch")
	ErrTokenExpired     = errors.New("csrf: token expired")
	ErrSessionMismatch  = errors.New("csrf: token issued for another session")
)
