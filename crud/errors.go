package crud

import "errors"

var (
	// ErrNoRenderer is returned by RenderHTML when the dispatcher has no renderer.
	ErrNoRenderer = errors.New("crud: no template renderer configured")
	// ErrRenderFailed wraps renderer failures.
	ErrRenderFailed = errors.New("crud: failed to render template")
	// ErrHandlerPanic reports a recovered panic from an entity.
	ErrHandlerPanic = errors.New("crud: entity handler panicked")
)

// Messages sent to clients.
const (
	msgMethodNotAllowed  = "method not allowed"
	msgUnsupportedConfig = "unsupported config %q"
	msgLookupUnsupported = "lookup is not supported"
	msgInvalidBody       = "invalid request body"
)
