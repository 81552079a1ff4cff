package handler

import "errors"

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrEncodeFailed indicates a response body could not be serialized
	ErrEncodeFailed = errors.New("failed to encode response")
	// ErrRenderFailed indicates a component failed to render
	ErrRenderFailed = errors.New("failed to render response")
)
