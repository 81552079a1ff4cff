package handler

import "net/http"

// Response renders itself to an http.ResponseWriter.
// Implementations set headers, status code, and write the body.
// Render errors are passed to an ErrorHandler.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ResponseFunc adapts a function to Response.
type ResponseFunc func(w http.ResponseWriter, r *http.Request) error

// Render implements Response.
func (f ResponseFunc) Render(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// ErrorHandler writes an error response for err.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Write renders resp and hands any failure to onErr.
// A nil resp is reported as ErrNilResponse.
func Write(w http.ResponseWriter, r *http.Request, resp Response, onErr ErrorHandler) {
	if resp == nil {
		onErr(w, r, ErrNilResponse)
		return
	}
	if err := resp.Render(w, r); err != nil {
		onErr(w, r, err)
	}
}
