package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

// HTMLEnvelope carries rendered markup to JavaScript clients.
type HTMLEnvelope struct {
	HTML string `json:"html"`
}

// MessagesEnvelope carries user-facing messages, usually errors.
// Messages is always encoded as an array.
type MessagesEnvelope struct {
	Messages []string `json:"messages"`
}

// jsonResponse implements Response for JSON rendering
type jsonResponse struct {
	status int
	body   any
}

// Render encodes the body before touching the writer, so an encoding failure
// leaves the response untouched for the error handler.
func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(j.body); err != nil {
		return errors.Join(ErrEncodeFailed, err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err := buf.WriteTo(w)
	return err
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON creates a response encoding v as is, with status 200 by default.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{
		status: http.StatusOK,
		body:   v,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HTMLJSON wraps rendered markup as {"html": "..."} with status 200.
func HTMLJSON(html string) Response {
	return JSON(HTMLEnvelope{HTML: html})
}

// Messages creates a {"messages": [...]} response with the given status.
// No messages encode as an empty array.
func Messages(status int, msgs ...string) Response {
	if msgs == nil {
		msgs = []string{}
	}
	return JSON(MessagesEnvelope{Messages: msgs}, WithJSONStatus(status))
}
