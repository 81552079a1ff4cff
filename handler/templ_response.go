package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/a-h/templ"
)

// templResponse wraps a templ component to implement Response
type templResponse struct {
	component templ.Component
	status    int
}

// Render buffers the component so a failing component never emits a
// partial page.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	var buf bytes.Buffer
	if err := t.component.Render(r.Context(), &buf); err != nil {
		return errors.Join(ErrRenderFailed, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(t.status)
	_, err := buf.WriteTo(w)
	return err
}

// Templ creates a response from a templ component.
//
//	return handler.Templ(views.UserCard(user))
func Templ(component templ.Component) Response {
	return templResponse{component: component, status: http.StatusOK}
}

// TemplWithStatus renders component with a custom status code.
func TemplWithStatus(status int, component templ.Component) Response {
	return templResponse{component: component, status: status}
}
