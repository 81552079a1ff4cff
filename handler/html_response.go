package handler

import (
	"io"
	"net/http"
)

type htmlResponse struct {
	status int
	body   string
}

func (h htmlResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(h.status)
	_, err := io.WriteString(w, h.body)
	return err
}

// HTML creates a response writing pre-rendered markup with status 200.
func HTML(body string) Response {
	return htmlResponse{status: http.StatusOK, body: body}
}
