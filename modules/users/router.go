package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router mounts the users dispatcher. The dispatcher answers every method
// itself, including 405 for unsupported ones.
//
//	r.Mount("/admin/users", users.Router(dispatcher))
func Router(dispatcher http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Handle("/", dispatcher)
	return r
}
