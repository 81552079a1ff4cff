package crud

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/dmitrymomot/crudkit/handler"
	"github.com/dmitrymomot/crudkit/pkg/i18n"
	"github.com/dmitrymomot/crudkit/pkg/logger"
	"github.com/dmitrymomot/crudkit/schema"
)

// Request is the per-request state handed to entity operations.
// It is not safe for concurrent use.
type Request struct {
	d *Dispatcher
	r *http.Request

	// Post holds the request fields. It is empty for GET requests.
	Post PostData
	// Admin is the authenticated admin, zero for anonymous requests.
	Admin AdminContext

	errors    []string
	lang      *i18n.LanguageContext
	csrfToken string
	csrfDone  bool
}

// NewRequest builds a Request outside of Dispatcher.Handle, e.g. in tests of
// entity implementations.
func (d *Dispatcher) NewRequest(r *http.Request, post PostData) *Request {
	req := d.newRequest(r)
	if post != nil {
		req.Post = post
	}
	return req
}

// HTTP returns the underlying request.
func (req *Request) HTTP() *http.Request { return req.r }

// Context returns the request context.
func (req *Request) Context() context.Context { return req.r.Context() }

// Tables returns the dispatcher's table config.
func (req *Request) Tables() schema.TableConfig { return req.d.tables }

// Config returns the dispatcher's handler config.
func (req *Request) Config() schema.HandlerConfig { return req.d.config }

// Logger returns the dispatcher logger.
func (req *Request) Logger() *slog.Logger { return req.d.logger }

// Authenticated reports whether an admin is attached to the request.
func (req *Request) Authenticated() bool { return req.Admin.Authenticated() }

// AddError records user-facing messages. They are sent with the 400 envelope
// when the operation returns a Failure.
func (req *Request) AddError(msgs ...string) {
	req.errors = append(req.errors, msgs...)
}

// Errors returns the messages recorded with AddError.
func (req *Request) Errors() []string {
	return slices.Clone(req.errors)
}

// InsertArray returns the sanitized insert payload for tableKey built from
// the post data.
func (req *Request) InsertArray(tableKey string) map[string]string {
	return BuildInsert(req.d.tables, tableKey, req.Post)
}

// LookupConditions returns the lookup conditions bound to the posted search term.
func (req *Request) LookupConditions() schema.Conditions {
	return BuildLookupConditions(req.d.config, req.Post)
}

// SearchQuery returns the posted search term, or "".
func (req *Request) SearchQuery() string {
	if !req.d.config.HasSearchQueue() {
		return ""
	}
	return req.Post.Value(req.d.config.SearchQueue)
}

// Lookup makes sure the search queue field exists in the post data, defaulting
// it to "", and returns the entity's LookupResult.
func (req *Request) Lookup(feedback ...string) handler.Response {
	if sq := req.d.config.SearchQueue; sq != "" && !req.Post.Has(sq) {
		if req.Post == nil {
			req.Post = PostData{}
		}
		req.Post[sq] = ""
	}

	provider, ok := req.d.entity.(LookupProvider)
	if !ok {
		return handler.Messages(http.StatusBadRequest, msgLookupUnsupported)
	}
	return provider.LookupResult(req, feedback)
}

// CSRFToken returns the CSRF token of the request, generating it on first
// use. It is empty without a configured guard or when generation failed.
func (req *Request) CSRFToken() string {
	if !req.csrfDone {
		req.issueCSRFToken()
	}
	return req.csrfToken
}

func (req *Request) issueCSRFToken() {
	req.csrfDone = true
	if req.d.csrf == nil {
		return
	}
	token, err := req.d.csrf.GenerateToken(req.Context())
	if err != nil {
		// Rendering continues without a token; the guard rejects the next post.
		req.d.logger.WarnContext(req.Context(), "failed to generate csrf token", logger.Error(err))
		return
	}
	req.csrfToken = token
}

// Queries returns the queries executed for this request, or nil without a
// configured query log.
func (req *Request) Queries() []string {
	if req.d.queries == nil {
		return nil
	}
	return req.d.queries.Queries(req.Context())
}

// Language returns the active language, resolving it once per request.
//
// The language attached by i18n.Middleware is used when present, otherwise
// the loader's default language. When the authenticated admin stores a
// different preferred language, that one is loaded instead.
func (req *Request) Language() *i18n.LanguageContext {
	if req.lang != nil {
		return req.lang
	}

	lang := i18n.FromContext(req.Context())
	loader := req.d.languages

	if lang == nil && loader != nil {
		var err error
		lang, err = loader.Load(req.Context(), loader.DefaultLanguage())
		if err != nil {
			req.d.logger.WarnContext(req.Context(), "failed to load default language", logger.Error(err))
		}
	}

	if pref, ok := req.preferredLanguage(); ok && loader != nil && !lang.Is(pref) {
		preferred, err := loader.Load(req.Context(), pref)
		if err != nil {
			req.d.logger.WarnContext(req.Context(), "failed to load preferred language",
				logger.Language(pref),
				logger.Error(err),
			)
		} else {
			lang = preferred
		}
	}

	if lang == nil {
		lang = i18n.NewLanguageContext(i18n.DefaultLanguage, nil)
	}
	req.lang = lang
	return lang
}

func (req *Request) preferredLanguage() (string, bool) {
	if !req.Admin.Authenticated() {
		return "", false
	}
	return req.Admin.Setting(req.d.settingsPrefix + "language")
}
