package crud

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/crudkit/handler"
	"github.com/dmitrymomot/crudkit/pkg/logger"
	"github.com/dmitrymomot/crudkit/schema"
)

// DefaultSettingsPrefix prefixes user settings keys, e.g. "settings_language".
const DefaultSettingsPrefix = "settings_"

// Dispatcher routes requests for one entity to its operations.
//
//	GET, HEAD            DefaultView
//	POST without config  DefaultView with the post data
//	POST config=submit   Save
//	POST config=delete   Delete
//	POST config=<other>  ExtraConfigHandler, or 400
//
// Every request produces exactly one response. A Dispatcher holds no
// per-request state and is safe for concurrent use.
type Dispatcher struct {
	name           string
	entity         Entity
	tables         schema.TableConfig
	config         schema.HandlerConfig
	renderer       Renderer
	csrf           TokenGenerator
	queries        QueryLog
	languages      LanguageLoader
	settingsPrefix string
	logger         *slog.Logger
	onError        handler.ErrorHandler
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTables sets the table config used by Request.InsertArray.
func WithTables(tables schema.TableConfig) Option {
	return func(d *Dispatcher) { d.tables = tables }
}

// WithHandlerConfig sets the search queue and lookup conditions.
func WithHandlerConfig(cfg schema.HandlerConfig) Option {
	return func(d *Dispatcher) { d.config = cfg }
}

// WithRenderer sets the template renderer.
func WithRenderer(r Renderer) Option {
	return func(d *Dispatcher) { d.renderer = r }
}

// WithCSRF enables CSRF token generation for rendered views.
func WithCSRF(g TokenGenerator) Option {
	return func(d *Dispatcher) { d.csrf = g }
}

// WithQueryLog exposes executed queries to templates of authenticated admins.
func WithQueryLog(q QueryLog) Option {
	return func(d *Dispatcher) { d.queries = q }
}

// WithLanguageLoader sets the loader used to switch to the admin's
// preferred language.
func WithLanguageLoader(l LanguageLoader) Option {
	return func(d *Dispatcher) { d.languages = l }
}

// WithSettingsPrefix sets the prefix of user settings keys.
func WithSettingsPrefix(prefix string) Option {
	return func(d *Dispatcher) { d.settingsPrefix = prefix }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.logger = log
		}
	}
}

// WithErrorHandler sets the handler for render and encode failures.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.onError = h
		}
	}
}

// New creates a Dispatcher serving entity under name.
func New(name string, entity Entity, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		name:           name,
		entity:         entity,
		settingsPrefix: DefaultSettingsPrefix,
		logger:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.onError == nil {
		d.onError = handler.NewErrorHandler(d.logger, handler.ErrorHandlerConfig{})
	}
	d.logger = d.logger.With(logger.Component("crud"), logger.Handler(name))
	return d
}

// Name returns the entity name.
func (d *Dispatcher) Name() string { return d.name }

// Tables returns the table config.
func (d *Dispatcher) Tables() schema.TableConfig { return d.tables }

// Config returns the handler config.
func (d *Dispatcher) Config() schema.HandlerConfig { return d.config }

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.Handle(w, r)
}

// Handle dispatches r and writes the response.
func (d *Dispatcher) Handle(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			d.onError(w, r, fmt.Errorf("%w: %v", ErrHandlerPanic, rec))
		}
	}()

	req := d.newRequest(r)

	var resp handler.Response
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		resp = d.handleGet(req)
	case http.MethodPost:
		resp = d.handlePost(req)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		resp = handler.Messages(http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}

	handler.Write(w, r, resp, d.onError)
}

func (d *Dispatcher) newRequest(r *http.Request) *Request {
	admin, _ := AdminFromContext(r.Context())
	return &Request{
		d:     d,
		r:     r,
		Post:  PostData{},
		Admin: admin,
	}
}

func (d *Dispatcher) handleGet(req *Request) handler.Response {
	if d.csrf != nil {
		req.issueCSRFToken()
	}
	return d.entity.DefaultView(req)
}

func (d *Dispatcher) handlePost(req *Request) handler.Response {
	req.Post = FetchPostData(req.r)

	config, ok := req.Post.Config()
	if !ok {
		return d.entity.DefaultView(req)
	}

	d.logger.DebugContext(req.Context(), "dispatching config", logger.Action(config))

	switch config {
	case ConfigSubmit:
		return d.resolve(req, d.entity.Save(req))
	case ConfigDelete:
		return d.entity.Delete(req)
	}

	extra, ok := d.entity.(ExtraConfigHandler)
	if !ok {
		return handler.Messages(http.StatusBadRequest, fmt.Sprintf(msgUnsupportedConfig, config))
	}
	return d.resolve(req, extra.HandleConfig(req, config))
}

// resolve turns a Result into the response sent to the client.
func (d *Dispatcher) resolve(req *Request, res Result) handler.Response {
	switch res.Outcome() {
	case OutcomeSuccess:
		return handler.JSON(res.Payload())
	case OutcomeRespond:
		return res.Response()
	default:
		msgs := append(req.Errors(), res.Messages()...)
		return handler.Messages(http.StatusBadRequest, msgs...)
	}
}
