package crud

import (
	"context"

	"github.com/dmitrymomot/crudkit/handler"
	"github.com/dmitrymomot/crudkit/pkg/i18n"
)

// Entity is the contract every concrete entity handler implements.
type Entity interface {
	// DefaultView renders the entity page. GET requests and POSTs without a
	// config field end up here.
	DefaultView(req *Request) handler.Response
	// Save persists the posted entity ("config=submit").
	Save(req *Request) Result
	// Delete removes the posted entity ("config=delete"). Its response is
	// sent unchanged, so it must report failures itself.
	Delete(req *Request) handler.Response
}

// TemplateDataProvider supplies the attributes HTMLResponse renders with.
type TemplateDataProvider interface {
	TemplateData(req *Request, feedback []string) map[string]any
}

// LookupProvider produces search results for Request.Lookup.
type LookupProvider interface {
	LookupResult(req *Request, feedback []string) handler.Response
}

// ExtraConfigHandler handles config values other than submit and delete.
type ExtraConfigHandler interface {
	HandleConfig(req *Request, config string) Result
}

// Renderer renders a named template with attributes into markup.
// Missing optional attributes must not be an error.
type Renderer interface {
	Render(ctx context.Context, name string, attrs map[string]any) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, name string, attrs map[string]any) (string, error)

// Render implements Renderer.
func (f RendererFunc) Render(ctx context.Context, name string, attrs map[string]any) (string, error) {
	return f(ctx, name, attrs)
}

// TokenGenerator issues CSRF tokens for the session bound to ctx.
type TokenGenerator interface {
	GenerateToken(ctx context.Context) (string, error)
}

// QueryLog exposes the queries executed while serving the request bound to ctx.
type QueryLog interface {
	Queries(ctx context.Context) []string
}

// LanguageLoader resolves language codes to dictionaries.
// *i18n.Loader implements it.
type LanguageLoader interface {
	Load(ctx context.Context, lang string) (*i18n.LanguageContext, error)
	DefaultLanguage() string
}
