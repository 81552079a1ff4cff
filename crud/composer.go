package crud

import (
	"errors"
	"maps"
	"net/http"

	"github.com/dmitrymomot/crudkit/handler"
	"github.com/dmitrymomot/crudkit/pkg/logger"
)

// Template attribute keys added for authenticated admins.
const (
	AttrAdminName    = "adminName"
	AttrUserPath     = "userPath"
	AttrUser         = "user"
	AttrUserSettings = "userSettings"
	AttrLanguage     = "language"
	AttrTranslate    = "translate"
	AttrCSRFToken    = "csrfToken"
	AttrQueries      = "queries"
)

// RenderHTML renders the template name with attrs.
//
// For authenticated admins the attributes are augmented with the admin
// identity, the active language dictionary, a translate function, the CSRF
// token and, with a configured query log, the executed queries. Keys already
// set by the caller win, except adminName, which always reflects the
// authenticated admin. attrs itself is not modified.
func (req *Request) RenderHTML(name string, attrs map[string]any) (string, error) {
	if req.d.renderer == nil {
		return "", ErrNoRenderer
	}

	out := make(map[string]any, len(attrs)+8)
	maps.Copy(out, attrs)

	if req.Admin.Authenticated() {
		out[AttrAdminName] = req.Admin.Name

		lang := req.Language()
		setDefault(out, AttrUserPath, req.Admin.UserPath)
		setDefault(out, AttrUser, req.Admin.User)
		setDefault(out, AttrUserSettings, req.Admin.Settings)
		setDefault(out, AttrLanguage, lang.Dictionary)
		setDefault(out, AttrTranslate, lang.T)
		if token := req.CSRFToken(); token != "" {
			setDefault(out, AttrCSRFToken, token)
		}
		if req.d.queries != nil {
			setDefault(out, AttrQueries, req.Queries())
		}
	}

	html, err := req.d.renderer.Render(req.Context(), name, out)
	if err != nil {
		req.d.logger.ErrorContext(req.Context(), "failed to render template",
			logger.Template(name),
			logger.Error(err),
		)
		return "", errors.Join(ErrRenderFailed, err)
	}
	return html, nil
}

func setDefault(attrs map[string]any, key string, value any) {
	if _, ok := attrs[key]; !ok {
		attrs[key] = value
	}
}

// JSONResponse renders name into an {"html": ...} envelope when status is
// 200. Any other status skips rendering and returns {"messages": errs}.
func (req *Request) JSONResponse(name string, status int, attrs map[string]any, errs []string) handler.Response {
	if status != http.StatusOK {
		return handler.Messages(status, errs...)
	}
	html, err := req.RenderHTML(name, attrs)
	if err != nil {
		return failed(err)
	}
	return handler.HTMLJSON(html)
}

// HTMLResponse renders name as a page using the entity's TemplateData. A
// non-empty posted search term is mirrored into the attributes under the
// search queue field name, so the search box keeps its value.
func (req *Request) HTMLResponse(name string, feedback ...string) handler.Response {
	var attrs map[string]any
	if provider, ok := req.d.entity.(TemplateDataProvider); ok {
		attrs = provider.TemplateData(req, feedback)
	}
	if attrs == nil {
		attrs = map[string]any{}
	}
	if q := req.SearchQuery(); q != "" {
		attrs[req.d.config.SearchQueue] = q
	}

	html, err := req.RenderHTML(name, attrs)
	if err != nil {
		return failed(err)
	}
	return handler.HTML(html)
}

// HTMLWithAttributes renders name as a page from attrs. adminName is always
// set, empty for anonymous requests.
func (req *Request) HTMLWithAttributes(name string, attrs map[string]any) handler.Response {
	out := make(map[string]any, len(attrs)+1)
	maps.Copy(out, attrs)
	out[AttrAdminName] = req.Admin.Name

	html, err := req.RenderHTML(name, out)
	if err != nil {
		return failed(err)
	}
	return handler.HTML(html)
}

// failed defers err to the dispatcher's error handler.
func failed(err error) handler.Response {
	return handler.ResponseFunc(func(http.ResponseWriter, *http.Request) error {
		return err
	})
}
