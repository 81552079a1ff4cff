// Package handler holds the response types shared by HTTP handlers.
//
// A Response renders itself to an http.ResponseWriter:
//
//	type Response interface {
//		Render(w http.ResponseWriter, r *http.Request) error
//	}
//
// Constructors cover the shapes used by CRUD handlers:
//
//	handler.HTML(markup)                         // text/html, 200
//	handler.HTMLJSON(markup)                     // {"html": "..."}, 200
//	handler.Messages(http.StatusBadRequest, msg) // {"messages": ["..."]}
//	handler.JSON(payload)                        // payload as is
//	handler.Templ(component)                     // a-h/templ component
//
// JSON and templ responses are fully buffered before the status line is
// written, so a failing Render leaves the writer clean for the ErrorHandler.
//
// Write renders a Response and routes failures to an ErrorHandler.
// NewErrorHandler builds the default one: it logs with slog, answers JSON
// clients with a messages envelope, and renders an optional templ error page
// for browsers. HTTPError values keep their status code; any other error is
// reported as 500 without leaking its text.
//
// Typed context helpers avoid key collisions across packages:
//
//	var adminKey = handler.NewContextKey("admin")
//	ctx = context.WithValue(ctx, adminKey, admin)
//	admin, ok := handler.ContextValueOK[Admin](ctx, adminKey)
package handler
