// Package crud dispatches config-driven CRUD requests to entity handlers.
//
// An entity implements Entity and, optionally, the capability interfaces
// TemplateDataProvider, LookupProvider and ExtraConfigHandler. A Dispatcher
// routes each request to one operation based on the HTTP method and the
// posted "config" field:
//
//	d := crud.New("users", users.NewEntity(store),
//		crud.WithTables(tables),
//		crud.WithHandlerConfig(cfg),
//		crud.WithRenderer(engine),
//		crud.WithCSRF(csrfManager),
//		crud.WithLanguageLoader(languages),
//	)
//	r.Handle("/users", d)
//
// Save and extra config handlers return a Result: Success echoes a payload
// as JSON, Respond returns a complete response, Failure answers 400 with
// {"messages": [...]}. Delete returns its own response.
//
// Two pure builders shape request input. BuildInsert keeps only the fields a
// table declares, never the identifier, never empty values. BuildLookupConditions
// binds the posted search term to the configured lookup conditions and yields
// nothing without a term.
//
// Request carries per-request state and the rendering helpers RenderHTML,
// JSONResponse, HTMLResponse and HTMLWithAttributes. The active language is
// resolved per request; there is no process-wide translation state.
package crud
