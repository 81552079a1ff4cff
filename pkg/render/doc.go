// Package render provides the template renderers used by crud dispatchers.
//
// Engine renders pongo2 templates addressed by name without extension:
//
//	engine, err := render.NewEngine(render.WithBaseDir("templates"))
//	html, err := engine.Render(ctx, "users/list", map[string]any{"rows": rows})
//
// TemplRegistry renders a-h/templ components registered under a name, and
// Chain combines renderers so compiled components can override file
// templates:
//
//	components := render.NewTemplRegistry()
//	components.Register("users/row", func(attrs map[string]any) templ.Component {
//		return views.UserRow(attrs["user"].(users.User))
//	})
//	renderer := render.Chain{components, engine}
package render
