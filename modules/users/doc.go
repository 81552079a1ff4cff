// Package users is a complete crud entity for the users table and doubles as
// the reference for writing new entities.
//
//	store := users.NewPGStore(pool, "users")
//	d := crud.New("users", users.NewEntity(store),
//		crud.WithTables(tables),
//		crud.WithHandlerConfig(handlerConfig),
//		crud.WithRenderer(renderer),
//	)
//	r.Mount("/admin/users", users.Router(d))
//
// Posting config=submit saves a user (updating it when the identifier
// field is posted), config=delete removes it and config=lookup returns the
// rows matching the search term as an HTML fragment.
package users
