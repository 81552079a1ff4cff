// Package pg is the PostgreSQL connector used by crud entities.
//
// Connect opens a pgx pool with retries, Migrate and MigrateFS apply goose
// migrations, and Healthcheck wraps Ping for readiness probes.
//
// The statement builders turn crud insert arrays and lookup conditions into
// parameterized SQL:
//
//	q, err := pg.InsertSQL("users", req.InsertArray("users"), "id")
//	q, err := pg.LookupSQL(pg.Select{Table: "users", OrderBy: "name"}, req.LookupConditions())
//	rows, err := pool.Query(ctx, q.SQL, q.Args...)
//
// QueryLog is a pgx tracer that records the statements run for a request,
// for the diagnostic query list shown to admins:
//
//	qlog := pg.NewQueryLog(log)
//	pool, err := pg.Connect(ctx, cfg, pg.WithTracer(qlog))
//	r.Use(qlog.Middleware)
package pg
