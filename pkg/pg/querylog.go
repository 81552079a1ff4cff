package pg

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/crudkit/handler"
	"github.com/dmitrymomot/crudkit/pkg/logger"
)

// QueryLog is a pgx tracer collecting the SQL issued while serving a request.
// Attach it with WithTracer and wrap handlers with Middleware; Queries then
// reports what ran for that request. Statements outside a tracked context
// are only logged.
type QueryLog struct {
	log *slog.Logger
}

// NewQueryLog creates a QueryLog. Statements are logged at debug level.
func NewQueryLog(log *slog.Logger) *QueryLog {
	if log == nil {
		log = logger.Discard()
	}
	return &QueryLog{log: log.With(logger.Component("pg"))}
}

type recorder struct {
	mu      sync.Mutex
	queries []string
}

var queryLogKey = handler.NewContextKey("pg.querylog")

// Track returns a context that records queries issued with it.
func (q *QueryLog) Track(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryLogKey, &recorder{})
}

// Middleware tracks queries for every request.
func (q *QueryLog) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(q.Track(r.Context())))
	})
}

// Queries returns the statements recorded for ctx, oldest first.
func (q *QueryLog) Queries(ctx context.Context) []string {
	rec := handler.ContextValue[*recorder](ctx, queryLogKey)
	if rec == nil {
		return []string{}
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]string, len(rec.queries))
	copy(out, rec.queries)
	return out
}

// TraceQueryStart implements pgx.QueryTracer.
func (q *QueryLog) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	if rec := handler.ContextValue[*recorder](ctx, queryLogKey); rec != nil {
		rec.mu.Lock()
		rec.queries = append(rec.queries, data.SQL)
		rec.mu.Unlock()
	}
	q.log.DebugContext(ctx, "query", slog.String("sql", data.SQL), slog.Int("args", len(data.Args)))
	return ctx
}

// TraceQueryEnd implements pgx.QueryTracer.
func (q *QueryLog) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	if data.Err != nil {
		q.log.DebugContext(ctx, "query failed", logger.Error(data.Err))
	}
}
