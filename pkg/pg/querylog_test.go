package pg_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crudkit/pkg/pg"
)

func TestQueryLog(t *testing.T) {
	t.Parallel()

	qlog := pg.NewQueryLog(nil)

	t.Run("untracked context", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		qlog.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
		assert.Empty(t, qlog.Queries(ctx))
		assert.NotNil(t, qlog.Queries(ctx))
	})

	t.Run("tracked context", func(t *testing.T) {
		t.Parallel()
		ctx := qlog.Track(context.Background())
		ctx = qlog.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
		qlog.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
		qlog.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT 2"})
		qlog.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("boom")})

		got := qlog.Queries(ctx)
		assert.Equal(t, []string{"SELECT 1", "SELECT 2"}, got)

		got[0] = "mutated"
		assert.Equal(t, "SELECT 1", qlog.Queries(ctx)[0])
	})

	t.Run("middleware tracks per request", func(t *testing.T) {
		t.Parallel()
		var seen []string
		h := qlog.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			qlog.TraceQueryStart(r.Context(), nil, pgx.TraceQueryStartData{SQL: "SELECT * FROM users"})
			seen = qlog.Queries(r.Context())
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, []string{"SELECT * FROM users"}, seen)
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, pg.IsDuplicateKeyError(dup))
	assert.False(t, pg.IsDuplicateKeyError(fk))
	assert.True(t, pg.IsForeignKeyViolationError(fk))
	assert.False(t, pg.IsForeignKeyViolationError(nil))
	assert.True(t, pg.IsNotFoundError(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(nil))
}

func TestConnectRequiresConnectionString(t *testing.T) {
	t.Parallel()
	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
}
