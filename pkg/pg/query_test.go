package pg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crudkit/pkg/pg"
	"github.com/dmitrymomot/crudkit/schema"
)

func TestInsertSQL(t *testing.T) {
	t.Parallel()

	q, err := pg.InsertSQL("users", map[string]string{"name": "Ann", "email": "ann@example.com"}, "id")
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("email", "name") VALUES ($1, $2) RETURNING "id"`, q.SQL)
	assert.Equal(t, []any{"ann@example.com", "Ann"}, q.Args)

	q, err = pg.InsertSQL("app.users", nil)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "app"."users" DEFAULT VALUES`, q.SQL)
	assert.Empty(t, q.Args)

	_, err = pg.InsertSQL("", map[string]string{"a": "b"})
	assert.ErrorIs(t, err, pg.ErrEmptyTable)
}

func TestUpdateSQL(t *testing.T) {
	t.Parallel()

	q, err := pg.UpdateSQL("users", "id", "7", map[string]string{"name": "Ann", "id": "9", "role": "admin"})
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "users" SET "name" = $1, "role" = $2 WHERE "id" = $3`, q.SQL)
	assert.Equal(t, []any{"Ann", "admin", "7"}, q.Args)

	q, err = pg.UpdateSQL("users", "id", "7", map[string]string{"name": "Ann"}, "id", "name")
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "users" SET "name" = $1 WHERE "id" = $2 RETURNING "id", "name"`, q.SQL)

	_, err = pg.UpdateSQL("users", "id", "7", map[string]string{"id": "7"})
	assert.ErrorIs(t, err, pg.ErrNoValues)

	_, err = pg.UpdateSQL("users", "", "7", map[string]string{"name": "x"})
	assert.ErrorIs(t, err, pg.ErrNoIdentifier)
}

func TestDeleteSQL(t *testing.T) {
	t.Parallel()

	q, err := pg.DeleteSQL("users", "id", "7")
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "users" WHERE "id" = $1`, q.SQL)
	assert.Equal(t, []any{"7"}, q.Args)

	_, err = pg.DeleteSQL("users", "id", nil)
	assert.ErrorIs(t, err, pg.ErrNoIdentifier)
}

func TestLookupSQL(t *testing.T) {
	t.Parallel()

	sel := pg.Select{Table: "users", Columns: []string{"id", "name"}, OrderBy: "name", Limit: 50}

	t.Run("no conditions", func(t *testing.T) {
		t.Parallel()
		q, err := pg.LookupSQL(sel, nil)
		require.NoError(t, err)
		assert.Equal(t, `SELECT "id", "name" FROM "users" ORDER BY "name" LIMIT $1`, q.SQL)
		assert.Equal(t, []any{50}, q.Args)
	})

	t.Run("simple conditions are alternatives", func(t *testing.T) {
		t.Parallel()
		conds := schema.Conditions{
			"byName":  schema.SimpleCondition{Field: "name", Operator: schema.OperatorLike}.WithQueue("a_n"),
			"byEmail": schema.SimpleCondition{Field: "email", Operator: schema.OperatorEquals}.WithQueue("ann@example.com"),
			"byRole":  schema.SimpleCondition{Field: "role", Operator: schema.OperatorPrefix}.WithQueue("adm"),
		}
		q, err := pg.LookupSQL(pg.Select{Table: "users"}, conds)
		require.NoError(t, err)
		assert.Equal(t,
			`SELECT * FROM "users" WHERE "email"::text = $1 OR "name"::text ILIKE $2 OR "role"::text ILIKE $3`,
			q.SQL)
		assert.Equal(t, []any{"ann@example.com", `%a\_n%`, "adm%"}, q.Args)
	})

	t.Run("fallback condition", func(t *testing.T) {
		t.Parallel()
		conds := schema.Conditions{
			"contact": schema.FallbackCondition{
				If:   schema.SimpleCondition{Field: "email", Operator: schema.OperatorLike},
				Then: schema.SimpleCondition{Field: "email", Operator: schema.OperatorLike}.WithQueue("ann"),
				Else: schema.SimpleCondition{Field: "name", Operator: schema.OperatorLike}.WithQueue("ann"),
			},
		}
		q, err := pg.LookupSQL(pg.Select{Table: "users"}, conds)
		require.NoError(t, err)
		assert.Equal(t,
			`SELECT * FROM "users" WHERE (((COALESCE("email"::text, '') <> '') AND ("email"::text ILIKE $1)) OR `+
				`(NOT (COALESCE("email"::text, '') <> '') AND ("name"::text ILIKE $2)))`,
			q.SQL)
		assert.Equal(t, []any{"%ann%", "%ann%"}, q.Args)
	})

	t.Run("fallback with configured if queue", func(t *testing.T) {
		t.Parallel()
		conds := schema.Conditions{
			"active": schema.FallbackCondition{
				If:   schema.SimpleCondition{Field: "role", Operator: schema.OperatorEquals}.WithQueue("admin"),
				Then: schema.SimpleCondition{Field: "name", Operator: schema.OperatorPrefix}.WithQueue("a"),
				Else: schema.SimpleCondition{Field: "email", Operator: schema.OperatorPresent}.WithQueue("a"),
			},
		}
		q, err := pg.LookupSQL(pg.Select{Table: "users"}, conds)
		require.NoError(t, err)
		assert.Equal(t,
			`SELECT * FROM "users" WHERE ((("role"::text = $1) AND ("name"::text ILIKE $2)) OR `+
				`(NOT ("role"::text = $1) AND (COALESCE("email"::text, '') <> '')))`,
			q.SQL)
		assert.Equal(t, []any{"admin", "a%"}, q.Args)
	})

	t.Run("missing table", func(t *testing.T) {
		t.Parallel()
		_, err := pg.LookupSQL(pg.Select{}, nil)
		assert.ErrorIs(t, err, pg.ErrEmptyTable)
	})
}
