package crud_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crudkit/crud"
	"github.com/dmitrymomot/crudkit/schema"
)

var usersTables = schema.TableConfig{
	"users": {Identifier: "id", Fields: []string{"id", "name", "email", "role"}},
}

func TestBuildInsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table string
		post  crud.PostData
		want  map[string]string
	}{
		{
			name:  "unknown table",
			table: "orders",
			post:  crud.PostData{"name": "Ann"},
			want:  map[string]string{},
		},
		{
			name:  "declared non-empty fields only",
			table: "users",
			post: crud.PostData{
				"name":     "Ann",
				"email":    "",
				"password": "secret",
				"config":   "submit",
			},
			want: map[string]string{"name": "Ann"},
		},
		{
			name:  "identifier is never included",
			table: "users",
			post:  crud.PostData{"id": "7", "name": "Ann", "role": "admin"},
			want:  map[string]string{"name": "Ann", "role": "admin"},
		},
		{
			name:  "non-string values are dropped",
			table: "users",
			post:  crud.PostData{"name": []string{"a", "b"}, "email": map[string]any{"x": "y"}},
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crud.BuildInsert(usersTables, tt.table, tt.post))
		})
	}
}

func TestBuildInsertProperties(t *testing.T) {
	t.Parallel()

	posts := []crud.PostData{
		{},
		{"id": "1"},
		{"id": "1", "name": "x", "email": "e", "role": "r", "extra": "z"},
		{"name": "", "email": "e"},
	}
	table := usersTables["users"]

	for _, post := range posts {
		got := crud.BuildInsert(usersTables, "users", post)
		assert.NotContains(t, got, table.Identifier)
		for k, v := range got {
			assert.True(t, table.Declares(k), k)
			assert.NotEmpty(t, v)
			assert.Equal(t, post[k], v)
		}
	}
}

func lookupConfig() schema.HandlerConfig {
	return schema.HandlerConfig{
		SearchQueue: "q",
		Lookup: schema.LookupConfig{Conditions: schema.Conditions{
			"byName": schema.SimpleCondition{Field: "name", Operator: schema.OperatorLike},
			"byEmail": schema.FallbackCondition{
				If:   schema.SimpleCondition{Field: "email", Operator: schema.OperatorPresent},
				Then: schema.SimpleCondition{Field: "email", Operator: schema.OperatorPrefix},
				Else: schema.SimpleCondition{Field: "name", Operator: schema.OperatorEquals},
			},
		}},
	}
}

func TestBuildLookupConditions(t *testing.T) {
	t.Parallel()

	t.Run("no search queue configured", func(t *testing.T) {
		t.Parallel()
		cfg := lookupConfig()
		cfg.SearchQueue = ""
		assert.Empty(t, crud.BuildLookupConditions(cfg, crud.PostData{"q": "ann"}))
	})

	t.Run("absent, empty or non-string term", func(t *testing.T) {
		t.Parallel()
		for _, post := range []crud.PostData{{}, {"q": ""}, {"q": []string{"ann"}}} {
			assert.Empty(t, crud.BuildLookupConditions(lookupConfig(), post))
		}
	})

	t.Run("binds term to every condition", func(t *testing.T) {
		t.Parallel()
		got := crud.BuildLookupConditions(lookupConfig(), crud.PostData{"q": "ann"})
		require.Len(t, got, 2)

		simple, ok := got["byName"].(schema.SimpleCondition)
		require.True(t, ok)
		q, set := simple.QueueValue()
		assert.True(t, set)
		assert.Equal(t, "ann", q)
		assert.Equal(t, "name", simple.Field)

		fallback, ok := got["byEmail"].(schema.FallbackCondition)
		require.True(t, ok)
		q, _ = fallback.Then.QueueValue()
		assert.Equal(t, "ann", q)
		q, _ = fallback.Else.QueueValue()
		assert.Equal(t, "ann", q)
		_, set = fallback.If.QueueValue()
		assert.False(t, set, "if branch keeps a nil queue")
	})

	t.Run("configured if queue is kept", func(t *testing.T) {
		t.Parallel()
		cfg := lookupConfig()
		fixed := "yes"
		fb := cfg.Lookup.Conditions["byEmail"].(schema.FallbackCondition)
		fb.If.Queue = &fixed
		cfg.Lookup.Conditions["byEmail"] = fb

		got := crud.BuildLookupConditions(cfg, crud.PostData{"q": "ann"})
		q, set := got["byEmail"].(schema.FallbackCondition).If.QueueValue()
		assert.True(t, set)
		assert.Equal(t, "yes", q)
	})

	t.Run("config is not mutated", func(t *testing.T) {
		t.Parallel()
		cfg := lookupConfig()
		_ = crud.BuildLookupConditions(cfg, crud.PostData{"q": "ann"})

		_, set := cfg.Lookup.Conditions["byName"].(schema.SimpleCondition).QueueValue()
		assert.False(t, set)
		_, set = cfg.Lookup.Conditions["byEmail"].(schema.FallbackCondition).Then.QueueValue()
		assert.False(t, set)
	})
}
