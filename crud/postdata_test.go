package crud_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crudkit/crud"
)

func TestFromValues(t *testing.T) {
	t.Parallel()

	got := crud.FromValues(url.Values{
		"name":          {"first", "last"},
		"tags[]":        {"a", "b"},
		"meta[color]":   {"red"},
		"meta[size][]":  {"s", "m"},
		"filter[a][b]":  {"deep"},
		"broken[":       {"x"},
		"[nobase]":      {"ignored"},
		"emptyvalues[]": {},
	})

	assert.Equal(t, crud.PostData{
		"name":    "last",
		"tags":    []string{"a", "b"},
		"meta":    map[string]any{"color": "red", "size": []string{"s", "m"}},
		"filter":  map[string]any{"a": map[string]any{"b": "deep"}},
		"broken[": "x",
	}, got)
}

func TestFromValuesConflictingShapes(t *testing.T) {
	t.Parallel()

	got := crud.FromValues(url.Values{
		"a":       {"1"},
		"a[]":     {"3"},
		"a[b]":    {"2"},
		"l[]":     {"x", "y"},
		"l[k]":    {"z"},
		"m[k]":    {"v"},
		"m[k][]":  {"w"},
		"m[k][j]": {"u"},
	})

	assert.Equal(t, crud.PostData{
		"a": "1",
		"l": []string{"x", "y"},
		"m": map[string]any{"k": "v"},
	}, got)
}

func TestPostDataAccessors(t *testing.T) {
	t.Parallel()

	p := crud.PostData{"name": "Ann", "tags": []string{"a"}, "meta": map[string]any{"k": "v"}, "config": []string{"x"}}

	s, ok := p.String("name")
	assert.True(t, ok)
	assert.Equal(t, "Ann", s)
	assert.Equal(t, "", p.Value("tags"))
	assert.Equal(t, []string{"Ann"}, p.Strings("name"))
	assert.Equal(t, []string{"a"}, p.Strings("tags"))
	assert.True(t, p.Has("meta"))
	assert.False(t, p.Has("missing"))

	cfg, present := p.Config()
	assert.True(t, present)
	assert.Equal(t, "", cfg)

	clone := p.Clone()
	clone["name"] = "Bob"
	assert.Equal(t, "Ann", p.Value("name"))
}

func TestFetchPostData(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/?ignored=1", strings.NewReader("config=submit&name=Ann&roles[]=a"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		got := crud.FetchPostData(r)
		assert.Equal(t, crud.PostData{"config": "submit", "name": "Ann", "roles": []string{"a"}}, got)
	})

	t.Run("multipart body", func(t *testing.T) {
		t.Parallel()
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("name", "Ann"))
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/", &body)
		r.Header.Set("Content-Type", mw.FormDataContentType())
		assert.Equal(t, crud.PostData{"name": "Ann"}, crud.FetchPostData(r))
	})

	t.Run("context form data wins", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Body"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r = r.WithContext(crud.WithFormData(r.Context(), crud.PostData{"name": "Context"}))

		assert.Equal(t, "Context", crud.FetchPostData(r).Value("name"))
	})

	t.Run("empty context form data falls back to body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Body"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r = r.WithContext(crud.WithFormData(r.Context(), crud.PostData{}))

		assert.Equal(t, "Body", crud.FetchPostData(r).Value("name"))
	})

	t.Run("no body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		got := crud.FetchPostData(r)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFormDataMiddleware(t *testing.T) {
	t.Parallel()

	var got crud.PostData
	h := crud.FormData(256)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = crud.FetchPostData(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("json body becomes post data", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"config":"submit","age":42,"ok":true,"tags":["a"],"gone":null}`))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, crud.PostData{"config": "submit", "age": "42", "ok": "true", "tags": []string{"a"}}, got)
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"config":`))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"messages":["invalid request body"]}`, w.Body.String())
	})

	t.Run("oversized body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 512)+`"}`))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("form posts pass through", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Ann"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, crud.PostData{"name": "Ann"}, got)
	})
}
