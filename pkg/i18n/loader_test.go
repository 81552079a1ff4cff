package i18n_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crudkit/pkg/i18n"
)

func countingSource(calls *int, data i18n.MapSource) i18n.Source {
	return i18n.SourceFunc(func(ctx context.Context, lang string) (i18n.Dictionary, error) {
		*calls++
		return data.Load(ctx, lang)
	})
}

func TestLoader(t *testing.T) {
	t.Parallel()

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewLoader(nil)
		assert.ErrorIs(t, err, i18n.ErrNilSource)
	})

	t.Run("caches per language", func(t *testing.T) {
		t.Parallel()
		calls := 0
		loader, err := i18n.NewLoader(countingSource(&calls, i18n.MapSource{
			"en": {"hello": "Hello"},
			"de": {"hello": "Hallo"},
		}), i18n.WithDefaultLanguage("de"))
		require.NoError(t, err)
		ctx := context.Background()

		lang, err := loader.Load(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "de", lang.Code)
		assert.Equal(t, "Hallo", lang.T("hello"))

		_, err = loader.Load(ctx, "de")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)

		en, err := loader.Load(ctx, "en")
		require.NoError(t, err)
		assert.Equal(t, "Hello", en.T("hello"))
		assert.Equal(t, 2, calls)

		loader.Invalidate("en")
		_, err = loader.Load(ctx, "en")
		require.NoError(t, err)
		assert.Equal(t, 3, calls)

		loader.Reset()
		_, err = loader.Load(ctx, "de")
		require.NoError(t, err)
		assert.Equal(t, 4, calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		fail := true
		loader, err := i18n.NewLoader(i18n.SourceFunc(func(context.Context, string) (i18n.Dictionary, error) {
			if fail {
				return nil, errors.New("unavailable")
			}
			return nil, nil
		}), i18n.WithCacheSize(2))
		require.NoError(t, err)

		_, err = loader.Load(context.Background(), "en")
		require.Error(t, err)

		fail = false
		lang, err := loader.Load(context.Background(), "en")
		require.NoError(t, err)
		assert.NotNil(t, lang.Dictionary)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	loader, err := i18n.NewLoader(i18n.MapSource{
		"en": {"hello": "Hello"},
		"de": {"hello": "Hallo"},
	})
	require.NoError(t, err)

	var got *i18n.LanguageContext
	h := i18n.Middleware(loader, i18n.NewExtractor("en", "de"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.FromContext(r.Context())
	}))

	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  string
	}{
		{"default", func(*http.Request) {}, "en"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "lang", Value: "de"}) }, "de"},
		{"query", func(r *http.Request) { r.URL.RawQuery = "lang=DE" }, "de"},
		{"unsupported query", func(r *http.Request) { r.URL.RawQuery = "lang=fr" }, "en"},
		{"accept-language negotiation", func(r *http.Request) { r.Header.Set("Accept-Language", "de-AT,de;q=0.9,en;q=0.5") }, "de"},
		{"accept-language without match", func(r *http.Request) { r.Header.Set("Accept-Language", "ja") }, "en"},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		tt.setup(r)
		h.ServeHTTP(httptest.NewRecorder(), r)
		require.NotNil(t, got, tt.name)
		assert.Equal(t, tt.want, got.Code, tt.name)
	}
}

func TestMiddlewareFallsBackOnLoadError(t *testing.T) {
	t.Parallel()

	loader, err := i18n.NewLoader(i18n.SourceFunc(func(context.Context, string) (i18n.Dictionary, error) {
		return nil, errors.New("down")
	}))
	require.NoError(t, err)

	var got *i18n.LanguageContext
	h := i18n.Middleware(loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)
	assert.Equal(t, i18n.DefaultLanguage, got.Code)
	assert.Empty(t, got.Dictionary)
}
