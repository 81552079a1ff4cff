package crud_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crudkit/crud"
	"github.com/dmitrymomot/crudkit/handler"
	"github.com/dmitrymomot/crudkit/pkg/csrf"
)

func TestCSRFWithFormData(t *testing.T) {
	t.Parallel()

	onError := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})
	guard, err := csrf.New("test-secret",
		csrf.WithTokenSource(crud.FormDataValue(csrf.DefaultFieldName)),
		csrf.WithErrorHandler(onError),
	)
	require.NoError(t, err)

	entity := &fakeEntity{save: func(req *crud.Request) crud.Result {
		return crud.Success(map[string]string{"name": req.Post.Value("name")})
	}}
	d := crud.New("users", entity, crud.WithCSRF(guard), crud.WithErrorHandler(onError))
	chain := crud.FormData(0)(guard.Middleware(d))

	// A GET issues the session cookie and a token bound to it.
	w, body := serve(t, chain, httptest.NewRequest(http.MethodGet, "/users", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	tok, _ := body["csrf"].(string)
	require.NotEmpty(t, tok)

	postJSON := func(payload string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(payload))
		r.Header.Set("Content-Type", "application/json")
		r.AddCookie(cookies[0])
		return r
	}

	t.Run("token in json body", func(t *testing.T) {
		t.Parallel()
		w, _ := serve(t, chain, postJSON(`{"config":"submit","csrf":"`+tok+`","name":"Ann"}`))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"name":"Ann"}`, w.Body.String())
	})

	t.Run("token in urlencoded body", func(t *testing.T) {
		t.Parallel()
		r := postForm(url.Values{"config": {"submit"}, "csrf": {tok}, "name": {"Bob"}})
		r.AddCookie(cookies[0])
		w, _ := serve(t, chain, r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"name":"Bob"}`, w.Body.String())
	})

	t.Run("missing token is a messages envelope", func(t *testing.T) {
		t.Parallel()
		w, body := serve(t, chain, postJSON(`{"config":"submit","name":"Ann"}`))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, []any{"forbidden"}, body["messages"])
	})
}
