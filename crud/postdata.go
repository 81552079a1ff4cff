package crud

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrymomot/crudkit/handler"
)

// ConfigField is the discriminator field selecting the action of a POST.
const ConfigField = "config"

// Config actions handled by the dispatcher itself.
const (
	ConfigSubmit = "submit"
	ConfigDelete = "delete"
)

// maxMultipartMemory bounds the in-memory part of multipart bodies.
const maxMultipartMemory = 32 << 20

// PostData holds the fields of a request body. Values are strings, []string
// for "name[]" keys, nested PostData-shaped maps (map[string]any) for
// "name[key]" keys or JSON objects, and []any for JSON arrays holding objects.
type PostData map[string]any

// Has reports whether field is present.
func (p PostData) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// String returns field when it holds a string.
func (p PostData) String(field string) (string, bool) {
	s, ok := p[field].(string)
	return s, ok
}

// Value returns field when it holds a string, or "".
func (p PostData) Value(field string) string {
	s, _ := p.String(field)
	return s
}

// Strings returns field as a list. A single string is a one-element list.
func (p PostData) Strings(field string) []string {
	switch v := p[field].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	default:
		return nil
	}
}

// Config returns the config discriminator. present reports whether the field
// exists at all, even with a non-string value.
func (p PostData) Config() (config string, present bool) {
	v, present := p[ConfigField]
	config, _ = v.(string)
	return config, present
}

// Clone returns a shallow copy of p.
func (p PostData) Clone() PostData {
	if p == nil {
		return PostData{}
	}
	return maps.Clone(p)
}

var formDataKey = handler.NewContextKey("crud.form_data")

// WithFormData attaches pre-parsed post data to ctx. FetchPostData prefers it
// over the request body.
func WithFormData(ctx context.Context, data PostData) context.Context {
	return context.WithValue(ctx, formDataKey, data)
}

// FormDataFromContext returns post data attached with WithFormData.
func FormDataFromContext(ctx context.Context) (PostData, bool) {
	return handler.ContextValueOK[PostData](ctx, formDataKey)
}

// FormDataValue returns a lookup of field in the post data attached by
// FormData. It plugs JSON bodies into csrf.WithTokenSource.
func FormDataValue(field string) func(*http.Request) string {
	return func(r *http.Request) string {
		data, _ := FormDataFromContext(r.Context())
		return data.Value(field)
	}
}

// FetchPostData returns the post data of r: pre-parsed form data from the
// request context if present and non-empty, otherwise the parsed
// urlencoded or multipart body, otherwise an empty map.
func FetchPostData(r *http.Request) PostData {
	if data, ok := FormDataFromContext(r.Context()); ok && len(data) > 0 {
		return data
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxMultipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil || len(r.PostForm) == 0 {
		return PostData{}
	}
	return FromValues(r.PostForm)
}

// FromValues converts form values to PostData, expanding bracket keys:
// "tags[]" collects a []string, "meta[key]" builds a nested map.
// A plain key posted several times keeps its last value. When one name is
// posted in several shapes ("a=1&a[]=2&a[b]=3"), the first key in sorted
// order wins and the others are dropped, so a plain value beats its list
// form, which beats its map form.
func FromValues(values url.Values) PostData {
	out := PostData{}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		vals := values[key]
		if len(vals) == 0 {
			continue
		}
		base, path := splitBracketKey(key)
		if base == "" {
			continue
		}
		assign(out, base, path, vals)
	}
	return out
}

// splitBracketKey splits "a[b][]" into "a" and ["b", ""].
func splitBracketKey(key string) (string, []string) {
	open := strings.IndexByte(key, '[')
	if open == 0 {
		return "", nil
	}
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, nil
	}
	base, rest := key[:open], key[open:]

	var path []string
	for len(rest) > 0 {
		if rest[0] != '[' {
			return key, nil
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return key, nil
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return base, path
}

// assign stores vals under key following path. A key already holding a
// different shape is left alone.
func assign(node map[string]any, key string, path []string, vals []string) {
	existing, taken := node[key]
	switch {
	case len(path) == 0:
		if _, ok := existing.(string); taken && !ok {
			return
		}
		node[key] = vals[len(vals)-1]
	case path[0] == "":
		// "[]" ends the path: collect the values as a list.
		list, ok := existing.([]string)
		if taken && !ok {
			return
		}
		node[key] = append(list, vals...)
	default:
		child, ok := existing.(map[string]any)
		if taken && !ok {
			return
		}
		if !taken {
			child = map[string]any{}
			node[key] = child
		}
		assign(child, path[0], path[1:], vals)
	}
}

// FormData normalizes JSON request bodies into PostData and attaches them to
// the request context, so AJAX posts reach entities the same way form posts
// do. Requests with other content types pass through untouched. Malformed
// JSON is rejected with a 400 messages envelope.
func FormData(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || !isJSON(r) {
				next.ServeHTTP(w, r)
				return
			}

			data, err := decodeJSONBody(http.MaxBytesReader(w, r.Body, maxBytes))
			if err != nil {
				status := http.StatusBadRequest
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					status = http.StatusRequestEntityTooLarge
				}
				_ = handler.Messages(status, msgInvalidBody).Render(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithFormData(r.Context(), data)))
		})
	}
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && (mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"))
}

func decodeJSONBody(body io.Reader) (PostData, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	out := PostData{}
	for k, v := range raw {
		if nv, ok := normalizeJSON(v); ok {
			out[k] = nv
		}
	}
	return out, nil
}

// normalizeJSON converts decoded JSON into PostData value shapes.
// Scalars become strings; null is dropped.
func normalizeJSON(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			if ne, ok := normalizeJSON(e); ok {
				m[k] = ne
			}
		}
		return m, true
	case []any:
		strs := make([]string, 0, len(t))
		mixed := make([]any, 0, len(t))
		scalar := true
		for _, e := range t {
			ne, ok := normalizeJSON(e)
			if !ok {
				continue
			}
			mixed = append(mixed, ne)
			if s, isStr := ne.(string); isStr && scalar {
				strs = append(strs, s)
			} else {
				scalar = false
			}
		}
		if scalar {
			return strs, true
		}
		return mixed, true
	default:
		return nil, false
	}
}
