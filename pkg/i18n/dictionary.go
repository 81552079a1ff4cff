package i18n

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Dictionary is a nested translation table. Values are strings, other
// scalars, nested maps, or lists.
type Dictionary map[string]any

// Translate resolves a dot-separated key such as "users.form.title".
//
// It walks the dictionary one segment at a time and reports false when the
// key is empty, a segment is missing, an intermediate value is not a map or
// list, or the leaf is not a scalar. Scalars (strings, booleans, numbers) are
// returned formatted as strings. Lists are indexed by numeric segments.
// Translate never panics; missing keys degrade to omission.
func (d Dictionary) Translate(key string) (string, bool) {
	if key == "" || d == nil {
		return "", false
	}

	val, ok := d.lookup(key)
	if !ok {
		return "", false
	}
	return scalarString(val)
}

// Has reports whether key resolves to a scalar.
func (d Dictionary) Has(key string) bool {
	_, ok := d.Translate(key)
	return ok
}

func (d Dictionary) lookup(key string) (any, bool) {
	parts := strings.Split(key, ".")
	var current any = map[string]any(d)

	for _, part := range parts {
		next, ok := child(current, part)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// child returns node[part] when node is a container holding part.
func child(node any, part string) (any, bool) {
	switch n := node.(type) {
	case map[string]any:
		v, ok := n[part]
		return v, ok
	case Dictionary:
		v, ok := n[part]
		return v, ok
	case map[any]any:
		v, ok := n[part]
		return v, ok
	case []any:
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 || idx >= len(n) {
			return nil, false
		}
		return n[idx], true
	default:
		return nil, false
	}
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(s), true
	default:
		return "", false
	}
}
