package i18n

import (
	"context"

	"github.com/dmitrymomot/crudkit/handler"
)

// DefaultLanguage is used when neither the request nor the user selects one.
const DefaultLanguage = "en"

// LanguageContext is the active language of a single request.
// It replaces any process-wide translation state: each request carries its
// own value, so switching languages never affects concurrent requests.
type LanguageContext struct {
	Code       string
	Dictionary Dictionary
}

// NewLanguageContext returns a LanguageContext for code. A nil dictionary is
// replaced by an empty one.
func NewLanguageContext(code string, dict Dictionary) *LanguageContext {
	if dict == nil {
		dict = Dictionary{}
	}
	return &LanguageContext{Code: code, Dictionary: dict}
}

// Translate resolves key in the active dictionary. A nil receiver behaves like
// an empty dictionary.
func (l *LanguageContext) Translate(key string) (string, bool) {
	if l == nil {
		return "", false
	}
	return l.Dictionary.Translate(key)
}

// T resolves key and returns an empty string when it is missing.
// Intended for templates, where a missing key renders as nothing.
func (l *LanguageContext) T(key string) string {
	s, _ := l.Translate(key)
	return s
}

// Is reports whether l is the language identified by code.
func (l *LanguageContext) Is(code string) bool {
	return l != nil && l.Code == code
}

var languageKey = handler.NewContextKey("i18n.language")

// WithLanguage stores lang in ctx.
func WithLanguage(ctx context.Context, lang *LanguageContext) context.Context {
	return context.WithValue(ctx, languageKey, lang)
}

// FromContext returns the language stored in ctx, or nil.
func FromContext(ctx context.Context) *LanguageContext {
	if ctx == nil {
		return nil
	}
	return handler.ContextValue[*LanguageContext](ctx, languageKey)
}
