package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Extractor picks a language code for a request. Empty means no preference.
type Extractor func(r *http.Request) string

// NewExtractor returns an Extractor checking, in order, the "lang" cookie,
// the "lang" query parameter and the Accept-Language header. With supported
// languages configured, only those are returned; Accept-Language is
// negotiated against them, so "de-AT" selects "de".
func NewExtractor(supported ...string) Extractor {
	allowed := make(map[string]struct{}, len(supported))
	tags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		allowed[strings.ToLower(code)] = struct{}{}
		tags = append(tags, tag)
		codes = append(codes, strings.ToLower(code))
	}
	var matcher language.Matcher
	if len(tags) > 0 {
		matcher = language.NewMatcher(tags)
	}

	accept := func(code string) string {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" || !ValidLanguageCode(code) {
			return ""
		}
		if len(allowed) == 0 {
			return code
		}
		if _, ok := allowed[code]; ok {
			return code
		}
		return ""
	}

	return func(r *http.Request) string {
		if c, err := r.Cookie("lang"); err == nil {
			if code := accept(c.Value); code != "" {
				return code
			}
		}
		if code := accept(r.URL.Query().Get("lang")); code != "" {
			return code
		}

		header := r.Header.Get("Accept-Language")
		if header == "" {
			return ""
		}
		prefs, _, err := language.ParseAcceptLanguage(header)
		if err != nil || len(prefs) == 0 {
			return ""
		}
		if matcher == nil {
			base, _ := prefs[0].Base()
			return accept(base.String())
		}
		_, idx, conf := matcher.Match(prefs...)
		if conf == language.No {
			return ""
		}
		return codes[idx]
	}
}

// Middleware resolves the request language with extract and stores its
// LanguageContext in the request context. Unknown or failing languages fall
// back to the loader's default language; if that fails too, requests carry an
// empty dictionary so rendering still succeeds.
func Middleware(loader *Loader, extract Extractor) func(http.Handler) http.Handler {
	if extract == nil {
		extract = NewExtractor()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			lang, err := loader.Load(ctx, extract(r))
			if err != nil {
				lang, err = loader.Load(ctx, "")
			}
			if err != nil {
				lang = NewLanguageContext(loader.DefaultLanguage(), nil)
			}
			next.ServeHTTP(w, r.WithContext(WithLanguage(ctx, lang)))
		})
	}
}
