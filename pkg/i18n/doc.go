// Package i18n resolves dotted translation keys against per-language
// dictionaries.
//
// There is no global translator. The active language of a request is a
// *LanguageContext stored in its context.Context, so concurrent requests can
// use different languages and switching one never leaks into another:
//
//	loader, _ := i18n.NewLoader(i18n.NewFileSource("lang", ".json"),
//		i18n.WithDefaultLanguage("en"))
//
//	r.Use(i18n.Middleware(loader, i18n.NewExtractor("en", "de")))
//
//	// later, while handling the request
//	lang := i18n.FromContext(r.Context())
//	title := lang.T("users.list.title")
//
// Translation fails soft: a missing key, a key that stops at a nested map, or
// a path running through a scalar yields ("", false) and never an error.
//
// Language files are JSON or YAML documents holding one nested mapping:
//
//	{"users": {"list": {"title": "Users"}}}
//
// A missing file means an empty dictionary.
package i18n
