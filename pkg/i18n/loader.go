package i18n

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/crudkit/pkg/cache"
	"github.com/dmitrymomot/crudkit/pkg/logger"
)

// Loader resolves language codes to LanguageContext values, caching loaded
// dictionaries. It is safe for concurrent use.
type Loader struct {
	source      Source
	defaultLang string
	cache       *cache.LRU[string, Dictionary]
	logger      *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDefaultLanguage sets the language used for empty codes.
func WithDefaultLanguage(lang string) LoaderOption {
	return func(l *Loader) {
		if lang != "" {
			l.defaultLang = lang
		}
	}
}

// WithCacheSize sets how many languages stay cached.
func WithCacheSize(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.cache = cache.New[string, Dictionary](n)
		}
	}
}

// WithLogger sets the logger used to report load failures.
func WithLogger(log *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// NewLoader creates a Loader reading from source.
func NewLoader(source Source, opts ...LoaderOption) (*Loader, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	l := &Loader{
		source:      source,
		defaultLang: DefaultLanguage,
		cache:       cache.New[string, Dictionary](16),
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// DefaultLanguage returns the code used when none is requested.
func (l *Loader) DefaultLanguage() string {
	return l.defaultLang
}

// Load returns the LanguageContext for lang, reading it from the source on
// the first request. An empty lang selects the default language.
func (l *Loader) Load(ctx context.Context, lang string) (*LanguageContext, error) {
	if lang == "" {
		lang = l.defaultLang
	}

	dict, err := l.cache.GetOrLoad(lang, func() (Dictionary, error) {
		d, err := l.source.Load(ctx, lang)
		if err != nil {
			return nil, err
		}
		if d == nil {
			d = Dictionary{}
		}
		l.logger.DebugContext(ctx, "language loaded",
			logger.Component("i18n"),
			logger.Language(lang),
			slog.Int("keys", len(d)),
		)
		return d, nil
	})
	if err != nil {
		l.logger.WarnContext(ctx, "failed to load language",
			logger.Component("i18n"),
			logger.Language(lang),
			logger.Error(err),
		)
		return nil, err
	}

	return NewLanguageContext(lang, dict), nil
}

// Invalidate drops lang from the cache so the next Load reads it again.
func (l *Loader) Invalidate(lang string) {
	l.cache.Remove(lang)
}

// Reset drops every cached language.
func (l *Loader) Reset() {
	l.cache.Purge()
}
