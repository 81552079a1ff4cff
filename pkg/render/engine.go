package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Option configures an Engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	extension string
	globals   map[string]any
	reload    bool
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS, e.g. an embed.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default ".tpl" extension appended to names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGlobals seeds values available to every template.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for k, v := range data {
			cfg.globals[strings.TrimSpace(k)] = v
		}
	}
}

// WithReload disables the compiled template cache, so edits on disk show up
// on the next render. Meant for development.
func WithReload(reload bool) Option {
	return func(cfg *config) {
		cfg.reload = reload
	}
}

// Engine renders named pongo2 templates. It is safe for concurrent use.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	loaders   []pongo2.TemplateLoader
	templates map[string]*pongo2.Template
	ext       string
	reload    bool
}

// NewEngine constructs an Engine. Either WithBaseDir or WithFS is required;
// with both, the directory is searched first.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := &config{extension: ".tpl"}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, ErrNoTemplateSource
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, errors.Join(ErrNoTemplateSource, err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	set := pongo2.NewSet("crudkit", loaders...)
	if len(cfg.globals) > 0 {
		set.Globals.Update(identifiers(cfg.globals))
	}

	return &Engine{
		set:       set,
		loaders:   loaders,
		templates: make(map[string]*pongo2.Template),
		ext:       cfg.extension,
		reload:    cfg.reload,
	}, nil
}

// Render renders the template name, appending the configured extension
// when missing. Attribute keys that are not valid template identifiers are
// skipped.
func (e *Engine) Render(ctx context.Context, name string, attrs map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	tmpl, err := e.template(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(identifiers(attrs), &buf); err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrExecuteTemplate, path, err)
	}
	return buf.String(), nil
}

// RenderString renders template source directly. Used for small inline
// snippets; the compiled template is not cached.
func (e *Engine) RenderString(ctx context.Context, source string, attrs map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrParseTemplate, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(identifiers(attrs), &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecuteTemplate, err)
	}
	return buf.String(), nil
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	if e.reload {
		return e.load(path)
	}

	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.load(path)
	if err != nil {
		return nil, err
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// load compiles path, telling missing files apart from syntax errors.
func (e *Engine) load(path string) (*pongo2.Template, error) {
	if !e.exists(path) {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, path)
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParseTemplate, path, err)
	}
	return tmpl, nil
}

func (e *Engine) exists(path string) bool {
	for _, l := range e.loaders {
		if _, err := l.Get(l.Abs("", path)); err == nil {
			return true
		}
	}
	return false
}

// pongo2 rejects contexts holding keys it cannot address.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func identifiers(attrs map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(attrs))
	for k, v := range attrs {
		if identifierPattern.MatchString(k) {
			out[k] = v
		}
	}
	return out
}
