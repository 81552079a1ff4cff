package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/a-h/templ"
)

// ComponentFunc builds a templ component from template attributes.
type ComponentFunc func(attrs map[string]any) templ.Component

// TemplRegistry renders templ components registered by name.
// It is safe for concurrent use.
type TemplRegistry struct {
	mu         sync.RWMutex
	components map[string]ComponentFunc
}

// NewTemplRegistry creates an empty registry.
func NewTemplRegistry() *TemplRegistry {
	return &TemplRegistry{components: make(map[string]ComponentFunc)}
}

// Register binds name to fn, replacing any previous binding.
func (t *TemplRegistry) Register(name string, fn ComponentFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.components[name] = fn
}

// Has reports whether name is registered.
func (t *TemplRegistry) Has(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.components[name]
	return ok
}

// Render renders the component registered under name.
func (t *TemplRegistry) Render(ctx context.Context, name string, attrs map[string]any) (string, error) {
	t.mu.RLock()
	fn, ok := t.components[name]
	t.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := fn(attrs).Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrExecuteTemplate, name, err)
	}
	return buf.String(), nil
}

// Renderer is implemented by Engine and TemplRegistry.
type Renderer interface {
	Render(ctx context.Context, name string, attrs map[string]any) (string, error)
}

// Chain tries renderers in order and moves on only when a renderer does not
// know the template. Other failures are returned as is.
type Chain []Renderer

// Render implements Renderer.
func (c Chain) Render(ctx context.Context, name string, attrs map[string]any) (string, error) {
	if len(c) == 0 {
		return "", ErrNoRenderers
	}
	var lastErr error
	for _, r := range c {
		html, err := r.Render(ctx, name, attrs)
		if err == nil {
			return html, nil
		}
		if !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}
