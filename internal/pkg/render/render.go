// Package render turns named Liquid templates into text.
//
// Templates are parsed once at registration so syntax errors fail startup
// instead of the first request that needs them.
package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/osteele/liquid"
)

// ErrTemplateNotFound is returned when rendering a name that was never registered.
var ErrTemplateNotFound = errors.New("render: template not found")

// Renderer renders a registered template with the given bindings.
type Renderer interface {
	Render(name string, bindings map[string]any) (string, error)
}

// Liquid is a Renderer backed by github.com/osteele/liquid.
type Liquid struct {
	engine *liquid.Engine

	mu        sync.RWMutex
	templates map[string]*liquid.Template
}

// NewLiquid constructs an empty Liquid renderer.
func NewLiquid() *Liquid {
	return &Liquid{
		engine:    liquid.NewEngine(),
		templates: make(map[string]*liquid.Template),
	}
}

// Register parses src and stores it under name, replacing any previous entry.
func (l *Liquid) Register(name, src string) error {
	tpl, err := l.engine.ParseString(src)
	if err != nil {
		return fmt.Errorf("render: parse %s: %w", name, err)
	}

	l.mu.Lock()
	l.templates[name] = tpl
	l.mu.Unlock()
	return nil
}

// Render executes the named template.
func (l *Liquid) Render(name string, bindings map[string]any) (string, error) {
	l.mu.RLock()
	tpl, ok := l.templates[name]
	l.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	out, err := tpl.RenderString(bindings)
	if err != nil {
		return "", fmt.Errorf("render: execute %s: %w", name, err)
	}
	return out, nil
}
