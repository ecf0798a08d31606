// Package registry is the shared stylesheet sink for compiled Silk units.
//
// Hosts compile each source unit independently and append the resulting
// CSS here; the joined sheet is injected into the page once. Appending
// under an already-registered key replaces that unit's CSS in place, which
// is what a recompile on file change wants.
package registry

import (
	"strings"
	"sync"
)

// Registry collects per-unit CSS in registration order.
type Registry struct {
	mu    sync.RWMutex
	order []string
	css   map[string]string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{css: make(map[string]string)}
}

var global = New()

// Append adds one unit's CSS under the given key. Re-registering a key
// replaces its CSS but keeps its original position.
func (r *Registry) Append(key, css string) {
	if css == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.css[key]; !ok {
		r.order = append(r.order, key)
	}
	r.css[key] = css
}

// CSS joins every registered unit's text in registration order.
func (r *Registry) CSS() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var b strings.Builder
	for _, key := range r.order {
		b.WriteString(r.css[key])
		b.WriteString("\n")
	}
	return b.String()
}

// Len reports the number of registered units.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Reset clears the registry. Useful for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.css = make(map[string]string)
}

// Append adds to the process-wide registry.
func Append(key, css string) {
	global.Append(key, css)
}

// CSS returns the process-wide registry's joined stylesheet.
func CSS() string {
	return global.CSS()
}

// Reset clears the process-wide registry.
func Reset() {
	global.Reset()
}
