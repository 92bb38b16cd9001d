package loading

import (
	"fmt"
	"sort"
	"sync"

	"loadstate/internal/errors"
)

// Renderer produces skeleton-placeholder markup at the given width.
type Renderer func(width int) string

// Registry maps skeleton names to renderers. It is an explicit object
// with its own lifecycle, owned by whichever composition root builds
// the app; there is no package-level registry.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty skeleton registry.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register associates a renderer with a name, replacing any previous
// registration under the same name.
func (r *Registry) Register(name string, fn Renderer) error {
	if name == "" {
		return errors.New(errors.ErrRender,
			"Skeleton renderer name cannot be empty",
			"Give the renderer a name like 'card' or 'list-row'")
	}
	if fn == nil {
		return errors.New(errors.ErrRender,
			fmt.Sprintf("Skeleton renderer '%s' is nil", name),
			"Pass a renderer function, or skip registration entirely")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[name] = fn
	return nil
}

// Lookup returns the renderer registered under name.
func (r *Registry) Lookup(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.renderers[name]
	if !ok {
		return nil, errors.New(errors.ErrRender,
			fmt.Sprintf("Unknown skeleton renderer '%s'", name),
			"Register the renderer before looking it up")
	}
	return fn, nil
}

// Names returns the registered renderer names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all registrations.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers = make(map[string]Renderer)
}
