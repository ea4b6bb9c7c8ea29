package processors

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"powerpages/internal/domain"
)

// ErrNotAccessible is returned when rendering a page whose processor hides it.
var ErrNotAccessible = errors.New("page is not accessible")

// PageLookup resolves pages referenced from a processor configuration.
type PageLookup interface {
	GetByAlias(ctx context.Context, alias string) (*domain.Page, error)
}

// Processor decides how a page is validated and rendered.
type Processor interface {
	Name() string
	// Validate checks the page's processor configuration.
	Validate(ctx context.Context, page *domain.Page, lookup PageLookup) error
	// IsAccessible reports whether the page may be served on its URL.
	IsAccessible() bool
	// Render returns the template source handed to the template engine, or
	// the redirect target for redirecting processors.
	Render(ctx context.Context, page *domain.Page, lookup PageLookup) (string, error)
}

// Registry maps processor identifiers to processors. It is built once at
// start-up and passed to whoever needs it.
type Registry struct {
	processors map[string]Processor
}

// NewRegistry creates a registry holding ps.
func NewRegistry(ps ...Processor) *Registry {
	r := &Registry{processors: make(map[string]Processor, len(ps))}
	for _, p := range ps {
		r.Register(p)
	}
	return r
}

// DefaultRegistry holds the built-in processors.
func DefaultRegistry() *Registry {
	return NewRegistry(Default{}, Redirect{}, NotFound{})
}

// Register adds or replaces a processor.
func (r *Registry) Register(p Processor) {
	r.processors[p.Name()] = p
}

// Get returns the processor registered under name.
func (r *Registry) Get(name string) (Processor, bool) {
	p, ok := r.processors[name]
	return p, ok
}

// Lookup returns the processor for name or an error naming the known ones.
func (r *Registry) Lookup(name string) (Processor, error) {
	if p, ok := r.Get(name); ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown page processor %q (known: %v)", name, r.Names())
}

// Names returns the registered identifiers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.processors))
	for name := range r.processors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
