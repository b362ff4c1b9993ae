package node

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-drift/flowgui/pkg/identity"
)

// Registry holds the node kinds a graph can be built from.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]*Kind
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]*Kind)}
}

// Register adds k. Names must be unique and versions valid semver.
func (r *Registry) Register(k *Kind) error {
	if k.Name == "" {
		return fmt.Errorf("register: kind has no name")
	}
	if k.New == nil {
		return fmt.Errorf("register %s: no constructor", k.Name)
	}
	h, err := identity.VersionHash(k.Name, k.Version)
	if err != nil {
		return fmt.Errorf("register %s: %w", k.Name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.kinds[k.Name]; dup {
		return fmt.Errorf("register %s: already registered", k.Name)
	}
	k.hash = h
	r.kinds[k.Name] = k
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(kinds ...*Kind) {
	for _, k := range kinds {
		if err := r.Register(k); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (*Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	return k, ok
}

// New instantiates the kind called name with identity id.
func (r *Registry) New(name string, id identity.NodeID) (*Instance, error) {
	k, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown node kind %q", name)
	}
	return NewInstance(k, k.New(), id), nil
}

// Kinds returns the registered kinds sorted by name.
func (r *Registry) Kinds() []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
