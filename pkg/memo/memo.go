// Package memo caches derived artifacts per drawing surface across frames.
//
// Each surface owns one Caches. The host advances it once per frame with
// NextFrame. A FrameCache entry touched in the current or the previous frame
// is reused; anything older is recomputed on its next lookup and overwritten
// in place. Nothing is swept eagerly.
package memo

import "sync"

// Caches is the per-surface registry of frame caches.
type Caches struct {
	mu         sync.Mutex
	generation uint64
	caches     map[string]any
	metrics    *Metrics
}

// New returns an empty registry. m may be nil.
func New(m *Metrics) *Caches {
	return &Caches{caches: make(map[string]any), metrics: m}
}

// NextFrame advances the generation and returns the new value.
func (c *Caches) NextFrame() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

// Generation returns the current frame generation.
func (c *Caches) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Cache returns the cache registered under name, creating it with compute on
// first use. Registering the same name with different key or value types
// panics.
func Cache[K comparable, V any](c *Caches, name string, compute func(K) V) *FrameCache[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.caches[name]; ok {
		fc, ok := existing.(*FrameCache[K, V])
		if !ok {
			panic("memo: cache " + name + " registered with different types")
		}
		return fc
	}
	fc := &FrameCache[K, V]{
		name:    name,
		owner:   c,
		compute: compute,
		entries: make(map[K]*entry[V]),
	}
	c.caches[name] = fc
	return fc
}

type entry[V any] struct {
	value V
	gen   uint64
}

// FrameCache memoizes compute by key with generation-based reuse.
type FrameCache[K comparable, V any] struct {
	name    string
	owner   *Caches
	compute func(K) V

	mu      sync.Mutex
	entries map[K]*entry[V]
}

// Get returns the artifact for key. Within one generation equal keys return
// the same artifact.
func (f *FrameCache[K, V]) Get(key K) V {
	gen := f.owner.Generation()

	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entries[key]; ok && (e.gen == gen || e.gen+1 == gen) {
		e.gen = gen
		f.owner.metrics.hit(f.name)
		return e.value
	}
	f.owner.metrics.miss(f.name)
	v := f.compute(key)
	if e, ok := f.entries[key]; ok {
		e.value = v
		e.gen = gen
	} else {
		f.entries[key] = &entry[V]{value: v, gen: gen}
	}
	return v
}

// Len returns the number of stored entries, stale ones included.
func (f *FrameCache[K, V]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// Name returns the registry name of the cache.
func (f *FrameCache[K, V]) Name() string {
	return f.name
}
