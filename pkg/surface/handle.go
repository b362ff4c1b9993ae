package surface

import (
	"fmt"
	"sync"
)

// Handle is a reference-counted share of one root Context. The root node
// creates it holding the first reference; descendants Acquire during
// warmup and Release during cleanup. The root tears it down with Destroy
// once every descendant reference is gone.
type Handle struct {
	mu        sync.Mutex
	ctx       Context
	refs      int
	destroyed bool
}

// NewHandle wraps ctx with a single reference owned by the root.
func NewHandle(ctx Context) *Handle {
	return &Handle{ctx: ctx, refs: 1}
}

// Acquire adds a descendant reference.
func (h *Handle) Acquire() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return fmt.Errorf("surface: acquire on destroyed handle")
	}
	h.refs++
	return nil
}

// Release drops a descendant reference. The root reference can only be
// dropped by Destroy.
func (h *Handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.refs <= 1 {
		return fmt.Errorf("surface: release without matching acquire")
	}
	h.refs--
	return nil
}

// Refs returns the number of live references, root included.
func (h *Handle) Refs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refs
}

// Context returns the wrapped context.
func (h *Handle) Context() (Context, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return nil, fmt.Errorf("surface: handle destroyed")
	}
	return h.ctx, nil
}

// Destroy closes the context. It fails while descendants still hold
// references. Destroying twice is a no-op.
func (h *Handle) Destroy() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return nil
	}
	if h.refs > 1 {
		return fmt.Errorf("surface: destroy with %d outstanding references", h.refs-1)
	}
	h.destroyed = true
	h.refs = 0
	return h.ctx.Close()
}
