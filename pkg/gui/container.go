package gui

import (
	"fmt"

	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/surface"
	"github.com/go-drift/flowgui/pkg/types"
)

// nested is the part shared by every container holding one contents slot
// and drawing into the parent stack.
type nested struct {
	base
	contents *node.Sequence
	parents  Parents
}

func newNested() nested {
	return nested{parents: newParents()}
}

// Compose composes the contents against the incoming scope and passes the
// input type through.
func (n *nested) Compose(data node.InstanceData) (types.Type, error) {
	if err := ComposeContents(n.contents, n.name, data); err != nil {
		return types.None, err
	}
	return data.InputType, nil
}

func (n *nested) RequiredVariables() []scope.ExposedInfo {
	return []scope.ExposedInfo{RequireParents()}
}

func (n *nested) ExposedVariables() []scope.ExposedInfo {
	return ExposeContents(n.contents)
}

func (n *nested) Warmup(ctx *node.Context) error {
	n.parents.Warmup(ctx)
	return n.contents.Warmup(ctx)
}

func (n *nested) Cleanup() error {
	err := n.contents.Cleanup()
	n.parents.Cleanup()
	return err
}

func (n *nested) setContents(value any) error {
	seq, err := sequenceParam(value)
	if err != nil {
		return err
	}
	n.contents = seq
	return nil
}

// rooted is the part shared by containers drawing straight into the root
// context: they hold a reference on the handle between warmup and cleanup.
type rooted struct {
	root   node.Param
	handle *surface.Handle
}

func newRooted() rooted {
	return rooted{root: node.VarParam(RootName)}
}

func (r *rooted) rootName() string {
	if name := r.root.Name(); name != "" {
		return name
	}
	return RootName
}

func (r *rooted) acquire(ctx *node.Context) error {
	r.root.Warmup(ctx)
	h, err := handleOf(&r.root)
	if err != nil {
		return err
	}
	if err := h.Acquire(); err != nil {
		return err
	}
	r.handle = h
	return nil
}

func (r *rooted) release() error {
	var err error
	if r.handle != nil {
		err = r.handle.Release()
		r.handle = nil
	}
	r.root.Cleanup()
	return err
}

func (r *rooted) context() (surface.Context, error) {
	if r.handle == nil {
		return nil, fmt.Errorf("%s is not available", r.rootName())
	}
	return r.handle.Context()
}
