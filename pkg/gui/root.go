package gui

import (
	"fmt"

	"github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/surface"
	"github.com/go-drift/flowgui/pkg/types"
)

// Root is the GUI node. It owns the rendering context for its contents and
// runs one frame of it per activation.
type Root struct {
	base
	contents *node.Sequence

	rootVar    node.Param
	parentsVar node.Param
	handle     *surface.Handle
	stack      *surface.Stack
}

// NewRoot returns a GUI root with no contents.
func NewRoot() *Root {
	return &Root{
		rootVar:    node.VarParam(RootName),
		parentsVar: node.VarParam(ParentsName),
	}
}

// Compose composes the contents in a scope extended with GUI.Root and
// UI.Parents. The root passes its input through. Roots do not nest.
func (r *Root) Compose(data node.InstanceData) (types.Type, error) {
	if _, ok := data.Shared.Lookup(RootName); ok {
		return types.None, errors.TypeMismatch(r.name, "%s is already visible: a GUI root cannot be nested inside another", RootName)
	}
	inner := node.InstanceData{
		InputType: data.InputType,
		Shared:    data.Shared.With(rootInfos()...),
	}
	if err := ComposeContents(r.contents, r.name, inner); err != nil {
		return types.None, err
	}
	return data.InputType, nil
}

func (r *Root) ExposedVariables() []scope.ExposedInfo {
	var out []scope.ExposedInfo
	for _, info := range ExposeContents(r.contents) {
		if info.Name != RootName && info.Name != ParentsName {
			out = append(out, info)
		}
	}
	return out
}

// Warmup opens the rendering context and publishes it before warming the
// contents.
func (r *Root) Warmup(ctx *node.Context) error {
	if ctx.Backend == nil {
		return fmt.Errorf("no rendering backend")
	}
	c, err := ctx.Backend()
	if err != nil {
		return fmt.Errorf("open rendering context: %w", err)
	}
	r.handle = surface.NewHandle(c)
	r.stack = &surface.Stack{}

	r.rootVar.Warmup(ctx)
	r.rootVar.Set(r.handle)
	r.parentsVar.Warmup(ctx)
	r.parentsVar.Set(r.stack)

	return r.contents.Warmup(ctx)
}

func (r *Root) Activate(ctx *node.Context, input any) (any, error) {
	c, err := r.handle.Context()
	if err != nil {
		return nil, err
	}
	c.BeginFrame()
	defer c.EndFrame()
	c.Caches().NextFrame()

	if _, err := r.contents.Activate(ctx, input); err != nil {
		return nil, err
	}
	if d := r.stack.Depth(); d != 0 {
		return nil, fmt.Errorf("parent stack unbalanced after frame: depth %d", d)
	}
	return input, nil
}

// Cleanup cleans the contents up first so every descendant reference on the
// handle is released before it is destroyed.
func (r *Root) Cleanup() error {
	err := r.contents.Cleanup()
	if r.handle != nil {
		if derr := r.handle.Destroy(); derr != nil && err == nil {
			err = derr
		}
		r.handle = nil
	}
	r.stack = nil
	r.rootVar.Cleanup()
	r.parentsVar.Cleanup()
	return err
}

func (r *Root) SetParam(index int, value any) error {
	switch index {
	case 0:
		seq, err := sequenceParam(value)
		if err != nil {
			return err
		}
		r.contents = seq
		return nil
	}
	return fmt.Errorf("invalid parameter index %d", index)
}

func (r *Root) GetParam(index int) any {
	if index == 0 {
		return sequenceValue(r.contents)
	}
	return nil
}
