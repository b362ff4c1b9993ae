package engine

import (
	"fmt"

	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/types"
)

// Wire is a named root sequence together with the arena its nodes were
// allocated from. Containers reach their nested nodes through their shards
// parameters; the wire owns them all.
type Wire struct {
	Name      string
	InputType types.Type

	root  *node.Sequence
	arena identity.Arena
	ctx   *node.Context
	frame uint64

	composed   bool
	warm       bool
	outputType types.Type
}

// NewWire wraps an already built root sequence.
func NewWire(name string, input types.Type, root *node.Sequence) *Wire {
	if root == nil {
		root = node.NewSequence()
	}
	root.Owner = name
	return &Wire{Name: name, InputType: input, root: root}
}

// Root returns the root sequence.
func (w *Wire) Root() *node.Sequence { return w.root }

// Context returns the activation context created by warmup, or nil.
func (w *Wire) Context() *node.Context { return w.ctx }

// Frame returns the number of frames activated so far.
func (w *Wire) Frame() uint64 { return w.frame }

// OutputType returns the type computed by compose.
func (w *Wire) OutputType() types.Type { return w.outputType }

// Len returns the number of nodes allocated for the wire, nested ones
// included.
func (w *Wire) Len() int { return w.arena.Len() }

// Build instantiates a wire description against the engine's registry.
func (e *Engine) Build(spec *WireSpec) (*Wire, error) {
	input, err := ParseType(spec.Input)
	if err != nil {
		return nil, fmt.Errorf("wire %s: %w", spec.Name, err)
	}
	w := &Wire{Name: spec.Name, InputType: input}
	b := &builder{reg: e.reg, arena: &w.arena}
	root, err := b.sequence(spec.Nodes)
	if err != nil {
		return nil, fmt.Errorf("wire %s: %w", spec.Name, err)
	}
	root.Owner = spec.Name
	w.root = root
	return w, nil
}

type builder struct {
	reg   *node.Registry
	arena *identity.Arena
}

func (b *builder) sequence(specs []NodeSpec) (*node.Sequence, error) {
	seq := node.NewSequence()
	for _, spec := range specs {
		inst, err := b.node(spec)
		if err != nil {
			return nil, err
		}
		seq.Add(inst)
	}
	return seq, nil
}

func (b *builder) node(spec NodeSpec) (*node.Instance, error) {
	inst, err := b.reg.New(spec.Kind, b.arena.Next())
	if err != nil {
		return nil, err
	}
	dec := &decoder{build: b.sequence}
	// Params are applied in declaration order, not map order.
	for i, info := range inst.Kind().Params {
		raw, ok := spec.Params[info.Name]
		if !ok {
			continue
		}
		v, err := dec.value(info, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", inst.Name(), err)
		}
		if err := inst.SetParam(i, v); err != nil {
			return nil, err
		}
	}
	for name := range spec.Params {
		if _, ok := inst.Kind().ParamIndex(name); !ok {
			return nil, fmt.Errorf("%s: unknown parameter %q", inst.Name(), name)
		}
	}
	return inst, nil
}
