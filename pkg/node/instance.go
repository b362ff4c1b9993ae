package node

import (
	"errors"
	"fmt"

	flowerrors "github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/types"
)

// ErrInvalidTransition is wrapped by errors for lifecycle calls made in the
// wrong state.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// Instance is one live occurrence of a kind in a graph.
type Instance struct {
	kind  *Kind
	node  Node
	id    identity.NodeID
	name  string
	state State

	outputType types.Type
	required   []scope.ExposedInfo
	exposed    []scope.ExposedInfo
}

// NewInstance wraps n, an instance of kind, with the arena identity id.
func NewInstance(kind *Kind, n Node, id identity.NodeID) *Instance {
	inst := &Instance{
		kind: kind,
		node: n,
		id:   id,
		name: fmt.Sprintf("%s#%d", kind.Name, id),
	}
	if idn, ok := n.(Identified); ok {
		idn.SetIdentity(id, inst.name)
	}
	return inst
}

// Kind returns the registration record of the instance.
func (i *Instance) Kind() *Kind { return i.kind }

// Node returns the wrapped node.
func (i *Instance) Node() Node { return i.node }

// ID returns the arena identity.
func (i *Instance) ID() identity.NodeID { return i.id }

// Name returns "<kind>#<id>", used in errors and logs.
func (i *Instance) Name() string { return i.name }

// State returns the lifecycle state.
func (i *Instance) State() State { return i.state }

// OutputType returns the type computed by Compose.
func (i *Instance) OutputType() types.Type { return i.outputType }

// Required returns the variables the node required at compose time.
func (i *Instance) Required() []scope.ExposedInfo { return i.required }

// Exposed returns the variables the node added to its scope at compose time.
func (i *Instance) Exposed() []scope.ExposedInfo { return i.exposed }

func (i *Instance) transitionError(op string) error {
	return &flowerrors.NodeError{
		Op:   op,
		Node: i.name,
		Err:  fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, op, i.state),
	}
}

// guard converts a panic in phase op into a KindPanic error.
func (i *Instance) guard(op string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = flowerrors.FromPanic(op, i.name, r)
}

// SetParam sets parameter index after checking the value against the
// parameter's accepted types.
func (i *Instance) SetParam(index int, value any) (err error) {
	defer i.guard("parameter", &err)
	if i.state == StateActivating {
		return i.transitionError("parameter")
	}
	p, ok := i.node.(Parameterized)
	if !ok || index < 0 || index >= len(i.kind.Params) {
		return flowerrors.Parameter(i.name, "no parameter at index %d", index)
	}
	info := i.kind.Params[index]
	if vt := types.TypeOf(value); !info.Types.Accepts(vt) {
		return flowerrors.Parameter(i.name, "parameter %s: %v not in %v", info.Name, vt, info.Types)
	}
	if err := p.SetParam(index, value); err != nil {
		return flowerrors.Parameter(i.name, "parameter %s: %v", info.Name, err)
	}
	return nil
}

// SetParamByName is SetParam addressed by parameter name.
func (i *Instance) SetParamByName(name string, value any) error {
	index, ok := i.kind.ParamIndex(name)
	if !ok {
		return flowerrors.Parameter(i.name, "unknown parameter %q", name)
	}
	return i.SetParam(index, value)
}

// GetParam returns parameter index, or nil when there is none.
func (i *Instance) GetParam(index int) any {
	p, ok := i.node.(Parameterized)
	if !ok || index < 0 || index >= len(i.kind.Params) {
		return nil
	}
	return p.GetParam(index)
}

// Compose validates the node against its input type and scope and returns
// its output type. It may run once.
func (i *Instance) Compose(data InstanceData) (out types.Type, err error) {
	defer i.guard("compose", &err)
	if i.state != StateDeclared {
		return types.None, i.transitionError("compose")
	}
	if !i.kind.InputTypes.Accepts(data.InputType) {
		return types.None, flowerrors.TypeMismatch(i.name, "input type %v not in %v", data.InputType, i.kind.InputTypes)
	}

	if c, ok := i.node.(Composer); ok {
		out, err = c.Compose(data)
		if err != nil {
			return types.None, err
		}
	} else {
		out, err = i.defaultOutput(data.InputType)
		if err != nil {
			return types.None, err
		}
	}

	if r, ok := i.node.(Requirer); ok {
		reqs := r.RequiredVariables()
		if err := scope.Require(data.Shared, i.name, reqs); err != nil {
			return types.None, err
		}
		i.required = reqs
	}
	if e, ok := i.node.(Exposer); ok {
		_, added, err := scope.Expose(data.Shared, i.name, e.ExposedVariables())
		if err != nil {
			return types.None, err
		}
		i.exposed = added
	}

	i.outputType = out
	i.state = StateComposed
	return out, nil
}

// defaultOutput is the output type of a node without its own Compose: its
// single declared output type, or the input type when outputs accept it.
func (i *Instance) defaultOutput(input types.Type) (types.Type, error) {
	outs := i.kind.OutputTypes
	if len(outs) == 1 && outs[0].Basic != types.BasicAny {
		return outs[0], nil
	}
	if outs.Accepts(input) {
		return input, nil
	}
	return types.None, flowerrors.TypeMismatch(i.name, "cannot derive output type from input %v", input)
}

// Warmup acquires the node's runtime resources. When the node fails, its
// own Cleanup runs before the error is returned and the instance stays
// composed.
func (i *Instance) Warmup(ctx *Context) (err error) {
	if i.state != StateComposed {
		return i.transitionError("warmup")
	}
	defer func() {
		if err != nil {
			i.rollback()
		}
	}()
	defer i.guard("warmup", &err)

	if w, ok := i.node.(Warmer); ok {
		if err := w.Warmup(ctx); err != nil {
			var ne *flowerrors.NodeError
			if errors.As(err, &ne) && ne.Node != "" {
				return err
			}
			return flowerrors.Warmup(i.name, err)
		}
	}
	ctx.Logger.V(2).Info("node warm", "node", i.name)
	i.state = StateWarm
	return nil
}

func (i *Instance) rollback() {
	defer func() { _ = recover() }()
	if c, ok := i.node.(Cleaner); ok {
		_ = c.Cleanup()
	}
}

// Activate runs one frame. The node must be warm and not already activating.
func (i *Instance) Activate(ctx *Context, input any) (out any, err error) {
	switch i.state {
	case StateWarm:
	case StateActivating:
		return nil, &flowerrors.NodeError{
			Op:   "activate",
			Kind: flowerrors.KindActivation,
			Node: i.name,
			Err:  fmt.Errorf("%w: re-entrant activation", ErrInvalidTransition),
		}
	default:
		return nil, i.transitionError("activate")
	}
	i.state = StateActivating
	defer func() { i.state = StateWarm }()
	defer i.guard("activate", &err)

	out, err = i.node.Activate(ctx, input)
	if err != nil {
		var ne *flowerrors.NodeError
		if errors.As(err, &ne) {
			return nil, err
		}
		return nil, flowerrors.Activation(i.name, "", err)
	}
	return out, nil
}

// Cleanup releases the node's resources. It is a no-op unless the instance
// is warm, so calling it twice, or on a node that never warmed, is safe.
func (i *Instance) Cleanup() (err error) {
	if i.state != StateWarm {
		return nil
	}
	i.state = StateCool
	defer i.guard("cleanup", &err)
	if c, ok := i.node.(Cleaner); ok {
		if err := c.Cleanup(); err != nil {
			return &flowerrors.NodeError{Op: "cleanup", Node: i.name, Err: err}
		}
	}
	return nil
}
