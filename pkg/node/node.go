package node

import (
	"github.com/go-logr/logr"

	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/surface"
	"github.com/go-drift/flowgui/pkg/types"
)

// Node is the behaviour every node kind provides.
type Node interface {
	// Activate runs one frame of the node against input and returns its output.
	Activate(ctx *Context, input any) (any, error)
}

// Composer refines the node's output type and bindings at compose time.
type Composer interface {
	Compose(data InstanceData) (types.Type, error)
}

// Warmer acquires runtime resources before the first activation.
type Warmer interface {
	Warmup(ctx *Context) error
}

// Cleaner releases what Warmup acquired. It must tolerate a partial warmup.
type Cleaner interface {
	Cleanup() error
}

// Parameterized exposes the node's parameters by index, in the order of
// its kind's Params.
type Parameterized interface {
	SetParam(index int, value any) error
	GetParam(index int) any
}

// Requirer declares the variables the node reads from its enclosing scope.
type Requirer interface {
	RequiredVariables() []scope.ExposedInfo
}

// Exposer declares the variables the node introduces into its scope.
type Exposer interface {
	ExposedVariables() []scope.ExposedInfo
}

// Identified receives the node's arena identity when it is instantiated.
type Identified interface {
	SetIdentity(id identity.NodeID, name string)
}

// InstanceData is what the engine knows about a node at compose time.
type InstanceData struct {
	InputType types.Type
	Shared    scope.Table
}

// Context is passed explicitly to warmup and to every activation.
type Context struct {
	Vars    *Vars
	Logger  logr.Logger
	Backend surface.Backend
	// Frame is the number of the frame being activated, starting at 1.
	Frame uint64
}

// NewContext returns a context with an empty variable store.
func NewContext(backend surface.Backend, logger logr.Logger) *Context {
	return &Context{Vars: NewVars(), Logger: logger, Backend: backend}
}

// ParamInfo describes one parameter of a kind.
type ParamInfo struct {
	Name  string
	Help  string
	Types types.Types
}

// Kind is the registration record of a node kind.
type Kind struct {
	Name        string
	Version     string
	Help        string
	InputTypes  types.Types
	InputHelp   string
	OutputTypes types.Types
	OutputHelp  string
	Params      []ParamInfo
	New         func() Node

	hash uint32
}

// Hash returns the content-addressed version hash computed at registration.
func (k *Kind) Hash() uint32 {
	return k.hash
}

// ParamIndex returns the index of the named parameter.
func (k *Kind) ParamIndex(name string) (int, bool) {
	for i, p := range k.Params {
		if p.Name == name {
			return i, true
		}
	}
	return -1, false
}
