package gui

import (
	"fmt"

	flowerrors "github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/surface"
	"github.com/go-drift/flowgui/pkg/types"
)

// Names of the variables published by the GUI root.
const (
	RootName    = "GUI.Root"
	ParentsName = "UI.Parents"
)

var (
	// ContextType is the type of the GUI.Root variable.
	ContextType = types.Object(surface.VendorID, types.FourCC("eguC"))
	// UIType is the type of one drawing surface.
	UIType = types.Object(surface.VendorID, types.FourCC("eguU"))
	// ParentsType is the type of the UI.Parents variable.
	ParentsType = types.SeqOf(UIType)

	contextVarTypes = types.Types{types.ContextVarOf(ContextType)}
	shardsOrNone    = types.Types{types.Shards, types.None}
)

// RequireParents declares the dependency of a drawing node on an
// enclosing surface.
func RequireParents() scope.ExposedInfo {
	return scope.ExposedInfo{Name: ParentsName, Type: ParentsType, Help: "The parent UI objects."}
}

// RequireRoot declares the dependency of a root-level container on the
// rendering context published under name.
func RequireRoot(name string) scope.ExposedInfo {
	return scope.ExposedInfo{Name: name, Type: ContextType, Help: "The exposed GUI root context."}
}

func rootInfos() []scope.ExposedInfo {
	return []scope.ExposedInfo{
		{Name: RootName, Type: ContextType, Help: "The exposed GUI root context."},
		{Name: ParentsName, Type: ParentsType, Help: "The parent UI objects."},
	}
}

// base carries the arena identity every gui node is given.
type base struct {
	id   identity.NodeID
	name string
}

func (b *base) SetIdentity(id identity.NodeID, name string) {
	b.id, b.name = id, name
}

// sub derives the identity of the node's slot-th nested draw call.
func (b *base) sub(slot uint8) identity.ID {
	return identity.New(b.id, slot)
}

// Parents is a drawing node's binding to UI.Parents. The stack is resolved
// once at warmup: the node keeps drawing into the root that warmed it even
// after another root publishes its own stack under the same name.
type Parents struct {
	param node.Param
	stack *surface.Stack
}

func newParents() Parents {
	return Parents{param: node.VarParam(ParentsName)}
}

// Warmup references UI.Parents and resolves the stack it holds.
func (p *Parents) Warmup(ctx *node.Context) {
	p.param.Warmup(ctx)
	p.stack, _ = p.param.Get().(*surface.Stack)
}

// Cleanup drops the reference and the resolved stack.
func (p *Parents) Cleanup() {
	p.param.Cleanup()
	p.stack = nil
}

// Stack returns the stack resolved at warmup, or nil.
func (p *Parents) Stack() *surface.Stack {
	return p.stack
}

func stackOf(parents *Parents) (*surface.Stack, bool) {
	st := parents.Stack()
	return st, st != nil
}

// CurrentParent returns the innermost surface of the stack held by
// parents, or a NoActiveSurface error naming nodeName.
func CurrentParent(parents *Parents, nodeName string) (surface.Surface, *surface.Stack, error) {
	st, ok := stackOf(parents)
	if !ok {
		return nil, nil, flowerrors.NoActiveSurface(nodeName)
	}
	surf, err := st.Current()
	if err != nil {
		return nil, nil, flowerrors.NoActiveSurface(nodeName)
	}
	return surf, st, nil
}

// ActivateContents pushes surf, activates contents with input and pops
// again on every exit path.
func ActivateContents(ctx *node.Context, input any, surf surface.Surface, scopeID identity.ID, st *surface.Stack, contents *node.Sequence) error {
	return st.With(scopeID, surf, func() error {
		_, err := contents.Activate(ctx, input)
		return err
	})
}

// ComposeContents composes a non-empty contents slot against data.
func ComposeContents(contents *node.Sequence, owner string, data node.InstanceData) error {
	if contents.IsEmpty() {
		return nil
	}
	contents.Owner = owner
	_, err := contents.Compose(data)
	return err
}

// ExposeContents returns what a single-slot container re-exposes: the
// variables its contents exposed.
func ExposeContents(contents *node.Sequence) []scope.ExposedInfo {
	if contents.IsEmpty() {
		return nil
	}
	return contents.Exposed()
}

// sequenceParam converts a Shards-or-None parameter value.
func sequenceParam(value any) (*node.Sequence, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *node.Sequence:
		return v, nil
	}
	return nil, fmt.Errorf("expected a node sequence, got %T", value)
}

// sequenceValue is the GetParam form of a contents slot.
func sequenceValue(s *node.Sequence) any {
	if s == nil {
		return nil
	}
	return s
}

// handleOf resolves a warm GUI.Root parameter.
func handleOf(p *node.Param) (*surface.Handle, error) {
	h, ok := p.Get().(*surface.Handle)
	if !ok || h == nil {
		return nil, fmt.Errorf("%s is not available", p.Name())
	}
	return h, nil
}
