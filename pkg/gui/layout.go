package gui

import (
	"fmt"

	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/surface"
)

// Scope runs its contents in a child surface whose style changes do not
// leak to its siblings.
type Scope struct {
	nested
}

func NewScope() *Scope {
	return &Scope{nested: newNested()}
}

func (s *Scope) Activate(ctx *node.Context, input any) (any, error) {
	parent, st, err := CurrentParent(&s.parents, s.name)
	if err != nil {
		return nil, err
	}
	id := s.sub(0)
	err = parent.Scope(id, func(surf surface.Surface) error {
		return ActivateContents(ctx, input, surf, id, st, s.contents)
	})
	if err != nil {
		return nil, err
	}
	return input, nil
}

func (s *Scope) SetParam(index int, value any) error {
	if index == 0 {
		return s.setContents(value)
	}
	return fmt.Errorf("invalid parameter index %d", index)
}

func (s *Scope) GetParam(index int) any {
	if index == 0 {
		return sequenceValue(s.contents)
	}
	return nil
}

// Indent runs its contents in an indented child surface. With no contents
// it does nothing, not even look for a parent.
type Indent struct {
	nested
}

func NewIndent() *Indent {
	return &Indent{nested: newNested()}
}

func (n *Indent) Activate(ctx *node.Context, input any) (any, error) {
	if n.contents.IsEmpty() {
		return input, nil
	}
	parent, st, err := CurrentParent(&n.parents, n.name)
	if err != nil {
		return nil, err
	}
	id := n.sub(0)
	err = parent.Indent(id, func(surf surface.Surface) error {
		return ActivateContents(ctx, input, surf, id, st, n.contents)
	})
	if err != nil {
		return nil, err
	}
	return input, nil
}

func (n *Indent) SetParam(index int, value any) error {
	if index == 0 {
		return n.setContents(value)
	}
	return fmt.Errorf("invalid parameter index %d", index)
}

func (n *Indent) GetParam(index int) any {
	if index == 0 {
		return sequenceValue(n.contents)
	}
	return nil
}
