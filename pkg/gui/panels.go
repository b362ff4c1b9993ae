package gui

import (
	"errors"
	"fmt"

	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/surface"
	"github.com/go-drift/flowgui/pkg/types"
)

// Side is a panel slot. The constants are in processing order: peripheral
// panels first, the central panel last.
type Side uint8

const (
	SideTop Side = iota
	SideLeft
	SideRight
	SideBottom
	SideCenter
	numSides
)

var sideNames = [numSides]string{"Top", "Left", "Right", "Bottom", "Center"}

func (s Side) String() string {
	if s < numSides {
		return sideNames[s]
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// draw opens the panel for side on c and runs fn inside it.
func (s Side) draw(c surface.Context, id identity.ID, fn func(surface.Surface) error) error {
	switch s {
	case SideTop:
		return c.TopPanel(id, fn)
	case SideLeft:
		return c.LeftPanel(id, fn)
	case SideRight:
		return c.RightPanel(id, fn)
	case SideBottom:
		return c.BottomPanel(id, fn)
	}
	return c.CentralPanel(fn)
}

// Panels lays out up to four side panels and a central panel in one node.
type Panels struct {
	base
	rooted
	parents Parents
	slots   [numSides]*node.Sequence
}

// NewPanels returns a Panels node bound to GUI.Root with every slot empty.
func NewPanels() *Panels {
	return &Panels{rooted: newRooted(), parents: newParents()}
}

func (p *Panels) owner(s Side) string {
	return fmt.Sprintf("%s[%s]", p.name, s)
}

// Compose composes each present slot against the same incoming scope, so an
// exposure inside one slot never leaks into a sibling.
func (p *Panels) Compose(data node.InstanceData) (types.Type, error) {
	for s, seq := range p.slots {
		if err := ComposeContents(seq, p.owner(Side(s)), data); err != nil {
			return types.None, err
		}
	}
	return data.InputType, nil
}

func (p *Panels) RequiredVariables() []scope.ExposedInfo {
	return []scope.ExposedInfo{RequireRoot(p.rootName()), RequireParents()}
}

func (p *Panels) Warmup(ctx *node.Context) error {
	if err := p.acquire(ctx); err != nil {
		return err
	}
	p.parents.Warmup(ctx)
	for _, seq := range p.slots {
		if seq.IsEmpty() {
			continue
		}
		if err := seq.Warmup(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (p *Panels) Activate(ctx *node.Context, input any) (any, error) {
	c, err := p.context()
	if err != nil {
		return nil, err
	}
	st, ok := stackOf(&p.parents)
	if !ok {
		return nil, fmt.Errorf("%s is not available", ParentsName)
	}
	for s, seq := range p.slots {
		if seq.IsEmpty() {
			continue
		}
		id := p.sub(uint8(s))
		err := Side(s).draw(c, id, func(surf surface.Surface) error {
			return ActivateContents(ctx, input, surf, id, st, seq)
		})
		if err != nil {
			return nil, err
		}
	}
	return input, nil
}

// Cleanup runs the slots in processing order, then releases the handle.
func (p *Panels) Cleanup() error {
	var errs []error
	for _, seq := range p.slots {
		if seq.IsEmpty() {
			continue
		}
		if err := seq.Cleanup(); err != nil {
			errs = append(errs, err)
		}
	}
	p.parents.Cleanup()
	if err := p.release(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SetParam: 0 is the context variable, 1 to 5 the slots in Side order.
func (p *Panels) SetParam(index int, value any) error {
	switch {
	case index == 0:
		ref, ok := value.(types.VarRef)
		if !ok {
			return fmt.Errorf("expected a variable reference, got %T", value)
		}
		p.root.SetName(string(ref))
		return nil
	case index >= 1 && index <= int(numSides):
		seq, err := sequenceParam(value)
		if err != nil {
			return err
		}
		p.slots[index-1] = seq
		return nil
	}
	return fmt.Errorf("invalid parameter index %d", index)
}

func (p *Panels) GetParam(index int) any {
	switch {
	case index == 0:
		return p.root.Param()
	case index >= 1 && index <= int(numSides):
		return sequenceValue(p.slots[index-1])
	}
	return nil
}

// Panel is a single side or central panel drawn on the root context.
type Panel struct {
	nested
	rooted
	side Side
}

// NewPanel returns a panel for side with empty contents.
func NewPanel(side Side) *Panel {
	return &Panel{nested: newNested(), rooted: newRooted(), side: side}
}

func (p *Panel) RequiredVariables() []scope.ExposedInfo {
	return []scope.ExposedInfo{RequireRoot(p.rootName()), RequireParents()}
}

func (p *Panel) Warmup(ctx *node.Context) error {
	if err := p.acquire(ctx); err != nil {
		return err
	}
	return p.nested.Warmup(ctx)
}

func (p *Panel) Activate(ctx *node.Context, input any) (any, error) {
	c, err := p.context()
	if err != nil {
		return nil, err
	}
	st, ok := stackOf(&p.parents)
	if !ok {
		return nil, fmt.Errorf("%s is not available", ParentsName)
	}
	id := p.sub(0)
	err = p.side.draw(c, id, func(surf surface.Surface) error {
		return ActivateContents(ctx, input, surf, id, st, p.contents)
	})
	if err != nil {
		return nil, err
	}
	return input, nil
}

func (p *Panel) Cleanup() error {
	err := p.nested.Cleanup()
	return errors.Join(err, p.release())
}

func (p *Panel) SetParam(index int, value any) error {
	if index == 0 {
		return p.setContents(value)
	}
	return fmt.Errorf("invalid parameter index %d", index)
}

func (p *Panel) GetParam(index int) any {
	if index == 0 {
		return sequenceValue(p.contents)
	}
	return nil
}
