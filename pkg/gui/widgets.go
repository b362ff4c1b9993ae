package gui

import (
	"fmt"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/surface"
	"github.com/go-drift/flowgui/pkg/types"
)

// leaf is the part shared by widgets drawing into the innermost parent.
type leaf struct {
	base
	parents Parents
}

func newLeaf() leaf {
	return leaf{parents: newParents()}
}

func (l *leaf) RequiredVariables() []scope.ExposedInfo {
	return []scope.ExposedInfo{RequireParents()}
}

func (l *leaf) Warmup(ctx *node.Context) error {
	l.parents.Warmup(ctx)
	return nil
}

func (l *leaf) Cleanup() error {
	l.parents.Cleanup()
	return nil
}

func (l *leaf) parent() (surface.Surface, error) {
	surf, _, err := CurrentParent(&l.parents, l.name)
	return surf, err
}

// Label shows its Text parameter, or its input when Text is unset.
type Label struct {
	leaf
	text node.Param
}

func NewLabel() *Label {
	return &Label{leaf: newLeaf()}
}

func (l *Label) Warmup(ctx *node.Context) error {
	l.text.Warmup(ctx)
	return l.leaf.Warmup(ctx)
}

func (l *Label) Cleanup() error {
	l.text.Cleanup()
	return l.leaf.Cleanup()
}

func (l *Label) Activate(ctx *node.Context, input any) (any, error) {
	surf, err := l.parent()
	if err != nil {
		return nil, err
	}
	var text string
	switch v := l.text.Get().(type) {
	case string:
		text = v
	case nil:
		if s, ok := input.(string); ok {
			text = s
		} else if input != nil {
			text = fmt.Sprint(input)
		}
	default:
		text = fmt.Sprint(v)
	}
	surf.Label(l.sub(0), text)
	return input, nil
}

func (l *Label) SetParam(index int, value any) error {
	if index != 0 {
		return fmt.Errorf("invalid parameter index %d", index)
	}
	l.text.SetParam(value)
	return nil
}

func (l *Label) GetParam(index int) any {
	if index == 0 {
		return l.text.Param()
	}
	return nil
}

// ProgressBar shows its float input as a filled bar.
type ProgressBar struct {
	leaf
	overlay node.Param
	width   float64
}

func NewProgressBar() *ProgressBar {
	return &ProgressBar{leaf: newLeaf()}
}

func (p *ProgressBar) Warmup(ctx *node.Context) error {
	p.overlay.Warmup(ctx)
	return p.leaf.Warmup(ctx)
}

func (p *ProgressBar) Cleanup() error {
	p.overlay.Cleanup()
	return p.leaf.Cleanup()
}

func (p *ProgressBar) Activate(ctx *node.Context, input any) (any, error) {
	surf, err := p.parent()
	if err != nil {
		return nil, err
	}
	progress, err := floatParam(input, 0)
	if err != nil {
		return nil, err
	}
	progress = min(max(progress, 0), 1)
	overlay, _ := p.overlay.Get().(string)
	surf.ProgressBar(p.sub(0), progress, overlay, p.width)
	return input, nil
}

func (p *ProgressBar) SetParam(index int, value any) (err error) {
	switch index {
	case 0:
		p.overlay.SetParam(value)
	case 1:
		p.width, err = floatParam(value, 0)
	default:
		err = fmt.Errorf("invalid parameter index %d", index)
	}
	return err
}

func (p *ProgressBar) GetParam(index int) any {
	switch index {
	case 0:
		return p.overlay.Param()
	case 1:
		if p.width == 0 {
			return nil
		}
		return p.width
	}
	return nil
}

// ColorInput is a colour picker. The colour lives in the variable named by
// its Variable parameter, or in the node itself when there is none.
type ColorInput struct {
	leaf
	variable node.Param
	binding  scope.Binding
	own      graphics.Color
}

func NewColorInput() *ColorInput {
	return &ColorInput{
		leaf:    newLeaf(),
		binding: scope.Binding{Type: types.Color, Help: "The exposed color variable"},
	}
}

// Compose exposes the colour variable unless a variable of that name is
// already visible, in which case it must be a colour and is shared.
func (c *ColorInput) Compose(data node.InstanceData) (types.Type, error) {
	c.binding.Name = c.variable.Name()
	if err := c.binding.Reconcile(data.Shared, c.name); err != nil {
		return types.None, err
	}
	return types.Color, nil
}

func (c *ColorInput) ExposedVariables() []scope.ExposedInfo {
	return c.binding.Exposed()
}

func (c *ColorInput) Warmup(ctx *node.Context) error {
	c.variable.Warmup(ctx)
	if c.binding.ShouldExpose() {
		if _, ok := c.variable.Get().(graphics.Color); !ok {
			c.variable.Set(graphics.ColorTransparent)
		}
	}
	return c.leaf.Warmup(ctx)
}

func (c *ColorInput) Cleanup() error {
	c.variable.Cleanup()
	return c.leaf.Cleanup()
}

func (c *ColorInput) Activate(ctx *node.Context, input any) (any, error) {
	surf, err := c.parent()
	if err != nil {
		return nil, err
	}
	current := c.own
	if c.variable.IsVariable() {
		current, _ = c.variable.Get().(graphics.Color)
	}
	picked := surf.ColorEdit(c.sub(0), current)
	if c.variable.IsVariable() {
		c.variable.Set(picked)
	} else {
		c.own = picked
	}
	return picked, nil
}

func (c *ColorInput) SetParam(index int, value any) error {
	if index != 0 {
		return fmt.Errorf("invalid parameter index %d", index)
	}
	c.variable.SetParam(value)
	return nil
}

func (c *ColorInput) GetParam(index int) any {
	if index == 0 {
		return c.variable.Param()
	}
	return nil
}
