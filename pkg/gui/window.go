package gui

import (
	"errors"
	"fmt"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/surface"
)

// Window is a floating, titled window on the root context.
type Window struct {
	nested
	rooted

	title    string
	position *graphics.Offset
	width    float64
	height   float64
	flags    surface.WindowFlags
}

func NewWindow() *Window {
	return &Window{nested: newNested(), rooted: newRooted(), title: "My Window"}
}

func (w *Window) RequiredVariables() []scope.ExposedInfo {
	return []scope.ExposedInfo{RequireRoot(w.rootName()), RequireParents()}
}

func (w *Window) Warmup(ctx *node.Context) error {
	if err := w.acquire(ctx); err != nil {
		return err
	}
	return w.nested.Warmup(ctx)
}

func (w *Window) Activate(ctx *node.Context, input any) (any, error) {
	c, err := w.context()
	if err != nil {
		return nil, err
	}
	st, ok := stackOf(&w.parents)
	if !ok {
		return nil, fmt.Errorf("%s is not available", ParentsName)
	}
	opts := surface.WindowOptions{
		Title:    w.title,
		Position: w.position,
		Width:    w.width,
		Height:   w.height,
		Flags:    w.flags,
	}
	id := w.sub(0)
	err = c.Window(id, opts, func(surf surface.Surface) error {
		return ActivateContents(ctx, input, surf, id, st, w.contents)
	})
	if err != nil {
		return nil, err
	}
	return input, nil
}

func (w *Window) Cleanup() error {
	err := w.nested.Cleanup()
	return errors.Join(err, w.release())
}

func (w *Window) SetParam(index int, value any) error {
	var err error
	switch index {
	case 0:
		w.title, err = stringParam(value, "My Window")
	case 1:
		w.position, err = offsetParam(value)
	case 2:
		w.width, err = floatParam(value, 0)
	case 3:
		w.height, err = floatParam(value, 0)
	case 4:
		w.flags, err = flagsParam(value)
	case 5:
		err = w.setContents(value)
	default:
		err = fmt.Errorf("invalid parameter index %d", index)
	}
	return err
}

func (w *Window) GetParam(index int) any {
	switch index {
	case 0:
		return w.title
	case 1:
		if w.position == nil {
			return nil
		}
		return [2]float64{w.position.X, w.position.Y}
	case 2:
		return w.width
	case 3:
		return w.height
	case 4:
		return w.flags
	case 5:
		return sequenceValue(w.contents)
	}
	return nil
}

// Area is an untitled region placed freely on the screen, optionally
// relative to an anchor.
type Area struct {
	nested
	rooted

	position graphics.Offset
	anchor   *surface.Anchor
}

func NewArea() *Area {
	return &Area{nested: newNested(), rooted: newRooted()}
}

func (a *Area) RequiredVariables() []scope.ExposedInfo {
	return []scope.ExposedInfo{RequireRoot(a.rootName()), RequireParents()}
}

func (a *Area) Warmup(ctx *node.Context) error {
	if err := a.acquire(ctx); err != nil {
		return err
	}
	return a.nested.Warmup(ctx)
}

func (a *Area) Activate(ctx *node.Context, input any) (any, error) {
	c, err := a.context()
	if err != nil {
		return nil, err
	}
	st, ok := stackOf(&a.parents)
	if !ok {
		return nil, fmt.Errorf("%s is not available", ParentsName)
	}
	id := a.sub(0)
	opts := surface.AreaOptions{Position: a.position, Anchor: a.anchor}
	err = c.Area(id, opts, func(surf surface.Surface) error {
		return ActivateContents(ctx, input, surf, id, st, a.contents)
	})
	if err != nil {
		return nil, err
	}
	return input, nil
}

func (a *Area) Cleanup() error {
	err := a.nested.Cleanup()
	return errors.Join(err, a.release())
}

func (a *Area) SetParam(index int, value any) error {
	switch index {
	case 0:
		pos, err := offsetParam(value)
		if err != nil {
			return err
		}
		a.position = graphics.Offset{}
		if pos != nil {
			a.position = *pos
		}
		return nil
	case 1:
		switch v := value.(type) {
		case nil:
			a.anchor = nil
		case surface.Anchor:
			if !v.Valid() {
				return fmt.Errorf("invalid anchor %d", uint8(v))
			}
			a.anchor = &v
		default:
			return fmt.Errorf("expected an anchor, got %T", value)
		}
		return nil
	case 2:
		return a.setContents(value)
	}
	return fmt.Errorf("invalid parameter index %d", index)
}

func (a *Area) GetParam(index int) any {
	switch index {
	case 0:
		return [2]float64{a.position.X, a.position.Y}
	case 1:
		if a.anchor == nil {
			return nil
		}
		return *a.anchor
	case 2:
		return sequenceValue(a.contents)
	}
	return nil
}
