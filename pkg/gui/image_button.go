package gui

import (
	"fmt"
	"image"

	"github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/surface"
	"github.com/go-drift/flowgui/pkg/types"
)

// imageSource is how an image button reads its input. It is fixed at
// compose time from the input type.
type imageSource uint8

const (
	sourceUnset imageSource = iota
	sourceImage
	sourceTexture
)

func (s imageSource) String() string {
	switch s {
	case sourceImage:
		return "image"
	case sourceTexture:
		return "texture"
	}
	return "unset"
}

func (s imageSource) image(input any) (surface.Image, error) {
	switch s {
	case sourceImage:
		if img, ok := input.(image.Image); ok {
			return surface.Image{Pixels: img}, nil
		}
	case sourceTexture:
		if tex, ok := input.(*types.TextureRef); ok && tex != nil {
			return surface.Image{Texture: tex}, nil
		}
	default:
		return surface.Image{}, fmt.Errorf("image button was not composed")
	}
	return surface.Image{}, fmt.Errorf("expected %s input, got %T", s, input)
}

// ImageButton is a clickable image. A click toggles the Selected variable,
// if any, and runs Action with the button's input.
type ImageButton struct {
	leaf
	action   *node.Sequence
	scale    [2]float64
	selected node.Param
	binding  scope.Binding
	source   imageSource
}

func NewImageButton() *ImageButton {
	return &ImageButton{
		leaf:    newLeaf(),
		scale:   [2]float64{1, 1},
		binding: scope.Binding{Type: types.Bool, Help: "The exposed selection state"},
	}
}

func (b *ImageButton) Compose(data node.InstanceData) (types.Type, error) {
	switch data.InputType.Basic {
	case types.BasicImage:
		b.source = sourceImage
	case types.BasicTexture:
		b.source = sourceTexture
	default:
		return types.None, errors.TypeMismatch(b.name, "image button input must be an image or a texture, got %v", data.InputType)
	}

	b.binding.Name = b.selected.Name()
	if err := b.binding.Reconcile(data.Shared, b.name); err != nil {
		return types.None, err
	}
	if err := ComposeContents(b.action, b.name, data); err != nil {
		return types.None, err
	}
	return types.Bool, nil
}

func (b *ImageButton) ExposedVariables() []scope.ExposedInfo {
	return b.binding.Exposed()
}

func (b *ImageButton) Warmup(ctx *node.Context) error {
	b.selected.Warmup(ctx)
	if b.binding.ShouldExpose() {
		if _, ok := b.selected.Get().(bool); !ok {
			b.selected.Set(false)
		}
	}
	if err := b.leaf.Warmup(ctx); err != nil {
		return err
	}
	return b.action.Warmup(ctx)
}

func (b *ImageButton) Cleanup() error {
	err := b.action.Cleanup()
	b.selected.Cleanup()
	b.leaf.Cleanup()
	return err
}

func (b *ImageButton) Activate(ctx *node.Context, input any) (any, error) {
	surf, err := b.parent()
	if err != nil {
		return nil, err
	}
	img, err := b.source.image(input)
	if err != nil {
		return nil, err
	}
	natural := img.Size()
	size := graphics.Size{Width: natural.Width * b.scale[0], Height: natural.Height * b.scale[1]}
	selected, _ := b.selected.Get().(bool)

	if !surf.ImageButton(b.sub(0), img, size, selected) {
		return false, nil
	}
	if b.selected.IsVariable() {
		b.selected.Set(!selected)
	}
	if _, err := b.action.Activate(ctx, input); err != nil {
		return nil, err
	}
	return true, nil
}

func (b *ImageButton) SetParam(index int, value any) error {
	switch index {
	case 0:
		seq, err := sequenceParam(value)
		if err != nil {
			return err
		}
		b.action = seq
	case 1:
		switch v := value.(type) {
		case nil:
			b.scale = [2]float64{1, 1}
		case [2]float64:
			b.scale = v
		default:
			return fmt.Errorf("expected a scale, got %T", value)
		}
	case 2:
		b.selected.SetParam(value)
	default:
		return fmt.Errorf("invalid parameter index %d", index)
	}
	return nil
}

func (b *ImageButton) GetParam(index int) any {
	switch index {
	case 0:
		return sequenceValue(b.action)
	case 1:
		return b.scale
	case 2:
		return b.selected.Param()
	}
	return nil
}
