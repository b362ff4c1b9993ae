package gui

import (
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/surface"
	"github.com/go-drift/flowgui/pkg/types"
)

const version = "v0.1.0"

var (
	anyTypes    = types.Types{types.Any}
	stringTypes = types.Types{types.String}
	floatTypes  = types.Types{types.Float}

	contentsParam = node.ParamInfo{Name: "Contents", Help: "The UI contents.", Types: shardsOrNone}
)

func panelKind(name, help string, side Side) *node.Kind {
	return &node.Kind{
		Name:        name,
		Version:     version,
		Help:        help,
		InputTypes:  anyTypes,
		InputHelp:   "The value that will be passed to the Contents shards of the panel.",
		OutputTypes: anyTypes,
		OutputHelp:  "The output of this shard will be its input.",
		Params:      []node.ParamInfo{contentsParam},
		New:         func() node.Node { return NewPanel(side) },
	}
}

// Kinds returns the registration records of every gui node kind.
func Kinds() []*node.Kind {
	return []*node.Kind{
		{
			Name:        "GUI",
			Version:     version,
			Help:        "Initializes a UI context and runs its contents once per frame.",
			InputTypes:  anyTypes,
			InputHelp:   "The value passed to the Contents.",
			OutputTypes: anyTypes,
			OutputHelp:  "The output of this shard will be its input.",
			Params:      []node.ParamInfo{contentsParam},
			New:         func() node.Node { return NewRoot() },
		},
		{
			Name:        "GUI.Panels",
			Version:     version,
			Help:        "Layout UI elements into panels.",
			InputTypes:  anyTypes,
			InputHelp:   "The value that will be passed to each panel's contents.",
			OutputTypes: anyTypes,
			OutputHelp:  "The output of this shard will be its input.",
			Params: []node.ParamInfo{
				{Name: "Context", Help: "The UI context.", Types: contextVarTypes},
				{Name: "Top", Help: "A panel that covers the entire top of a UI surface.", Types: shardsOrNone},
				{Name: "Left", Help: "A panel that covers the entire left side of a UI surface.", Types: shardsOrNone},
				{Name: "Right", Help: "A panel that covers the entire right side of a UI surface.", Types: shardsOrNone},
				{Name: "Bottom", Help: "A panel that covers the entire bottom of a UI surface.", Types: shardsOrNone},
				{Name: "Center", Help: "A panel that covers the remainder of the screen.", Types: shardsOrNone},
			},
			New: func() node.Node { return NewPanels() },
		},
		panelKind("UI.TopPanel", "A panel that covers the entire top of a UI surface.", SideTop),
		panelKind("UI.LeftPanel", "A panel that covers the entire left side of a UI surface.", SideLeft),
		panelKind("UI.RightPanel", "A panel that covers the entire right side of a UI surface.", SideRight),
		panelKind("UI.BottomPanel", "A panel that covers the entire bottom of a UI surface.", SideBottom),
		panelKind("UI.CentralPanel", "A panel that covers the remainder of the screen.", SideCenter),
		{
			Name:        "UI.Window",
			Version:     version,
			Help:        "Creates a floating window which can be dragged, closed, collapsed, and resized.",
			InputTypes:  anyTypes,
			InputHelp:   "The value that will be passed to the Contents shards of the window.",
			OutputTypes: anyTypes,
			OutputHelp:  "The output of this shard will be its input.",
			Params: []node.ParamInfo{
				{Name: "Title", Help: "The window title displayed on the titlebar.", Types: types.Types{types.String, types.None}},
				{Name: "Position", Help: "Absolute position.", Types: types.Types{types.Float2, types.None}},
				{Name: "Width", Help: "The width of the rendered window.", Types: types.Types{types.Float, types.Int, types.None}},
				{Name: "Height", Help: "The height of the rendered window.", Types: types.Types{types.Float, types.Int, types.None}},
				{Name: "Flags", Help: "Window flags.", Types: types.Types{surface.WindowFlagsType, types.SeqOf(surface.WindowFlagsType), types.None}},
				contentsParam,
			},
			New: func() node.Node { return NewWindow() },
		},
		{
			Name:        "UI.Area",
			Version:     version,
			Help:        "Places UI element at a specific position.",
			InputTypes:  anyTypes,
			InputHelp:   "The value that will be passed to the Contents shards of the area.",
			OutputTypes: anyTypes,
			OutputHelp:  "The output of this shard will be its input.",
			Params: []node.ParamInfo{
				{Name: "Position", Help: "Absolute UI position; or when anchor is set, relative offset.", Types: types.Types{types.Float2, types.None}},
				{Name: "Anchor", Help: "Side of the screen to anchor the UI to.", Types: types.Types{surface.AnchorType, types.None}},
				contentsParam,
			},
			New: func() node.Node { return NewArea() },
		},
		{
			Name:        "UI.Scope",
			Version:     version,
			Help:        "Creates a scoped child UI.",
			InputTypes:  anyTypes,
			InputHelp:   "The value that will be passed to the Contents shards of the scope.",
			OutputTypes: anyTypes,
			OutputHelp:  "The output of this shard will be its input.",
			Params:      []node.ParamInfo{contentsParam},
			New:         func() node.Node { return NewScope() },
		},
		{
			Name:        "UI.Indent",
			Version:     version,
			Help:        "Creates a child UI which is indented to the right.",
			InputTypes:  anyTypes,
			InputHelp:   "The value that will be passed to the Contents shards of the indented block.",
			OutputTypes: anyTypes,
			OutputHelp:  "The output of this shard will be its input.",
			Params:      []node.ParamInfo{contentsParam},
			New:         func() node.Node { return NewIndent() },
		},
		{
			Name:        "UI.Label",
			Version:     version,
			Help:        "Static text.",
			InputTypes:  anyTypes,
			InputHelp:   "The text to display when Text is not set.",
			OutputTypes: anyTypes,
			OutputHelp:  "The output of this shard will be its input.",
			Params: []node.ParamInfo{
				{Name: "Text", Help: "The text to display.", Types: types.Types{types.String, types.ContextVarOf(types.String), types.None}},
			},
			New: func() node.Node { return NewLabel() },
		},
		{
			Name:        "UI.ProgressBar",
			Version:     version,
			Help:        "A progress bar with an optional overlay text.",
			InputTypes:  floatTypes,
			InputHelp:   "The progress amount ranging from 0.0 (no progress) to 1.0 (completed).",
			OutputTypes: floatTypes,
			OutputHelp:  "The output of this shard will be its input.",
			Params: []node.ParamInfo{
				{Name: "Overlay", Help: "The text displayed inside the progress bar.", Types: types.Types{types.String, types.ContextVarOf(types.String), types.None}},
				{Name: "DesiredWidth", Help: "The desired width of the progress bar.", Types: types.Types{types.Float, types.Int, types.None}},
			},
			New: func() node.Node { return NewProgressBar() },
		},
		{
			Name:        "UI.Console",
			Version:     version,
			Help:        "A console with formatted logs.",
			InputTypes:  stringTypes,
			InputHelp:   "The logs to display.",
			OutputTypes: stringTypes,
			OutputHelp:  "The output of this shard will be its input.",
			Params: []node.ParamInfo{
				{Name: "Style", Help: "The console style.", Types: types.Types{types.Table, types.None}},
			},
			New: func() node.Node { return NewConsole() },
		},
		{
			Name:        "UI.CodeEditor",
			Version:     version,
			Help:        "A read-only view of syntax highlighted source code.",
			InputTypes:  stringTypes,
			InputHelp:   "The code to display.",
			OutputTypes: stringTypes,
			OutputHelp:  "The output of this shard will be its input.",
			Params: []node.ParamInfo{
				{Name: "Language", Help: "The language used for syntax highlighting.", Types: types.Types{types.String, types.None}},
				{Name: "Theme", Help: "dark, light or a style name.", Types: types.Types{types.String, types.None}},
			},
			New: func() node.Node { return NewCodeEditor() },
		},
		{
			Name:        "UI.ColorInput",
			Version:     version,
			Help:        "A widget where a color can be selected.",
			InputTypes:  anyTypes,
			InputHelp:   "The value is ignored.",
			OutputTypes: types.Types{types.Color},
			OutputHelp:  "The selected color.",
			Params: []node.ParamInfo{
				{Name: "Variable", Help: "The variable that holds the input value.", Types: types.Types{types.ContextVarOf(types.Color), types.None}},
			},
			New: func() node.Node { return NewColorInput() },
		},
		{
			Name:        "UI.ImageButton",
			Version:     version,
			Help:        "Clickable button with image.",
			InputTypes:  types.Types{types.Image, types.Texture},
			InputHelp:   "The image to display on the button.",
			OutputTypes: types.Types{types.Bool},
			OutputHelp:  "Indicates whether the button was clicked during this frame.",
			Params: []node.ParamInfo{
				{Name: "Action", Help: "The shards to execute when the button is pressed.", Types: shardsOrNone},
				{Name: "Scale", Help: "Scaling to apply to the source image.", Types: types.Types{types.Float2, types.None}},
				{Name: "Selected", Help: "Indicates whether the button is selected.", Types: types.Types{types.ContextVarOf(types.Bool), types.None}},
			},
			New: func() node.Node { return NewImageButton() },
		},
	}
}

// Register adds every gui node kind to reg.
func Register(reg *node.Registry) error {
	for _, k := range Kinds() {
		if err := reg.Register(k); err != nil {
			return err
		}
	}
	return nil
}
