// Package types describes the values that flow between nodes and the
// static types nodes declare for them at compose time.
package types

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-drift/flowgui/pkg/graphics"
)

// Basic is the coarse category of a Type.
type Basic uint8

const (
	BasicNone Basic = iota
	BasicAny
	BasicBool
	BasicInt
	BasicFloat
	BasicFloat2
	BasicString
	BasicColor
	BasicImage
	BasicTexture
	BasicTable
	BasicSeq
	BasicObject
	BasicEnum
	BasicContextVar
	BasicShards
)

var basicNames = [...]string{
	BasicNone:       "None",
	BasicAny:        "Any",
	BasicBool:       "Bool",
	BasicInt:        "Int",
	BasicFloat:      "Float",
	BasicFloat2:     "Float2",
	BasicString:     "String",
	BasicColor:      "Color",
	BasicImage:      "Image",
	BasicTexture:    "Texture",
	BasicTable:      "Table",
	BasicSeq:        "Seq",
	BasicObject:     "Object",
	BasicEnum:       "Enum",
	BasicContextVar: "ContextVar",
	BasicShards:     "Shards",
}

func (b Basic) String() string {
	if int(b) < len(basicNames) {
		return basicNames[b]
	}
	return fmt.Sprintf("Basic(%d)", int(b))
}

// Type is a static type. Objects and enums are told apart by vendor and id;
// sequences and context variables carry their element types.
type Type struct {
	Basic  Basic
	Vendor uint32
	ID     uint32
	Elems  []Type
}

// Predeclared types.
var (
	None    = Type{Basic: BasicNone}
	Any     = Type{Basic: BasicAny}
	Bool    = Type{Basic: BasicBool}
	Int     = Type{Basic: BasicInt}
	Float   = Type{Basic: BasicFloat}
	Float2  = Type{Basic: BasicFloat2}
	String  = Type{Basic: BasicString}
	Color   = Type{Basic: BasicColor}
	Image   = Type{Basic: BasicImage}
	Texture = Type{Basic: BasicTexture}
	Table   = Type{Basic: BasicTable}
	Shards  = Type{Basic: BasicShards}
)

// Object returns the type of an opaque object identified by vendor and id.
func Object(vendor, id uint32) Type {
	return Type{Basic: BasicObject, Vendor: vendor, ID: id}
}

// Enum returns the type of an enumeration identified by vendor and id.
func Enum(vendor, id uint32) Type {
	return Type{Basic: BasicEnum, Vendor: vendor, ID: id}
}

// SeqOf returns a sequence type whose elements may be any of elems.
func SeqOf(elems ...Type) Type {
	return Type{Basic: BasicSeq, Elems: elems}
}

// ContextVarOf returns the type of a reference to a variable holding one of elems.
func ContextVarOf(elems ...Type) Type {
	return Type{Basic: BasicContextVar, Elems: elems}
}

// FourCC packs a four character code into a vendor or type id.
func FourCC(code string) uint32 {
	var v uint32
	for i := 0; i < 4 && i < len(code); i++ {
		v = v<<8 | uint32(code[i])
	}
	return v
}

// Equal reports whether two types are identical.
func (t Type) Equal(o Type) bool {
	if t.Basic != o.Basic || t.Vendor != o.Vendor || t.ID != o.ID || len(t.Elems) != len(o.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

// Matches reports whether a value of type actual is acceptable where t is
// expected. Any accepts everything; sequences and context variables match
// when every actual element type is accepted by some expected element type.
func (t Type) Matches(actual Type) bool {
	if t.Basic == BasicAny {
		return true
	}
	if t.Basic != actual.Basic {
		return false
	}
	switch t.Basic {
	case BasicObject, BasicEnum:
		return t.Vendor == actual.Vendor && t.ID == actual.ID
	case BasicSeq, BasicContextVar:
		if len(t.Elems) == 0 {
			return true
		}
		for _, a := range actual.Elems {
			if !Types(t.Elems).Accepts(a) {
				return false
			}
		}
		return true
	}
	return true
}

func (t Type) String() string {
	switch t.Basic {
	case BasicObject, BasicEnum:
		return fmt.Sprintf("%s(%s/%s)", t.Basic, fourCCString(t.Vendor), fourCCString(t.ID))
	case BasicSeq, BasicContextVar:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("%s[%s]", t.Basic, strings.Join(parts, " "))
	}
	return t.Basic.String()
}

func fourCCString(v uint32) string {
	b := []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("%#x", v)
		}
	}
	return string(b)
}

// Types is a set of accepted types.
type Types []Type

// Contains reports whether ts holds a type equal to t.
func (ts Types) Contains(t Type) bool {
	for _, x := range ts {
		if x.Equal(t) {
			return true
		}
	}
	return false
}

// Accepts reports whether any type in ts matches actual.
func (ts Types) Accepts(actual Type) bool {
	for _, x := range ts {
		if x.Matches(actual) {
			return true
		}
	}
	return false
}

func (ts Types) String() string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// VarRef is a parameter value naming a variable instead of carrying a literal.
type VarRef string

// TextureRef is a runtime reference to a GPU texture owned by the renderer.
type TextureRef struct {
	Handle uint64
	Width  int
	Height int
}

// Typed is implemented by runtime objects that know their static type.
type Typed interface {
	Type() Type
}

// TypeOf returns the static type describing a runtime value.
func TypeOf(v any) Type {
	switch x := v.(type) {
	case nil:
		return None
	case Typed:
		return x.Type()
	case bool:
		return Bool
	case int, int32, int64:
		return Int
	case float32, float64:
		return Float
	case [2]float64:
		return Float2
	case string:
		return String
	case graphics.Color:
		return Color
	case image.Image:
		return Image
	case *TextureRef:
		return Texture
	case map[string]any:
		return Table
	case []any:
		elems := Types{}
		for _, e := range x {
			if et := TypeOf(e); !elems.Contains(et) {
				elems = append(elems, et)
			}
		}
		return SeqOf(elems...)
	case VarRef:
		return ContextVarOf()
	}
	return Any
}
