package target

import (
	"fmt"
	"strings"
)

// Kind enumerates machine type shapes.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindPointer
	KindVector
	KindArray
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindPointer:
		return "pointer"
	case KindVector:
		return "vector"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is one machine type node. Nodes are immutable after construction,
// except that an opaque struct may have its body set exactly once.
type Type struct {
	Kind Kind

	Bits int // KindInt (1 for bool carriers), KindFloat

	Elem  *Type // KindPointer pointee, KindVector / KindArray element
	Count int   // KindVector lanes, KindArray length

	Name   string // KindStruct, may be empty for literal aggregates
	Fields []*Type
	Packed bool
	opaque bool
}

func Int(bits int) *Type {
	return &Type{Kind: KindInt, Bits: bits}
}

func Float(bits int) *Type {
	return &Type{Kind: KindFloat, Bits: bits}
}

func PointerTo(elem *Type) *Type {
	return &Type{Kind: KindPointer, Elem: elem}
}

func VectorOf(elem *Type, lanes int) *Type {
	return &Type{Kind: KindVector, Elem: elem, Count: lanes}
}

func ArrayOf(elem *Type, n int) *Type {
	return &Type{Kind: KindArray, Elem: elem, Count: n}
}

func StructOf(name string, fields []*Type, packed bool) *Type {
	return &Type{Kind: KindStruct, Name: name, Fields: fields, Packed: packed}
}

// OpaqueStruct creates a named aggregate with no body yet. Rendering a
// self-referential record registers the opaque node first and fills the
// body in once every field has been rendered.
func OpaqueStruct(name string) *Type {
	return &Type{Kind: KindStruct, Name: name, opaque: true}
}

// Opaque reports whether a struct body has not been set yet.
func (t *Type) Opaque() bool {
	return t != nil && t.Kind == KindStruct && t.opaque
}

// SetBody fills in an opaque struct. Calling it on a non-opaque type is a
// caller bug.
func (t *Type) SetBody(fields []*Type, packed bool) {
	if !t.Opaque() {
		panic("target: SetBody on a non-opaque type")
	}
	t.Fields = fields
	t.Packed = packed
	t.opaque = false
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindInt:
		return fmt.Sprintf("i%d", t.Bits)
	case KindFloat:
		return fmt.Sprintf("f%d", t.Bits)
	case KindPointer:
		return t.Elem.String() + "*"
	case KindVector:
		return fmt.Sprintf("<%d x %s>", t.Count, t.Elem)
	case KindArray:
		return fmt.Sprintf("[%d x %s]", t.Count, t.Elem)
	case KindStruct:
		if t.opaque {
			return fmt.Sprintf("%%%s = opaque", t.Name)
		}
		parts := make([]string, 0, len(t.Fields))
		for _, f := range t.Fields {
			parts = append(parts, f.String())
		}
		body := "{ " + strings.Join(parts, ", ") + " }"
		if t.Packed {
			body = "<" + body + ">"
		}
		if t.Name != "" {
			return "%" + t.Name + " = " + body
		}
		return body
	default:
		return "<invalid>"
	}
}
