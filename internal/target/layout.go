package target

import (
	"fmt"
)

// Layout is the ABI layout of a machine type: allocation size, alignment,
// and byte offsets for struct fields.
type Layout struct {
	Size  int
	Align int

	// Struct-only:
	FieldOffsets []int
}

// LayoutErrorKind enumerates layout calculation failures.
type LayoutErrorKind uint8

const (
	// LayoutErrOpaque indicates an aggregate whose body was never set.
	LayoutErrOpaque LayoutErrorKind = iota + 1
	LayoutErrInvalidType
)

// LayoutError reports a failure to lay out a machine type.
type LayoutError struct {
	Kind LayoutErrorKind
	Type *Type
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrOpaque:
		return fmt.Sprintf("cannot lay out opaque aggregate %q", e.Type.Name)
	case LayoutErrInvalidType:
		return fmt.Sprintf("cannot lay out invalid type %s", e.Type)
	default:
		return "unknown layout error"
	}
}

// Engine computes memory layout for machine types on a specific Target.
type Engine struct {
	Target Target

	cache map[*Type]Layout
}

func NewEngine(t Target) *Engine {
	return &Engine{
		Target: t,
		cache:  make(map[*Type]Layout, 64),
	}
}

// LayoutOf computes and caches the layout of a type. Pointers never recurse
// into their pointee, so self-referential aggregates terminate.
func (e *Engine) LayoutOf(t *Type) (Layout, error) {
	if t == nil {
		return Layout{}, &LayoutError{Kind: LayoutErrInvalidType}
	}
	if cached, ok := e.cache[t]; ok {
		return cached, nil
	}
	l, err := e.compute(t)
	if err != nil {
		return Layout{}, err
	}
	e.cache[t] = l
	return l, nil
}

// AllocSize returns the size in bytes a value of t occupies in memory,
// including tail padding.
func (e *Engine) AllocSize(t *Type) (int, error) {
	l, err := e.LayoutOf(t)
	return l.Size, err
}

// StoreSize returns the bytes actually written when storing a value of t.
// It differs from AllocSize for sub-byte scalars and width-3 vectors.
func (e *Engine) StoreSize(t *Type) (int, error) {
	if t == nil {
		return 0, &LayoutError{Kind: LayoutErrInvalidType}
	}
	switch t.Kind {
	case KindInt:
		return (t.Bits + 7) / 8, nil
	case KindFloat:
		return t.Bits / 8, nil
	case KindVector:
		elem, err := e.StoreSize(t.Elem)
		if err != nil {
			return 0, err
		}
		return elem * t.Count, nil
	default:
		return e.AllocSize(t)
	}
}

// AlignOf returns the alignment requirement of a type in bytes.
func (e *Engine) AlignOf(t *Type) (int, error) {
	l, err := e.LayoutOf(t)
	return l.Align, err
}

// FieldOffset returns the byte offset of a struct field.
func (e *Engine) FieldOffset(t *Type, fieldIdx int) (int, error) {
	l, err := e.LayoutOf(t)
	if err != nil {
		return 0, err
	}
	if fieldIdx < 0 || fieldIdx >= len(l.FieldOffsets) {
		return 0, fmt.Errorf("field index %d out of range for %s", fieldIdx, t)
	}
	return l.FieldOffsets[fieldIdx], nil
}

func (e *Engine) compute(t *Type) (Layout, error) {
	switch t.Kind {
	case KindInt:
		// Sub-byte carriers (i1) still occupy one byte in memory.
		return scalarLayoutBytes((t.Bits + 7) / 8), nil

	case KindFloat:
		return scalarLayoutBytes(t.Bits / 8), nil

	case KindPointer:
		return e.ptrLayout(), nil

	case KindVector:
		elem, err := e.LayoutOf(t.Elem)
		if err != nil {
			return Layout{}, err
		}
		// Width-3 vectors occupy a 4-lane slot; alignment is the full slot.
		slot := elem.Size * nextPow2(t.Count)
		return Layout{Size: slot, Align: slot}, nil

	case KindArray:
		elem, err := e.LayoutOf(t.Elem)
		if err != nil {
			return Layout{}, err
		}
		align := elem.Align
		if align <= 0 {
			align = 1
		}
		stride := roundUp(elem.Size, align)
		return Layout{Size: stride * t.Count, Align: align}, nil

	case KindStruct:
		if t.Opaque() {
			return Layout{}, &LayoutError{Kind: LayoutErrOpaque, Type: t}
		}
		return e.structLayout(t)

	default:
		return Layout{}, &LayoutError{Kind: LayoutErrInvalidType, Type: t}
	}
}

func (e *Engine) structLayout(t *Type) (Layout, error) {
	offsets := make([]int, len(t.Fields))

	if t.Packed {
		size := 0
		for i, f := range t.Fields {
			fl, err := e.LayoutOf(f)
			if err != nil {
				return Layout{}, err
			}
			offsets[i] = size
			size += fl.Size
		}
		return Layout{Size: size, Align: 1, FieldOffsets: offsets}, nil
	}

	size := 0
	align := 1
	for i, f := range t.Fields {
		fl, err := e.LayoutOf(f)
		if err != nil {
			return Layout{}, err
		}
		fAlign := fl.Align
		if fAlign <= 0 {
			fAlign = 1
		}
		size = roundUp(size, fAlign)
		offsets[i] = size
		size += fl.Size
		align = maxInt(align, fAlign)
	}
	size = roundUp(size, align)
	return Layout{Size: size, Align: align, FieldOffsets: offsets}, nil
}

func (e *Engine) ptrLayout() Layout {
	ptrSize := e.Target.PtrSize
	ptrAlign := e.Target.PtrAlign
	if ptrSize <= 0 {
		ptrSize = 8
	}
	if ptrAlign <= 0 {
		ptrAlign = ptrSize
	}
	return Layout{Size: ptrSize, Align: ptrAlign}
}

func scalarLayoutBytes(size int) Layout {
	if size <= 0 {
		return Layout{Size: 0, Align: 1}
	}
	return Layout{Size: size, Align: size}
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
