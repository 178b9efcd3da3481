package export

import (
	"fmt"

	"slate/internal/rtspec"
	"slate/internal/target"
)

// Class enumerates the export-type variants. The set is closed; every
// per-variant operation dispatches on it.
type Class uint8

const (
	ClassPrimitive Class = iota
	ClassPointer
	ClassVector
	ClassMatrix
	ClassConstantArray
	ClassRecord
)

func (c Class) String() string {
	switch c {
	case ClassPrimitive:
		return "primitive"
	case ClassPointer:
		return "pointer"
	case ClassVector:
		return "vector"
	case ClassMatrix:
		return "matrix"
	case ClassConstantArray:
		return "constant array"
	case ClassRecord:
		return "record"
	default:
		return fmt.Sprintf("Class(%d)", c)
	}
}

// Field is one record member: its export type, byte offset as reported by
// the host layout oracle, and a non-owning back-reference to the enclosing
// record.
type Field struct {
	Name   string
	Type   *Type
	Parent *Type
	Offset int64
}

// Type is one node of the canonical export model. Identity within a
// registry is the canonical name: the registry hands out at most one node
// per name, except constant arrays, which are never cached.
//
// Only the payload fields of the node's Class are meaningful.
type Type struct {
	reg   *Registry
	class Class
	name  string
	live  bool

	// Lazily rendered handles. targetType is invalidated by Keep so it is
	// recomputed under the assumptions current at emission time.
	targetType *target.Type
	specNode   *rtspec.Node

	// Primitive and Vector:
	data       rtspec.DataType
	role       rtspec.Role
	normalized bool

	lanes uint32 // Vector, 2..4
	dim   uint32 // Matrix, 2..4

	pointee *Type // Pointer

	elem  *Type  // ConstantArray element
	count uint32 // ConstantArray length

	// Record:
	fields     []*Field
	packed     bool
	artificial bool
	allocSize  int64
}

func (t *Type) Class() Class { return t.class }

// Name returns the canonical export name used for registry identity.
func (t *Type) Name() string { return t.name }

func (t *Type) Live() bool { return t.live }

// DataType is meaningful for Primitive, Vector and Matrix nodes.
func (t *Type) DataType() rtspec.DataType { return t.data }

func (t *Type) Role() rtspec.Role { return t.role }

func (t *Type) Normalized() bool { return t.normalized }

// IsObject reports whether a primitive node is a runtime-managed handle.
func (t *Type) IsObject() bool {
	return t.class == ClassPrimitive && t.data.IsObject()
}

func (t *Type) Lanes() uint32 { return t.lanes }

func (t *Type) Dim() uint32 { return t.dim }

func (t *Type) Pointee() *Type { return t.pointee }

func (t *Type) Element() *Type { return t.elem }

func (t *Type) Len() uint32 { return t.count }

func (t *Type) Fields() []*Field { return t.fields }

func (t *Type) Packed() bool { return t.packed }

func (t *Type) Artificial() bool { return t.artificial }

// AllocSize is meaningful for records: the oracle-reported total byte size.
func (t *Type) AllocSize() int64 { return t.allocSize }

// Keep marks the node and every owned child as live. It is idempotent: a
// second call returns true immediately and does not re-invalidate the
// cached target type.
func (t *Type) Keep() bool {
	if t.live {
		return true
	}
	t.live = true
	t.targetType = nil
	switch t.class {
	case ClassPointer:
		t.pointee.Keep()
	case ClassConstantArray:
		t.elem.Keep()
	case ClassRecord:
		for _, f := range t.fields {
			f.Type.Keep()
		}
	}
	return true
}

// Equals compares structural payloads recursively. It is distinct from
// registry identity: it is meant for comparing nodes across registries,
// where name-based identity does not hold.
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.class != other.class {
		return false
	}
	switch t.class {
	case ClassPrimitive:
		return t.data == other.data
	case ClassPointer:
		return t.pointee.Equals(other.pointee)
	case ClassVector:
		return t.data == other.data && t.lanes == other.lanes
	case ClassMatrix:
		return t.dim == other.dim
	case ClassConstantArray:
		return t.count == other.count && t.elem.Equals(other.elem)
	case ClassRecord:
		if len(t.fields) != len(other.fields) {
			return false
		}
		for i := range t.fields {
			if !t.fields[i].Type.Equals(other.fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
