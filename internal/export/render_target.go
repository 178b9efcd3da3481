package export

import (
	"fmt"

	"fortio.org/safecast"

	"slate/internal/rtspec"
	"slate/internal/target"
)

// TargetType renders the node into the machine type codegen consumes. The
// result is cached until Keep invalidates it. An unrenderable child fails
// the whole node; the caller treats that as fatal for the compilation.
func (t *Type) TargetType() (*target.Type, error) {
	if t.targetType != nil {
		return t.targetType, nil
	}
	tt, err := t.renderTargetType()
	if err != nil {
		return nil, err
	}
	t.targetType = tt
	return tt, nil
}

func (t *Type) renderTargetType() (*target.Type, error) {
	switch t.class {
	case ClassPrimitive:
		if t.data.IsObject() {
			return t.reg.objectHandleType(), nil
		}
		return scalarTargetType(t.data), nil

	case ClassPointer:
		pointee, err := t.pointee.TargetType()
		if err != nil {
			return nil, err
		}
		return target.PointerTo(pointee), nil

	case ClassVector:
		return target.VectorOf(scalarTargetType(t.data), int(t.lanes)), nil

	case ClassMatrix:
		// struct { float x[dim * dim]; }
		n := int(t.dim * t.dim)
		return target.StructOf("", []*target.Type{
			target.ArrayOf(target.Float(32), n),
		}, false), nil

	case ClassConstantArray:
		elem, err := t.elem.TargetType()
		if err != nil {
			return nil, err
		}
		count, err := safecast.Conv[int](t.count)
		if err != nil {
			return nil, fmt.Errorf("render %q: %w", t.name, err)
		}
		return target.ArrayOf(elem, count), nil

	case ClassRecord:
		return t.renderRecordTargetType()

	default:
		panic(fmt.Sprintf("export: render of unknown class %d", t.class))
	}
}

// renderRecordTargetType builds the aggregate opaque-first: the placeholder
// is registered as this node's in-progress type before any field renders,
// so a record reachable from its own fields resolves to the placeholder
// instead of recursing forever.
func (t *Type) renderRecordTargetType() (*target.Type, error) {
	opaque := target.OpaqueStruct(t.name)
	t.targetType = opaque

	fieldTypes := make([]*target.Type, 0, len(t.fields))
	for _, f := range t.fields {
		ft, err := f.Type.TargetType()
		if err != nil {
			t.targetType = nil
			return nil, fmt.Errorf("render field %q of %q: %w", f.Name, t.name, err)
		}
		fieldTypes = append(fieldTypes, ft)
	}
	opaque.SetBody(fieldTypes, t.packed)
	return opaque, nil
}

// TargetAllocSize returns the size in bytes a value occupies in memory.
// Records answer from the host layout oracle; everything else from the
// rendered machine type.
func (t *Type) TargetAllocSize() (int64, error) {
	if t.class == ClassRecord {
		return t.allocSize, nil
	}
	tt, err := t.TargetType()
	if err != nil {
		return 0, err
	}
	n, err := t.reg.engine.AllocSize(tt)
	return int64(n), err
}

// TargetStoreSize returns the bytes actually written when storing a value.
func (t *Type) TargetStoreSize() (int64, error) {
	tt, err := t.TargetType()
	if err != nil {
		return 0, err
	}
	n, err := t.reg.engine.StoreSize(tt)
	return int64(n), err
}

// objectHandleType returns the shared opaque handle aggregate:
//
//	struct { uintptr_t p; } __attribute__((packed, aligned(pointer_size)))
//
// Computed once per registry, independent of which object kind asked.
func (reg *Registry) objectHandleType() *target.Type {
	if reg.objectHandle == nil {
		bits := reg.tgt.PtrSize * 8
		reg.objectHandle = target.StructOf("sl_object", []*target.Type{
			target.ArrayOf(target.Int(bits), 1),
		}, true)
	}
	return reg.objectHandle
}

func scalarTargetType(dt rtspec.DataType) *target.Type {
	switch dt {
	case rtspec.DataTypeFloat32:
		return target.Float(32)
	case rtspec.DataTypeFloat64:
		return target.Float(64)
	case rtspec.DataTypeBoolean:
		return target.Int(1)
	case rtspec.DataTypeSigned8, rtspec.DataTypeUnsigned8:
		return target.Int(8)
	case rtspec.DataTypeSigned16, rtspec.DataTypeUnsigned16,
		rtspec.DataTypeUnsigned565, rtspec.DataTypeUnsigned5551, rtspec.DataTypeUnsigned4444:
		return target.Int(16)
	case rtspec.DataTypeSigned32, rtspec.DataTypeUnsigned32:
		return target.Int(32)
	case rtspec.DataTypeSigned64, rtspec.DataTypeUnsigned64:
		return target.Int(64)
	default:
		panic(fmt.Sprintf("export: no machine scalar for data type %s", dt))
	}
}
