package export

import (
	"fmt"

	"fortio.org/safecast"

	"slate/internal/rtspec"
	"slate/internal/srctype"
)

func (reg *Registry) newPrimitiveType(dt rtspec.DataType, name string, role rtspec.Role, normalized bool) *Type {
	if dt == rtspec.DataTypeUnknown || name == "" {
		return nil
	}
	return &Type{
		reg:        reg,
		class:      ClassPrimitive,
		name:       name,
		data:       dt,
		role:       role,
		normalized: normalized,
	}
}

func (reg *Registry) newPointerType(t *srctype.Type, name string) *Type {
	pointee := t.Pointee.Canonical()
	if pointee == nil {
		return nil
	}

	var pointeeET *Type
	if pointee.Kind == srctype.KindPointer {
		// Double or higher indirection decays to a pointer to the platform
		// integer type.
		pointeeET = reg.ExportType(srctype.Builtin(srctype.BuiltinInt))
	} else {
		pointeeET = reg.ExportType(pointee)
	}
	if pointeeET == nil {
		// A diagnostic was already emitted for the pointee.
		return nil
	}

	return &Type{
		reg:     reg,
		class:   ClassPointer,
		name:    name,
		pointee: pointeeET,
	}
}

func (reg *Registry) newVectorType(t *srctype.Type, name string) *Type {
	base := t.Base.Canonical()
	dt := reg.dataTypeOf(base)
	if dt == rtspec.DataTypeUnknown {
		return nil
	}
	return &Type{
		reg:   reg,
		class: ClassVector,
		name:  name,
		data:  dt,
		role:  rtspec.RoleUser,
		lanes: t.Lanes,
	}
}

func (reg *Registry) newConstantArrayType(t *srctype.Type) *Type {
	if t.Len == 0 {
		panic("export: constant array must have a positive length")
	}
	if _, err := safecast.Conv[int32](t.Len); err != nil {
		panic(fmt.Errorf("export: constant array too large: %w", err))
	}
	elemET := reg.ExportType(t.Elem)
	if elemET == nil {
		return nil
	}
	return &Type{
		reg:   reg,
		class: ClassConstantArray,
		name:  ConstantArrayName,
		elem:  elemET,
		count: t.Len,
	}
}
