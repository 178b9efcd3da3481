package export

import (
	"fmt"

	"slate/internal/diag"
	"slate/internal/rtspec"
	"slate/internal/srctype"
)

// newMatrixType validates that a record claiming to be a matrix of the
// given dimension has the expected shape and builds the node. Shape
// violations are construction-time errors naming the struct; they can only
// come from a broken runtime header, not from user code.
func (reg *Registry) newMatrixType(t *srctype.Type, name string, dim uint32) *Type {
	if dim < 2 || dim > 4 {
		panic(fmt.Sprintf("export: invalid matrix dimension %d", dim))
	}
	rd := t.Record
	// A forward declaration is assumed correct; only a definition can be
	// examined further.
	if rd != nil && rd.Defined {
		if !reg.validateMatrixRecord(rd, dim) {
			return nil
		}
	}
	return &Type{
		reg:   reg,
		class: ClassMatrix,
		name:  name,
		data:  matrixDataType(dim),
		dim:   dim,
	}
}

func (reg *Registry) validateMatrixRecord(rd *srctype.RecordDecl, dim uint32) bool {
	fail := func(msg string) bool {
		diag.ReportError(reg.diags, diag.ExportInvalidMatrixStruct, rd.Span,
			fmt.Sprintf(msg, rd.Name))
		return false
	}

	if len(rd.Fields) == 0 {
		return fail("invalid matrix struct: must have 1 field for saving values: '%s'")
	}
	ft := rd.Fields[0].Type.Canonical()
	if ft == nil || ft.Kind != srctype.KindConstantArray {
		return fail("invalid matrix struct: first field should be an array with constant size: '%s'")
	}
	elem := ft.Elem.Canonical()
	if elem == nil || elem.Kind != srctype.KindBuiltin || elem.Builtin != srctype.BuiltinFloat {
		return fail("invalid matrix struct: first field should be a float array: '%s'")
	}
	if ft.Len != dim*dim {
		diag.ReportError(reg.diags, diag.ExportInvalidMatrixStruct, rd.Span,
			fmt.Sprintf("invalid matrix struct: first field should be an array with size %d: '%s'", dim*dim, rd.Name))
		return false
	}
	if len(rd.Fields) != 1 {
		return fail("invalid matrix struct: must have exactly 1 field: '%s'")
	}
	return true
}

func matrixDataType(dim uint32) rtspec.DataType {
	switch dim {
	case 2:
		return rtspec.DataTypeMatrix2x2
	case 3:
		return rtspec.DataTypeMatrix3x3
	case 4:
		return rtspec.DataTypeMatrix4x4
	default:
		panic(fmt.Sprintf("export: matrix type with unsupported dimension %d", dim))
	}
}
