package export

import (
	"fmt"

	"slate/internal/diag"
	"slate/internal/srctype"
)

// newRecordType builds a record node from a validated struct descriptor.
// The host's layout oracle supplies the total allocation size and every
// field offset; its absence for a defined record is a host contract
// violation. Any unexportable field aborts the whole record: no partial
// records are surfaced or cached.
func (reg *Registry) newRecordType(t *srctype.Type, name string, artificial bool) *Type {
	rd := t.Record
	if rd == nil || !rd.Defined {
		panic(fmt.Sprintf("export: struct %q is not defined in this module", name))
	}
	layout := rd.Layout
	if layout == nil {
		panic(fmt.Sprintf("export: host supplied no layout for struct %q", name))
	}
	if len(layout.FieldOffsets) < len(rd.Fields) {
		panic(fmt.Sprintf("export: layout for struct %q covers %d of %d fields",
			name, len(layout.FieldOffsets), len(rd.Fields)))
	}

	ert := &Type{
		reg:        reg,
		class:      ClassRecord,
		name:       name,
		packed:     rd.Packed,
		artificial: artificial,
		allocSize:  layout.Size,
		fields:     make([]*Field, 0, len(rd.Fields)),
	}

	for i := range rd.Fields {
		fd := &rd.Fields[i]
		if fd.BitField {
			return nil
		}
		fieldET := reg.ExportType(fd.Type)
		if fieldET == nil {
			diag.ReportError(reg.diags, diag.ExportFieldNotExportable, rd.Span,
				fmt.Sprintf("field type cannot be exported: '%s.%s'", rd.Name, fd.Name))
			return nil
		}
		ert.fields = append(ert.fields, &Field{
			Name:   fd.Name,
			Type:   fieldET,
			Parent: ert,
			Offset: layout.FieldOffsets[i],
		})
	}

	return ert
}
