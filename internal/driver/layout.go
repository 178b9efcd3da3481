package driver

import (
	"fmt"

	"slate/internal/export"
	"slate/internal/rtspec"
	"slate/internal/srctype"
	"slate/internal/target"
)

// recordSizer fills in the layout the host front end normally provides:
// natural alignment with tail padding, or cumulative offsets for packed
// records. One sizer per unit; results are memoized per declaration.
type recordSizer struct {
	tgt  target.Target
	done map[*srctype.RecordDecl]sizeAlign
}

type sizeAlign struct {
	size  int64
	align int64
}

func newRecordSizer(tgt target.Target) *recordSizer {
	return &recordSizer{
		tgt:  tgt,
		done: make(map[*srctype.RecordDecl]sizeAlign),
	}
}

// layoutRecord computes and attaches the layout for a defined record.
// Fields of struct type are laid out first.
func (rs *recordSizer) layoutRecord(rd *srctype.RecordDecl) error {
	if rd == nil || !rd.Defined {
		return nil
	}
	_, err := rs.recordSizeAlign(rd)
	return err
}

func (rs *recordSizer) recordSizeAlign(rd *srctype.RecordDecl) (sizeAlign, error) {
	if sa, ok := rs.done[rd]; ok {
		return sa, nil
	}
	// Mark before recursing; a by-value cycle would otherwise never
	// terminate. The checker rejects such records separately.
	rs.done[rd] = sizeAlign{}

	offsets := make([]int64, len(rd.Fields))
	var off, maxAlign int64
	maxAlign = 1
	for i := range rd.Fields {
		fsa, err := rs.sizeAlign(rd.Fields[i].Type)
		if err != nil {
			return sizeAlign{}, fmt.Errorf("struct %q field %q: %w", rd.Name, rd.Fields[i].Name, err)
		}
		align := fsa.align
		if rd.Packed {
			align = 1
		}
		off = roundUp(off, align)
		offsets[i] = off
		off += fsa.size
		if align > maxAlign {
			maxAlign = align
		}
	}
	size := roundUp(off, maxAlign)
	if size == 0 {
		size = 1
	}

	sa := sizeAlign{size: size, align: maxAlign}
	rs.done[rd] = sa
	rd.Layout = &srctype.RecordLayout{Size: sa.size, FieldOffsets: offsets}
	return sa, nil
}

func (rs *recordSizer) sizeAlign(t *srctype.Type) (sizeAlign, error) {
	t = t.Canonical()
	if t == nil {
		return sizeAlign{}, fmt.Errorf("unresolvable type")
	}
	switch t.Kind {
	case srctype.KindBuiltin:
		n := builtinSize(t.Builtin)
		if n == 0 {
			return sizeAlign{}, fmt.Errorf("type %s has no size", t.Builtin)
		}
		return sizeAlign{size: n, align: n}, nil
	case srctype.KindPointer:
		return sizeAlign{size: int64(rs.tgt.PtrSize), align: int64(rs.tgt.PtrAlign)}, nil
	case srctype.KindVector:
		base, err := rs.sizeAlign(t.Base)
		if err != nil {
			return sizeAlign{}, err
		}
		// vec3 occupies a vec4 slot
		slot := base.size * int64(nextPow2(t.Lanes))
		return sizeAlign{size: slot, align: slot}, nil
	case srctype.KindConstantArray:
		elem, err := rs.sizeAlign(t.Elem)
		if err != nil {
			return sizeAlign{}, err
		}
		stride := roundUp(elem.size, elem.align)
		return sizeAlign{size: stride * int64(t.Len), align: elem.align}, nil
	case srctype.KindRecord:
		rd := t.Record
		if rd == nil {
			return sizeAlign{}, fmt.Errorf("unresolvable struct type")
		}
		// Runtime matrix kinds have a fixed shape (dim*dim floats) whether
		// or not the unit spells out their definition.
		if dim := matrixRecordDim(rd.DeclaredName()); dim > 0 {
			return sizeAlign{size: 4 * dim * dim, align: 4}, nil
		}
		if !rd.Defined {
			return sizeAlign{}, fmt.Errorf("struct %q is not defined", rd.DeclaredName())
		}
		return rs.recordSizeAlign(rd)
	default:
		return sizeAlign{}, fmt.Errorf("type has no storage layout")
	}
}

func matrixRecordDim(name string) int64 {
	switch export.RuntimeRecordType(name) {
	case rtspec.DataTypeMatrix2x2:
		return 2
	case rtspec.DataTypeMatrix3x3:
		return 3
	case rtspec.DataTypeMatrix4x4:
		return 4
	default:
		return 0
	}
}

func builtinSize(k srctype.BuiltinKind) int64 {
	switch k {
	case srctype.BuiltinBool, srctype.BuiltinChar, srctype.BuiltinUChar:
		return 1
	case srctype.BuiltinShort, srctype.BuiltinUShort:
		return 2
	case srctype.BuiltinInt, srctype.BuiltinUInt, srctype.BuiltinFloat, srctype.BuiltinWideChar:
		return 4
	case srctype.BuiltinLong, srctype.BuiltinULong, srctype.BuiltinDouble:
		return 8
	default:
		return 0
	}
}

func roundUp(n, align int64) int64 {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

func nextPow2(n uint32) uint32 {
	p := uint32(1)
	for p < n {
		p <<= 1
	}
	return p
}
