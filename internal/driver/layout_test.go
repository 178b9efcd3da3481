package driver

import (
	"testing"

	"slate/internal/srctype"
	"slate/internal/target"
)

func TestRecordSizerNatural(t *testing.T) {
	// struct Mix { int a; float b[3]; } -> offsets 0, 4; size 16.
	rd := &srctype.RecordDecl{
		Name:    "Mix",
		Defined: true,
		Fields: []srctype.FieldDecl{
			{Name: "a", Type: srctype.Builtin(srctype.BuiltinInt)},
			{Name: "b", Type: srctype.ArrayOf(srctype.Builtin(srctype.BuiltinFloat), 3)},
		},
	}
	rs := newRecordSizer(target.Default())
	if err := rs.layoutRecord(rd); err != nil {
		t.Fatal(err)
	}
	if rd.Layout == nil {
		t.Fatal("layout not attached")
	}
	if rd.Layout.Size != 16 {
		t.Errorf("size = %d, want 16", rd.Layout.Size)
	}
	if rd.Layout.FieldOffsets[0] != 0 || rd.Layout.FieldOffsets[1] != 4 {
		t.Errorf("offsets = %v, want [0 4]", rd.Layout.FieldOffsets)
	}
}

func TestRecordSizerPaddingAndNesting(t *testing.T) {
	inner := &srctype.RecordDecl{
		Name:    "Inner",
		Defined: true,
		Fields: []srctype.FieldDecl{
			{Name: "c", Type: srctype.Builtin(srctype.BuiltinChar)},
			{Name: "d", Type: srctype.Builtin(srctype.BuiltinDouble)},
		},
	}
	outer := &srctype.RecordDecl{
		Name:    "Outer",
		Defined: true,
		Fields: []srctype.FieldDecl{
			{Name: "b", Type: srctype.Builtin(srctype.BuiltinChar)},
			{Name: "in", Type: srctype.Record(inner)},
		},
	}
	rs := newRecordSizer(target.Default())
	if err := rs.layoutRecord(outer); err != nil {
		t.Fatal(err)
	}
	// Inner: char at 0, double at 8, size 16, align 8.
	if inner.Layout == nil || inner.Layout.Size != 16 || inner.Layout.FieldOffsets[1] != 8 {
		t.Errorf("inner layout = %+v", inner.Layout)
	}
	// Outer: char at 0, Inner at 8, size 24.
	if outer.Layout.FieldOffsets[1] != 8 || outer.Layout.Size != 24 {
		t.Errorf("outer layout = %+v", outer.Layout)
	}
}

func TestRecordSizerPacked(t *testing.T) {
	rd := &srctype.RecordDecl{
		Name:    "P",
		Defined: true,
		Packed:  true,
		Fields: []srctype.FieldDecl{
			{Name: "c", Type: srctype.Builtin(srctype.BuiltinChar)},
			{Name: "i", Type: srctype.Builtin(srctype.BuiltinInt)},
		},
	}
	rs := newRecordSizer(target.Default())
	if err := rs.layoutRecord(rd); err != nil {
		t.Fatal(err)
	}
	if rd.Layout.FieldOffsets[1] != 1 || rd.Layout.Size != 5 {
		t.Errorf("packed layout = %+v", rd.Layout)
	}
}

func TestRecordSizerVectorSlot(t *testing.T) {
	rd := &srctype.RecordDecl{
		Name:    "V",
		Defined: true,
		Fields: []srctype.FieldDecl{
			{Name: "f", Type: srctype.Builtin(srctype.BuiltinFloat)},
			{Name: "v", Type: srctype.VectorOf(srctype.Builtin(srctype.BuiltinFloat), 3)},
		},
	}
	rs := newRecordSizer(target.Default())
	if err := rs.layoutRecord(rd); err != nil {
		t.Fatal(err)
	}
	// float3 occupies a 16-byte slot aligned to 16.
	if rd.Layout.FieldOffsets[1] != 16 || rd.Layout.Size != 32 {
		t.Errorf("layout = %+v", rd.Layout)
	}
}

func TestRecordSizerRuntimeMatrix(t *testing.T) {
	// A runtime matrix record sizes from its known shape even when the unit
	// only forward-declares it: 3x3 is 36 bytes aligned to 4.
	mat := &srctype.RecordDecl{Name: "sl_matrix3x3"}
	rd := &srctype.RecordDecl{
		Name:    "M",
		Defined: true,
		Fields: []srctype.FieldDecl{
			{Name: "c", Type: srctype.Builtin(srctype.BuiltinChar)},
			{Name: "m", Type: srctype.Record(mat)},
		},
	}
	rs := newRecordSizer(target.Default())
	if err := rs.layoutRecord(rd); err != nil {
		t.Fatal(err)
	}
	if rd.Layout.FieldOffsets[1] != 4 || rd.Layout.Size != 40 {
		t.Errorf("layout = %+v", rd.Layout)
	}
}

func TestRecordSizerErrors(t *testing.T) {
	rs := newRecordSizer(target.Default())

	voidField := &srctype.RecordDecl{
		Name:    "HasVoid",
		Defined: true,
		Fields:  []srctype.FieldDecl{{Name: "v", Type: srctype.Builtin(srctype.BuiltinVoid)}},
	}
	if err := rs.layoutRecord(voidField); err == nil {
		t.Error("void field must fail to size")
	}

	undefinedByValue := &srctype.RecordDecl{
		Name:    "UsesFwd",
		Defined: true,
		Fields: []srctype.FieldDecl{
			{Name: "f", Type: srctype.Record(&srctype.RecordDecl{Name: "Fwd"})},
		},
	}
	if err := rs.layoutRecord(undefinedByValue); err == nil {
		t.Error("undefined record by value must fail to size")
	}
}
