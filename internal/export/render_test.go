package export_test

import (
	"testing"

	"slate/internal/export"
	"slate/internal/rtspec"
	"slate/internal/srctype"
	"slate/internal/target"
)

func TestTargetTypeScalars(t *testing.T) {
	reg, _ := newTestRegistry(t)
	tests := []struct {
		builtin srctype.BuiltinKind
		want    string
	}{
		{srctype.BuiltinBool, "i1"},
		{srctype.BuiltinChar, "i8"},
		{srctype.BuiltinUShort, "i16"},
		{srctype.BuiltinInt, "i32"},
		{srctype.BuiltinULong, "i64"},
		{srctype.BuiltinFloat, "f32"},
		{srctype.BuiltinDouble, "f64"},
	}
	for _, tt := range tests {
		et := exportVar(reg, "v", srctype.Builtin(tt.builtin))
		if et == nil {
			t.Fatalf("%s: export failed", tt.builtin)
		}
		tt2, err := et.TargetType()
		if err != nil {
			t.Fatalf("%s: %v", tt.builtin, err)
		}
		if tt2.String() != tt.want {
			t.Errorf("%s: target = %s, want %s", tt.builtin, tt2, tt.want)
		}
	}
}

func TestTargetTypeRecord(t *testing.T) {
	reg, bag := newTestRegistry(t)
	rd := laidOutRecord("Particle", 32, []int64{0, 16},
		field("pos", srctype.VectorOf(srctype.Builtin(srctype.BuiltinFloat), 3)),
		field("mass", srctype.Builtin(srctype.BuiltinFloat)))

	et := exportVar(reg, "p", srctype.Record(rd))
	if et == nil {
		t.Fatalf("export failed: %+v", bag.Items())
	}
	tt2, err := et.TargetType()
	if err != nil {
		t.Fatal(err)
	}
	want := "%Particle = { <4 x f32>, f32 }"
	if tt2.String() != want {
		t.Errorf("target = %s, want %s", tt2, want)
	}

	// Rendering is cached until Keep invalidates it.
	again, _ := et.TargetType()
	if again != tt2 {
		t.Error("target type must be cached")
	}
	et.Keep()
	rerendered, err := et.TargetType()
	if err != nil {
		t.Fatal(err)
	}
	if rerendered == tt2 {
		t.Error("Keep must invalidate the cached target type")
	}
	if rerendered.String() != want {
		t.Errorf("re-render = %s, want %s", rerendered, want)
	}
}

func TestTargetTypeObjectHandleShared(t *testing.T) {
	reg, _ := newTestRegistry(t)
	buf := exportVar(reg, "b", srctype.Record(&srctype.RecordDecl{Name: "sl_buffer"}))
	img := exportVar(reg, "i", srctype.Record(&srctype.RecordDecl{Name: "sl_image"}))
	if buf == nil || img == nil {
		t.Fatal("object export failed")
	}
	bt, err := buf.TargetType()
	if err != nil {
		t.Fatal(err)
	}
	it, err := img.TargetType()
	if err != nil {
		t.Fatal(err)
	}
	if bt != it {
		t.Error("every object kind must share one handle type")
	}
	if !bt.Packed || bt.Name != "sl_object" {
		t.Errorf("handle = %s", bt)
	}
	alloc, err := buf.TargetAllocSize()
	if err != nil {
		t.Fatal(err)
	}
	if alloc != int64(reg.Target().PtrSize) {
		t.Errorf("handle alloc = %d, want pointer size %d", alloc, reg.Target().PtrSize)
	}
}

func TestStoreVsAllocSize(t *testing.T) {
	reg, _ := newTestRegistry(t)

	b := exportVar(reg, "b", srctype.Builtin(srctype.BuiltinBool))
	store, err := b.TargetStoreSize()
	if err != nil {
		t.Fatal(err)
	}
	alloc, err := b.TargetAllocSize()
	if err != nil {
		t.Fatal(err)
	}
	if store != 1 || alloc != 1 {
		t.Errorf("bool store/alloc = %d/%d, want 1/1", store, alloc)
	}

	v3 := exportVar(reg, "v", srctype.VectorOf(srctype.Builtin(srctype.BuiltinFloat), 3))
	store, err = v3.TargetStoreSize()
	if err != nil {
		t.Fatal(err)
	}
	alloc, err = v3.TargetAllocSize()
	if err != nil {
		t.Fatal(err)
	}
	if store != 12 || alloc != 16 {
		t.Errorf("float3 store/alloc = %d/%d, want 12/16", store, alloc)
	}
}

func TestRecordAllocSizeFromOracle(t *testing.T) {
	reg, _ := newTestRegistry(t)
	// The oracle's total wins even when it disagrees with what the layout
	// engine would compute.
	rd := laidOutRecord("Padded", 64, []int64{0},
		field("x", srctype.Builtin(srctype.BuiltinInt)))
	et := exportVar(reg, "p", srctype.Record(rd))
	if et == nil {
		t.Fatal("export failed")
	}
	alloc, err := et.TargetAllocSize()
	if err != nil {
		t.Fatal(err)
	}
	if alloc != 64 {
		t.Errorf("alloc = %d, want oracle-reported 64", alloc)
	}
}

func TestSpecNode(t *testing.T) {
	reg, bag := newTestRegistry(t)
	rd := laidOutRecord("Pair", 8, []int64{0, 4},
		field("a", srctype.Builtin(srctype.BuiltinInt)),
		field("b", srctype.Builtin(srctype.BuiltinInt)))

	et := exportVar(reg, "p", srctype.Record(rd))
	if et == nil {
		t.Fatalf("export failed: %+v", bag.Items())
	}
	n, ok := et.SpecNode()
	if !ok {
		t.Fatal("spec render failed")
	}
	if n.Class != rtspec.ClassRecord || n.Name != "Pair" || len(n.Fields) != 2 {
		t.Fatalf("node = %+v", n)
	}
	// Both fields resolve to the one cached int node, so the spec graph
	// keeps that sharing.
	if n.Fields[0].Type != n.Fields[1].Type {
		t.Error("shared field type must render to one spec node")
	}
	if n.Fields[0].Role != rtspec.RoleUser {
		t.Errorf("role = %s", n.Fields[0].Role)
	}

	again, _ := et.SpecNode()
	if again != n {
		t.Error("spec node must be cached")
	}
}

func TestSpecNodeShapes(t *testing.T) {
	reg, _ := newTestRegistry(t)

	ptr := exportVar(reg, "p", srctype.PointerTo(srctype.Builtin(srctype.BuiltinFloat)))
	n, ok := ptr.SpecNode()
	if !ok || n.Class != rtspec.ClassPointer || n.Pointee.Data != rtspec.DataTypeFloat32 {
		t.Errorf("pointer node = %+v", n)
	}

	arr := exportVar(reg, "a", srctype.ArrayOf(srctype.Builtin(srctype.BuiltinChar), 5))
	n, ok = arr.SpecNode()
	if !ok || n.Class != rtspec.ClassConstantArray || n.Count != 5 {
		t.Errorf("array node = %+v", n)
	}

	vec := exportVar(reg, "v", srctype.VectorOf(srctype.Builtin(srctype.BuiltinUInt), 4))
	n, ok = vec.SpecNode()
	if !ok || n.Class != rtspec.ClassVector || n.Lanes != 4 || n.Data != rtspec.DataTypeUnsigned32 {
		t.Errorf("vector node = %+v", n)
	}

	mat := exportVar(reg, "m", srctype.Record(&srctype.RecordDecl{Name: "sl_matrix3x3"}))
	n, ok = mat.SpecNode()
	if !ok || n.Class != rtspec.ClassMatrix || n.Data != rtspec.DataTypeMatrix3x3 {
		t.Errorf("matrix node = %+v", n)
	}
}

func TestEqualsAcrossRegistries(t *testing.T) {
	regA := export.NewRegistry(target.Default(), nil)
	regB := export.NewRegistry(target.AArch64LinuxGNU(), nil)

	build := func(reg *export.Registry) *export.Type {
		rd := laidOutRecord("Pt", 8, []int64{0, 4},
			field("x", srctype.Builtin(srctype.BuiltinInt)),
			field("y", srctype.Builtin(srctype.BuiltinFloat)))
		return reg.ExportType(srctype.Record(rd))
	}
	a, b := build(regA), build(regB)
	if a == nil || b == nil {
		t.Fatal("export failed")
	}
	if a == b {
		t.Fatal("registries must not share nodes")
	}
	if !a.Equals(b) {
		t.Error("structurally equal records must compare equal across registries")
	}

	other := regB.ExportType(srctype.Builtin(srctype.BuiltinInt))
	if a.Equals(other) {
		t.Error("record must not equal a primitive")
	}
}
