package rtspec_test

import (
	"bytes"
	"testing"

	"slate/internal/rtspec"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	scalar := &rtspec.Node{Class: rtspec.ClassPrimitive, Data: rtspec.DataTypeFloat32}
	root := &rtspec.Node{
		Class: rtspec.ClassRecord,
		Name:  "Pair",
		Fields: []rtspec.Field{
			{Name: "a", Type: scalar, Role: rtspec.RoleUser},
			{Name: "b", Type: scalar, Role: rtspec.RolePixelRGBA},
		},
	}

	var buf bytes.Buffer
	if err := rtspec.Encode(&buf, root); err != nil {
		t.Fatal(err)
	}
	got, err := rtspec.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Class != rtspec.ClassRecord || got.Name != "Pair" || len(got.Fields) != 2 {
		t.Fatalf("decoded = %+v", got)
	}
	if got.Fields[0].Name != "a" || got.Fields[0].Role != rtspec.RoleUser {
		t.Errorf("field a = %+v", got.Fields[0])
	}
	if got.Fields[1].Role != rtspec.RolePixelRGBA {
		t.Errorf("field b role = %s", got.Fields[1].Role)
	}
	if got.Fields[0].Type.Data != rtspec.DataTypeFloat32 {
		t.Errorf("field type = %s", got.Fields[0].Type.Data)
	}
	// Two references to one pool entry decode to one node.
	if got.Fields[0].Type != got.Fields[1].Type {
		t.Error("sharing must survive the round trip")
	}
}

func TestEncodeDecodeNested(t *testing.T) {
	elem := &rtspec.Node{Class: rtspec.ClassVector, Data: rtspec.DataTypeSigned32, Lanes: 4}
	arr := &rtspec.Node{Class: rtspec.ClassConstantArray, Elem: elem, Count: 8}
	ptr := &rtspec.Node{
		Class:   rtspec.ClassPointer,
		Pointee: &rtspec.Node{Class: rtspec.ClassPrimitive, Data: rtspec.DataTypeFloat64},
	}
	root := &rtspec.Node{
		Class: rtspec.ClassRecord,
		Name:  "Outer",
		Fields: []rtspec.Field{
			{Name: "xs", Type: arr},
			{Name: "p", Type: ptr},
			{Name: "m", Type: &rtspec.Node{Class: rtspec.ClassMatrix, Data: rtspec.DataTypeMatrix2x2}},
		},
	}

	var buf bytes.Buffer
	if err := rtspec.Encode(&buf, root); err != nil {
		t.Fatal(err)
	}
	got, err := rtspec.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	xs := got.Fields[0].Type
	if xs.Class != rtspec.ClassConstantArray || xs.Count != 8 {
		t.Fatalf("array = %+v", xs)
	}
	if xs.Elem.Class != rtspec.ClassVector || xs.Elem.Lanes != 4 {
		t.Errorf("elem = %+v", xs.Elem)
	}
	p := got.Fields[1].Type
	if p.Class != rtspec.ClassPointer || p.Pointee.Data != rtspec.DataTypeFloat64 {
		t.Errorf("pointer = %+v", p)
	}
	if got.Fields[2].Type.Data != rtspec.DataTypeMatrix2x2 {
		t.Errorf("matrix = %+v", got.Fields[2].Type)
	}
}

func TestEncodeNilRoot(t *testing.T) {
	var buf bytes.Buffer
	if err := rtspec.Encode(&buf, nil); err == nil {
		t.Error("expected error for nil root")
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := rtspec.Decode(bytes.NewReader([]byte{0xc1, 0x00, 0x01})); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestDataTypePredicates(t *testing.T) {
	if !rtspec.DataTypeMatrix3x3.IsMatrix() || rtspec.DataTypeBuffer.IsMatrix() {
		t.Error("IsMatrix misclassifies")
	}
	if !rtspec.DataTypeSampler.IsObject() || rtspec.DataTypeFloat32.IsObject() {
		t.Error("IsObject misclassifies")
	}
	if rtspec.DataTypeUnknown.Valid() || rtspec.DataTypeMax.Valid() {
		t.Error("Valid must exclude sentinels")
	}
	if !rtspec.DataTypeEvent.Valid() {
		t.Error("Event is a valid data type")
	}
}
