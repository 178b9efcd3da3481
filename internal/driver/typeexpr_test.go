package driver

import (
	"testing"

	"slate/internal/srctype"
)

func TestParseTypeExpr(t *testing.T) {
	point := &srctype.RecordDecl{Name: "Point", Defined: true}
	records := map[string]*srctype.RecordDecl{"Point": point}

	tests := []struct {
		expr  string
		check func(*srctype.Type) bool
	}{
		{"int", func(ty *srctype.Type) bool {
			return ty.Kind == srctype.KindBuiltin && ty.Builtin == srctype.BuiltinInt
		}},
		{"ulong", func(ty *srctype.Type) bool {
			return ty.Kind == srctype.KindBuiltin && ty.Builtin == srctype.BuiltinULong
		}},
		{"float4", func(ty *srctype.Type) bool {
			return ty.Kind == srctype.KindVector && ty.Lanes == 4 &&
				ty.Base.Builtin == srctype.BuiltinFloat
		}},
		{"Point", func(ty *srctype.Type) bool {
			return ty.Kind == srctype.KindRecord && ty.Record == point
		}},
		{"int*", func(ty *srctype.Type) bool {
			return ty.Kind == srctype.KindPointer && ty.Pointee.Builtin == srctype.BuiltinInt
		}},
		{"Point *", func(ty *srctype.Type) bool {
			return ty.Kind == srctype.KindPointer && ty.Pointee.Record == point
		}},
		{"float[8]", func(ty *srctype.Type) bool {
			return ty.Kind == srctype.KindConstantArray && ty.Len == 8 &&
				ty.Elem.Builtin == srctype.BuiltinFloat
		}},
		{"int[2][3]", func(ty *srctype.Type) bool {
			return ty.Kind == srctype.KindConstantArray && ty.Len == 3 &&
				ty.Elem.Kind == srctype.KindConstantArray && ty.Elem.Len == 2
		}},
		{"char**", func(ty *srctype.Type) bool {
			return ty.Kind == srctype.KindPointer && ty.Pointee.Kind == srctype.KindPointer
		}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ty, err := ParseTypeExpr(tt.expr, records)
			if err != nil {
				t.Fatal(err)
			}
			if !tt.check(ty) {
				t.Errorf("unexpected shape for %q: %+v", tt.expr, ty)
			}
		})
	}
}

func TestParseTypeExprErrors(t *testing.T) {
	records := map[string]*srctype.RecordDecl{}
	for _, expr := range []string{"", "Unknown", "int[", "int[0]", "int[x]", "float[4]extra", "4int"} {
		if _, err := ParseTypeExpr(expr, records); err == nil {
			t.Errorf("expected error for %q", expr)
		}
	}
}
