package srctype_test

import (
	"testing"

	"slate/internal/srctype"
)

func TestCanonicalResolvesAliases(t *testing.T) {
	base := srctype.Builtin(srctype.BuiltinInt)
	twice := srctype.Alias("outer", srctype.Alias("inner", base))
	if got := twice.Canonical(); got != base {
		t.Errorf("canonical = %+v, want base descriptor", got)
	}
	if base.Canonical() != base {
		t.Error("non-alias canonicalizes to itself")
	}
}

func TestCanonicalBrokenChain(t *testing.T) {
	var nilType *srctype.Type
	if nilType.Canonical() != nil {
		t.Error("nil receiver yields nil")
	}

	loop := &srctype.Type{Kind: srctype.KindAlias, AliasName: "a"}
	loop.Target = loop
	if loop.Canonical() != nil {
		t.Error("alias cycle yields nil")
	}
}

func TestDeclaredNameFallbacks(t *testing.T) {
	tests := []struct {
		name string
		rd   *srctype.RecordDecl
		want string
	}{
		{"tag name", &srctype.RecordDecl{Name: "Tagged", TypedefName: "Alias"}, "Tagged"},
		{"typedef fallback", &srctype.RecordDecl{TypedefName: "Alias"}, "Alias"},
		{"redecl fallback", &srctype.RecordDecl{RedeclNames: []string{"", "Second"}}, "Second"},
		{"exhausted", &srctype.RecordDecl{RedeclNames: []string{""}}, ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rd.DeclaredName(); got != tt.want {
				t.Errorf("DeclaredName = %q, want %q", got, tt.want)
			}
		})
	}
}
