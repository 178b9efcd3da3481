package export

import (
	"slate/internal/rtspec"
	"slate/internal/srctype"
)

// NeedsZeroInit reports whether a (possibly array-nested) struct contains,
// anywhere in its field closure, a runtime-object handle or a matrix type.
// Both carry hidden runtime invariants that must start zeroed. Arrays are
// unwrapped transparently; nested plain structs are scanned recursively,
// even ones that could not themselves be exported.
func NeedsZeroInit(t *srctype.Type) bool {
	t = unwrapArrays(t)
	if t == nil || t.Kind != srctype.KindRecord || t.Record == nil {
		return false
	}

	seen := false
	for i := range t.Record.Fields {
		ft := unwrapArrays(t.Record.Fields[i].Type)
		if ft == nil {
			continue
		}
		dt := runtimeTypeOf(ft)
		switch {
		case dt.IsObject() || dt.IsMatrix():
			seen = true
		case ft.Kind == srctype.KindRecord && dt == rtspec.DataTypeUnknown:
			seen = seen || NeedsZeroInit(ft)
		}
	}
	return seen
}

func unwrapArrays(t *srctype.Type) *srctype.Type {
	t = t.Canonical()
	for t != nil && t.Kind == srctype.KindConstantArray {
		t = t.Elem.Canonical()
	}
	return t
}
