package export

import (
	"strconv"

	"slate/internal/srctype"
)

// PlaceholderPrefix marks names of nodes the registry must never cache.
// Deriving a meaningful name for a constant array would be complicated, so
// all constant arrays share one reserved placeholder and are keyed
// structurally instead: every creation request yields a fresh node.
const PlaceholderPrefix = "<"

// ConstantArrayName is the reserved placeholder shared by all constant
// array nodes.
const ConstantArrayName = PlaceholderPrefix + "ConstantArray>"

// NameOf derives the canonical export name of a checked descriptor. The
// cacheable result tells the registry whether nodes under this name may be
// shared; it is false exactly for the constant-array placeholder.
func NameOf(t *srctype.Type) (name string, cacheable bool, ok bool) {
	t = t.Canonical()
	if t == nil {
		return "", false, false
	}
	switch t.Kind {
	case srctype.KindBuiltin:
		dt, ok := BuiltinDataType(t.Builtin)
		if !ok {
			return "", false, false
		}
		return dt.String(), true, true

	case srctype.KindRecord:
		n := t.Record.DeclaredName()
		if n == "" {
			return "", false, false
		}
		return n, true, true

	case srctype.KindPointer:
		// "*" plus the pointee's canonical name; the pointee must itself
		// normalize, which may fail and propagates failure.
		_, pointeeName, ok := NormalizeType(t.Pointee, nil, nil)
		if !ok {
			return "", false, false
		}
		return "*" + pointeeName, true, true

	case srctype.KindVector:
		n, ok := VectorTypeName(t)
		return n, true, ok

	case srctype.KindConstantArray:
		return ConstantArrayName, false, true

	default:
		return "", false, false
	}
}

// VectorTypeName derives the lane-suffixed name of a vector descriptor,
// e.g. "float3". Non-builtin bases and lane counts outside 2..4 fail.
func VectorTypeName(t *srctype.Type) (string, bool) {
	t = t.Canonical()
	if t == nil || t.Kind != srctype.KindVector {
		return "", false
	}
	if t.Lanes < 2 || t.Lanes > 4 {
		return "", false
	}
	base := t.Base.Canonical()
	if base == nil || base.Kind != srctype.KindBuiltin {
		return "", false
	}
	dt, ok := BuiltinDataType(base.Builtin)
	if !ok {
		return "", false
	}
	return dt.String() + strconv.FormatUint(uint64(t.Lanes), 10), true
}
