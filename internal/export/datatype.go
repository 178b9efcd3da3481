package export

import (
	"fmt"

	"slate/internal/rtspec"
	"slate/internal/srctype"
)

// builtinData maps the host scalar kinds the export layer supports to their
// runtime data types. Wide characters are absent: their size depends on the
// platform locale, so they are not exportable.
var builtinData = map[srctype.BuiltinKind]rtspec.DataType{
	srctype.BuiltinBool:   rtspec.DataTypeBoolean,
	srctype.BuiltinChar:   rtspec.DataTypeSigned8,
	srctype.BuiltinUChar:  rtspec.DataTypeUnsigned8,
	srctype.BuiltinShort:  rtspec.DataTypeSigned16,
	srctype.BuiltinUShort: rtspec.DataTypeUnsigned16,
	srctype.BuiltinInt:    rtspec.DataTypeSigned32,
	srctype.BuiltinUInt:   rtspec.DataTypeUnsigned32,
	srctype.BuiltinLong:   rtspec.DataTypeSigned64,
	srctype.BuiltinULong:  rtspec.DataTypeUnsigned64,
	srctype.BuiltinFloat:  rtspec.DataTypeFloat32,
	srctype.BuiltinDouble: rtspec.DataTypeFloat64,
}

// BuiltinDataType returns the runtime data type for a supported host scalar
// kind.
func BuiltinDataType(k srctype.BuiltinKind) (rtspec.DataType, bool) {
	dt, ok := builtinData[k]
	return dt, ok
}

var dataTypeBits = [rtspec.DataTypeMax]uint32{
	rtspec.DataTypeFloat32:      32,
	rtspec.DataTypeFloat64:      64,
	rtspec.DataTypeSigned8:      8,
	rtspec.DataTypeSigned16:     16,
	rtspec.DataTypeSigned32:     32,
	rtspec.DataTypeSigned64:     64,
	rtspec.DataTypeUnsigned8:    8,
	rtspec.DataTypeUnsigned16:   16,
	rtspec.DataTypeUnsigned32:   32,
	rtspec.DataTypeUnsigned64:   64,
	rtspec.DataTypeBoolean:      8,
	rtspec.DataTypeUnsigned565:  16,
	rtspec.DataTypeUnsigned5551: 16,
	rtspec.DataTypeUnsigned4444: 16,
	rtspec.DataTypeMatrix2x2:    4 * 32,
	rtspec.DataTypeMatrix3x3:    9 * 32,
	rtspec.DataTypeMatrix4x4:    16 * 32,
	rtspec.DataTypeBuffer:       32,
	rtspec.DataTypeImage:        32,
	rtspec.DataTypeSampler:      32,
	rtspec.DataTypeKernel:       32,
	rtspec.DataTypeEvent:        32,
}

// SizeInBits returns the storage width of a data type. An unknown or
// out-of-range data type here is a corrupted node, not a user error.
func SizeInBits(dt rtspec.DataType) uint32 {
	if !dt.Valid() {
		panic(fmt.Sprintf("export: size lookup for invalid data type %d", uint8(dt)))
	}
	return dataTypeBits[dt]
}

// runtimeRecordTypes maps recognized runtime record names (sl_matrix*,
// sl_buffer, ...) to their data types.
var runtimeRecordTypes = func() map[string]rtspec.DataType {
	m := make(map[string]rtspec.DataType)
	for dt := rtspec.FirstMatrixType; dt <= rtspec.LastObjectType; dt++ {
		m[dt.String()] = dt
	}
	return m
}()

// RuntimeRecordType returns the runtime data type a record name denotes, or
// DataTypeUnknown for ordinary user structs.
func RuntimeRecordType(name string) rtspec.DataType {
	if name == "" {
		return rtspec.DataTypeUnknown
	}
	return runtimeRecordTypes[name]
}

// runtimeTypeOf resolves a descriptor to a recognized runtime record kind.
func runtimeTypeOf(t *srctype.Type) rtspec.DataType {
	t = t.Canonical()
	if t == nil || t.Kind != srctype.KindRecord {
		return rtspec.DataTypeUnknown
	}
	return RuntimeRecordType(t.Record.DeclaredName())
}
