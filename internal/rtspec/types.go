package rtspec

import "fmt"

// Class tags the shape of a type record.
type Class uint8

const (
	ClassInvalid Class = iota
	ClassPrimitive
	ClassPointer
	ClassVector
	ClassMatrix
	ClassConstantArray
	ClassRecord
)

func (c Class) String() string {
	switch c {
	case ClassPrimitive:
		return "primitive"
	case ClassPointer:
		return "pointer"
	case ClassVector:
		return "vector"
	case ClassMatrix:
		return "matrix"
	case ClassConstantArray:
		return "constant array"
	case ClassRecord:
		return "record"
	default:
		return fmt.Sprintf("Class(%d)", c)
	}
}

// DataType enumerates the scalar data kinds of the Slate runtime, plus the
// matrix record kinds and the opaque runtime-object kinds. The ordering is
// part of the wire format; append only.
type DataType uint8

const (
	DataTypeUnknown DataType = iota
	DataTypeFloat32
	DataTypeFloat64
	DataTypeSigned8
	DataTypeSigned16
	DataTypeSigned32
	DataTypeSigned64
	DataTypeUnsigned8
	DataTypeUnsigned16
	DataTypeUnsigned32
	DataTypeUnsigned64
	DataTypeBoolean

	// Packed-pixel carriers, 16 bits each.
	DataTypeUnsigned565
	DataTypeUnsigned5551
	DataTypeUnsigned4444

	// Matrix record kinds.
	DataTypeMatrix2x2
	DataTypeMatrix3x3
	DataTypeMatrix4x4

	// Runtime-managed object handles.
	DataTypeBuffer
	DataTypeImage
	DataTypeSampler
	DataTypeKernel
	DataTypeEvent

	DataTypeMax
)

const (
	FirstMatrixType = DataTypeMatrix2x2
	LastMatrixType  = DataTypeMatrix4x4
	FirstObjectType = DataTypeBuffer
	LastObjectType  = DataTypeEvent
)

// IsMatrix reports whether dt is one of the matrix record kinds.
func (dt DataType) IsMatrix() bool {
	return dt >= FirstMatrixType && dt <= LastMatrixType
}

// IsObject reports whether dt is a runtime-managed object handle kind.
func (dt DataType) IsObject() bool {
	return dt >= FirstObjectType && dt <= LastObjectType
}

func (dt DataType) Valid() bool {
	return dt > DataTypeUnknown && dt < DataTypeMax
}

var dataTypeNames = [DataTypeMax]string{
	DataTypeUnknown:      "unknown",
	DataTypeFloat32:      "float",
	DataTypeFloat64:      "double",
	DataTypeSigned8:      "char",
	DataTypeSigned16:     "short",
	DataTypeSigned32:     "int",
	DataTypeSigned64:     "long",
	DataTypeUnsigned8:    "uchar",
	DataTypeUnsigned16:   "ushort",
	DataTypeUnsigned32:   "uint",
	DataTypeUnsigned64:   "ulong",
	DataTypeBoolean:      "bool",
	DataTypeUnsigned565:  "u565",
	DataTypeUnsigned5551: "u5551",
	DataTypeUnsigned4444: "u4444",
	DataTypeMatrix2x2:    "sl_matrix2x2",
	DataTypeMatrix3x3:    "sl_matrix3x3",
	DataTypeMatrix4x4:    "sl_matrix4x4",
	DataTypeBuffer:       "sl_buffer",
	DataTypeImage:        "sl_image",
	DataTypeSampler:      "sl_sampler",
	DataTypeKernel:       "sl_kernel",
	DataTypeEvent:        "sl_event",
}

func (dt DataType) String() string {
	if dt < DataTypeMax {
		return dataTypeNames[dt]
	}
	return fmt.Sprintf("DataType(%d)", uint8(dt))
}

// Role classifies how a value's bits are interpreted by the runtime:
// a plain user value, or one of the normalized pixel channel layouts.
type Role uint8

const (
	RoleUser Role = iota
	RolePixelL
	RolePixelA
	RolePixelLA
	RolePixelRGB
	RolePixelRGBA
	RoleMax
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RolePixelL:
		return "pixel_l"
	case RolePixelA:
		return "pixel_a"
	case RolePixelLA:
		return "pixel_la"
	case RolePixelRGB:
		return "pixel_rgb"
	case RolePixelRGBA:
		return "pixel_rgba"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// Field is one record member in declaration order.
type Field struct {
	Name string
	Type *Node
	Role Role
}

// Node is one type record. Child descriptors are referenced, not copied, so
// a graph keeps its sharing; records never contain pointers, which keeps
// every graph acyclic below a record node.
type Node struct {
	Class Class

	Data DataType // primitive, vector and matrix records

	Lanes uint32 // vector

	Pointee *Node // pointer

	Elem  *Node  // constant array
	Count uint32 // constant array

	Name   string // record
	Fields []Field
}
