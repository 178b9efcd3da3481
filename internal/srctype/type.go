package srctype

import (
	"fmt"

	"slate/internal/source"
)

// Kind enumerates the descriptor classes the export layer distinguishes.
type Kind uint8

const (
	KindOther Kind = iota
	KindBuiltin
	KindRecord
	KindPointer
	KindVector
	KindConstantArray
	// KindAlias is typedef sugar; Canonical resolves through it.
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindRecord:
		return "record"
	case KindPointer:
		return "pointer"
	case KindVector:
		return "vector"
	case KindConstantArray:
		return "constant array"
	case KindAlias:
		return "alias"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// BuiltinKind enumerates host scalar kinds, including ones the export layer
// refuses (wide characters have platform-dependent size).
type BuiltinKind uint8

const (
	BuiltinVoid BuiltinKind = iota
	BuiltinBool
	BuiltinChar
	BuiltinUChar
	BuiltinShort
	BuiltinUShort
	BuiltinInt
	BuiltinUInt
	BuiltinLong
	BuiltinULong
	BuiltinFloat
	BuiltinDouble
	BuiltinWideChar
)

func (b BuiltinKind) String() string {
	switch b {
	case BuiltinVoid:
		return "void"
	case BuiltinBool:
		return "bool"
	case BuiltinChar:
		return "char"
	case BuiltinUChar:
		return "uchar"
	case BuiltinShort:
		return "short"
	case BuiltinUShort:
		return "ushort"
	case BuiltinInt:
		return "int"
	case BuiltinUInt:
		return "uint"
	case BuiltinLong:
		return "long"
	case BuiltinULong:
		return "ulong"
	case BuiltinFloat:
		return "float"
	case BuiltinDouble:
		return "double"
	case BuiltinWideChar:
		return "wchar"
	default:
		return fmt.Sprintf("BuiltinKind(%d)", b)
	}
}

// Type is one node of the host type graph. Only the fields for its Kind are
// meaningful; the graph may be cyclic through pointer fields of records.
type Type struct {
	Kind Kind

	Builtin BuiltinKind // KindBuiltin

	Pointee *Type // KindPointer

	Elem *Type  // KindConstantArray
	Len  uint32 // KindConstantArray, > 0

	Base  *Type  // KindVector; must be a builtin scalar
	Lanes uint32 // KindVector

	Record *RecordDecl // KindRecord

	Target    *Type  // KindAlias
	AliasName string // KindAlias
}

// Canonical resolves alias sugar and returns the underlying descriptor.
// A nil receiver or a broken alias chain yields nil.
func (t *Type) Canonical() *Type {
	seen := make(map[*Type]struct{}, 4)
	for t != nil && t.Kind == KindAlias {
		if _, ok := seen[t]; ok {
			return nil
		}
		seen[t] = struct{}{}
		t = t.Target
	}
	return t
}

// FieldDecl is one field of a record declaration, in declaration order.
type FieldDecl struct {
	Name     string
	Type     *Type
	BitField bool
	Span     source.Span
}

// RecordLayout is the layout oracle for one record, supplied by the host
// type system: total allocation size and per-field byte offsets, index
// aligned with RecordDecl.Fields.
type RecordLayout struct {
	Size         int64
	FieldOffsets []int64
}

// RecordDecl describes a struct or union declaration.
type RecordDecl struct {
	Name    string
	Span    source.Span
	Union   bool
	Defined bool

	// Name fallbacks for records declared without a tag name.
	TypedefName string
	RedeclNames []string

	Fields []FieldDecl
	Packed bool

	// FlexibleArray marks a trailing flexible array member.
	FlexibleArray bool
	// HasObjectMember is precomputed by the host: a field of runtime-object
	// type somewhere in the nesting. Such records fail the fast check.
	HasObjectMember bool

	// Layout must be present for any defined record that reaches the record
	// builder; its absence there is a host contract violation.
	Layout *RecordLayout
}

// DeclaredName returns the record's name, falling back to a typedef alias
// and then to any redeclaration name, the way the host resolves anonymous
// tags. Empty when every fallback is exhausted.
func (r *RecordDecl) DeclaredName() string {
	if r == nil {
		return ""
	}
	if r.Name != "" {
		return r.Name
	}
	if r.TypedefName != "" {
		return r.TypedefName
	}
	for _, n := range r.RedeclNames {
		if n != "" {
			return n
		}
	}
	return ""
}

// VarDecl is an exported variable declaration from the host front-end.
type VarDecl struct {
	Name string
	Span source.Span
	Type *Type
}
