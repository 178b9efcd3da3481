package driver

import (
	"fmt"
	"strconv"
	"strings"

	"slate/internal/srctype"
)

// Manifest type expression grammar:
//
//	expr   := base suffix*
//	base   := builtin | builtin lanes | struct-name
//	suffix := "*" | "[" N "]"
//
// Lanes are a single trailing digit on a builtin name (float4, uint2).
// Suffixes bind left to right: "int*[4]" is an array of four pointers.
var builtinNames = map[string]srctype.BuiltinKind{
	"void":   srctype.BuiltinVoid,
	"bool":   srctype.BuiltinBool,
	"char":   srctype.BuiltinChar,
	"uchar":  srctype.BuiltinUChar,
	"short":  srctype.BuiltinShort,
	"ushort": srctype.BuiltinUShort,
	"int":    srctype.BuiltinInt,
	"uint":   srctype.BuiltinUInt,
	"long":   srctype.BuiltinLong,
	"ulong":  srctype.BuiltinULong,
	"float":  srctype.BuiltinFloat,
	"double": srctype.BuiltinDouble,
}

// ParseTypeExpr resolves a manifest type expression against the unit's
// struct declarations.
func ParseTypeExpr(expr string, records map[string]*srctype.RecordDecl) (*srctype.Type, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return nil, fmt.Errorf("empty type expression")
	}

	i := 0
	for i < len(s) && s[i] != '*' && s[i] != '[' {
		i++
	}
	baseName := strings.TrimSpace(s[:i])
	rest := s[i:]

	base, err := parseBase(baseName, records)
	if err != nil {
		return nil, err
	}
	return applySuffixes(base, rest, expr)
}

func parseBase(name string, records map[string]*srctype.RecordDecl) (*srctype.Type, error) {
	if name == "" {
		return nil, fmt.Errorf("type expression has no base type")
	}
	if bk, ok := builtinNames[name]; ok {
		return srctype.Builtin(bk), nil
	}
	// Trailing digit on a builtin name means a vector.
	last := name[len(name)-1]
	if last >= '2' && last <= '9' {
		if bk, ok := builtinNames[name[:len(name)-1]]; ok {
			return srctype.VectorOf(srctype.Builtin(bk), uint32(last-'0')), nil
		}
	}
	if rd, ok := records[name]; ok {
		return srctype.Record(rd), nil
	}
	return nil, fmt.Errorf("unknown type %q", name)
}

func applySuffixes(t *srctype.Type, rest, expr string) (*srctype.Type, error) {
	for len(rest) > 0 {
		switch rest[0] {
		case '*':
			t = srctype.PointerTo(t)
			rest = rest[1:]
		case '[':
			close := strings.IndexByte(rest, ']')
			if close < 0 {
				return nil, fmt.Errorf("missing ']' in type %q", expr)
			}
			n, err := strconv.ParseUint(strings.TrimSpace(rest[1:close]), 10, 32)
			if err != nil || n == 0 {
				return nil, fmt.Errorf("bad array length in type %q", expr)
			}
			t = srctype.ArrayOf(t, uint32(n))
			rest = rest[close+1:]
		default:
			return nil, fmt.Errorf("unexpected %q in type %q", rest[0], expr)
		}
	}
	return t, nil
}
