package export

import (
	"fmt"

	"slate/internal/diag"
	"slate/internal/rtspec"
	"slate/internal/source"
	"slate/internal/srctype"
)

// rejection describes why a descriptor is not exportable. The decision is
// pure; turning a rejection into a diagnostic is a separate step, so the
// classification logic is testable without a sink.
type rejection struct {
	code diag.Code
	// msg is final when attributed is true; otherwise it is a template with
	// a single %s slot filled with the subject at report time.
	msg        string
	span       source.Span
	attributed bool
}

// reject builds a rejection, attributing it to the outermost aggregate when
// one is known. Otherwise attribution is deferred to the variable
// declaration at report time.
func reject(code diag.Code, template string, top *srctype.RecordDecl) *rejection {
	if top != nil {
		return &rejection{
			code:       code,
			msg:        fmt.Sprintf(template, top.Name),
			span:       top.Span,
			attributed: true,
		}
	}
	return &rejection{code: code, msg: template, span: source.NoSpan}
}

// rejectAt builds a rejection already bound to a subject and location.
func rejectAt(code diag.Code, msg string, span source.Span) *rejection {
	return &rejection{code: code, msg: msg, span: span, attributed: true}
}

// report emits the rejection through the sink. A nil sink suppresses the
// message (the caller still sees failure). A deferred rejection with no
// variable declaration to attach to means the caller skipped
// pre-validation, which is a contract violation.
func (r *rejection) report(sink diag.Reporter, vd *srctype.VarDecl) {
	if sink == nil {
		return
	}
	if r.attributed {
		diag.ReportError(sink, r.code, r.span, r.msg)
		return
	}
	if vd == nil {
		panic("export: declarations must be validated before exporting")
	}
	diag.ReportError(sink, r.code, vd.Span, fmt.Sprintf(r.msg, vd.Name))
}

// typeExportable decides whether t may cross the export boundary. visited
// holds the records whose fields are currently being traversed; reaching
// one of them again means the struct contains itself by value and is
// rejected rather than recursed into. top is the outermost named
// aggregate, used for error attribution.
//
// On success the canonical descriptor is returned.
func typeExportable(t *srctype.Type, visited map[*srctype.RecordDecl]struct{}, top *srctype.RecordDecl) (*srctype.Type, *rejection) {
	t = t.Canonical()
	if t == nil {
		return nil, reject(diag.ExportUnknownType, "unknown type cannot be exported: '%s'", top)
	}

	switch t.Kind {
	case srctype.KindBuiltin:
		if _, ok := builtinData[t.Builtin]; !ok {
			return nil, rejectAt(diag.ExportUnsupportedBuiltin,
				fmt.Sprintf("built-in type cannot be exported: '%s'", t.Builtin), source.NoSpan)
		}
		return t, nil

	case srctype.KindRecord:
		rd := t.Record
		if rd == nil {
			return nil, reject(diag.ExportUnknownType, "unknown type cannot be exported: '%s'", top)
		}
		// Recognized runtime record kinds need no field inspection.
		if RuntimeRecordType(rd.DeclaredName()) != rtspec.DataTypeUnknown {
			return t, nil
		}
		if _, ok := visited[rd]; ok {
			return nil, reject(diag.ExportRecursiveStruct,
				"structs that contain themselves by value cannot be exported: '%s'", top)
		}
		if rd.Union {
			return nil, rejectAt(diag.ExportUnion,
				fmt.Sprintf("unions cannot be exported: '%s'", rd.Name), rd.Span)
		}
		if !rd.Defined {
			return nil, rejectAt(diag.ExportUndefinedStruct,
				fmt.Sprintf("struct is not defined in this module: '%s'", rd.Name), rd.Span)
		}
		if top == nil {
			top = rd
		}
		if rd.DeclaredName() == "" {
			return nil, rejectAt(diag.ExportAnonymousStruct,
				"anonymous structures cannot be exported", rd.Span)
		}

		// Fast check.
		if rd.FlexibleArray {
			return nil, reject(diag.ExportFlexibleArray,
				"structs with flexible array members cannot be exported: '%s'", top)
		}
		if rd.HasObjectMember {
			return nil, reject(diag.ExportObjectMember,
				"structs containing object members cannot be exported: '%s'", top)
		}

		// Mark in-progress before walking fields; unmarked on the way out
		// so a struct repeated by value in two siblings is not mistaken
		// for a cycle.
		visited[rd] = struct{}{}

		for i := range rd.Fields {
			fd := &rd.Fields[i]
			if _, rej := typeExportable(fd.Type, visited, top); rej != nil {
				return nil, rej
			}
			// Bit fields are not supported yet.
			// TODO: allow bit fields of size 8, 16, 32.
			if fd.BitField {
				span := fd.Span
				if !span.Valid() {
					span = rd.Span
				}
				return nil, rejectAt(diag.ExportBitField,
					fmt.Sprintf("bit fields are not able to be exported: '%s.%s'", rd.Name, fd.Name), span)
			}
		}
		delete(visited, rd)
		return t, nil

	case srctype.KindPointer:
		if top != nil {
			return nil, reject(diag.ExportPointerInStruct,
				"structures containing pointers cannot be exported: '%s'", top)
		}
		pointee := t.Pointee.Canonical()
		if pointee == nil {
			return nil, reject(diag.ExportUnknownType, "unknown type cannot be exported: '%s'", top)
		}
		// Double or higher indirection is permitted here; creation decays
		// it to a plain integer pointee.
		if pointee.Kind == srctype.KindPointer {
			return t, nil
		}
		if pointee.Kind == srctype.KindConstantArray {
			return nil, reject(diag.ExportPointerToArray,
				"pointers to arrays cannot be exported: '%s'", top)
		}
		if _, rej := typeExportable(pointee, visited, top); rej != nil {
			return nil, rej
		}
		return t, nil

	case srctype.KindVector:
		if t.Lanes < 2 || t.Lanes > 4 {
			return nil, reject(diag.ExportVectorBadLanes,
				"vectors must have between 2 and 4 components: '%s'", top)
		}
		base := t.Base.Canonical()
		if base == nil || base.Kind != srctype.KindBuiltin {
			return nil, reject(diag.ExportVectorNonPrimitive,
				"vectors of non-primitive types cannot be exported: '%s'", top)
		}
		if _, rej := typeExportable(base, visited, top); rej != nil {
			return nil, rej
		}
		return t, nil

	case srctype.KindConstantArray:
		return constantArrayExportable(t, visited, top)

	default:
		return nil, reject(diag.ExportUnknownType, "unknown type cannot be exported: '%s'", top)
	}
}

func constantArrayExportable(t *srctype.Type, visited map[*srctype.RecordDecl]struct{}, top *srctype.RecordDecl) (*srctype.Type, *rejection) {
	elem := t.Elem.Canonical()
	if elem == nil {
		return nil, reject(diag.ExportUnknownType, "unknown type cannot be exported: '%s'", top)
	}
	if elem.Kind == srctype.KindConstantArray {
		return nil, reject(diag.ExportMultiDimArray,
			"multidimensional arrays cannot be exported: '%s'", top)
	}
	if elem.Kind == srctype.KindVector {
		base := elem.Base.Canonical()
		if base == nil || base.Kind != srctype.KindBuiltin {
			return nil, reject(diag.ExportVectorNonPrimitive,
				"vectors of non-primitive types cannot be exported: '%s'", top)
		}
		// Width-3 vectors are padded to a 4-lane slot; an array of them
		// only lays out correctly when its length is exactly 1.
		if elem.Lanes == 3 && t.Len != 1 {
			return nil, reject(diag.ExportVec3Array,
				"arrays of width 3 vector types cannot be exported: '%s'", top)
		}
	}
	if _, rej := typeExportable(elem, visited, top); rej != nil {
		return nil, rej
	}
	return t, nil
}

// TypeExportable normalizes t and decides whether it may be exported,
// emitting a diagnostic through sink when it may not. vd anchors the
// diagnostic when the failure has no aggregate of its own.
func TypeExportable(t *srctype.Type, vd *srctype.VarDecl, sink diag.Reporter) *srctype.Type {
	visited := make(map[*srctype.RecordDecl]struct{}, 8)
	canon, rej := typeExportable(t, visited, nil)
	if rej != nil {
		rej.report(sink, vd)
		return nil
	}
	return canon
}

// NormalizeType checks exportability and resolves the canonical export
// name in one step. Both the canonical descriptor and the name are needed
// before a registry lookup.
func NormalizeType(t *srctype.Type, vd *srctype.VarDecl, sink diag.Reporter) (*srctype.Type, string, bool) {
	canon, name, _, ok := normalizeType(t, vd, sink)
	return canon, name, ok
}

// normalizeType additionally surfaces the name resolver's cacheable flag,
// which the registry needs to decide whether the node may be shared.
func normalizeType(t *srctype.Type, vd *srctype.VarDecl, sink diag.Reporter) (*srctype.Type, string, bool, bool) {
	canon := TypeExportable(t, vd, sink)
	if canon == nil {
		return nil, "", false, false
	}
	name, cacheable, ok := NameOf(canon)
	if !ok || name == "" {
		if sink != nil {
			span := source.NoSpan
			if vd != nil {
				span = vd.Span
			}
			diag.ReportError(sink, diag.ExportAnonymousType, span, "anonymous types cannot be exported")
		}
		return nil, "", false, false
	}
	return canon, name, cacheable, true
}
