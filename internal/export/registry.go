package export

import (
	"fmt"

	"slate/internal/diag"
	"slate/internal/rtspec"
	"slate/internal/source"
	"slate/internal/srctype"
	"slate/internal/target"
)

// Registry is the per-compilation-unit table of export types, keyed by
// canonical name. It is the single source of truth for identity: asking
// twice for the same cacheable name yields the same node. Not safe for
// concurrent use; parallel units each own a registry.
type Registry struct {
	tgt    target.Target
	engine *target.Engine
	diags  diag.Reporter

	byName map[string]*Type
	order  []*Type // insertion order, for deterministic emission

	// objectHandle is the one machine type shared by every runtime-object
	// kind: an opaque pointer-width slot with a stable ABI.
	objectHandle *target.Type
}

// NewRegistry creates an empty registry for one compilation unit.
// sink may be nil; failures then stay silent but still return nil results.
func NewRegistry(tgt target.Target, sink diag.Reporter) *Registry {
	return &Registry{
		tgt:    tgt,
		engine: target.NewEngine(tgt),
		diags:  sink,
		byName: make(map[string]*Type, 32),
	}
}

func (reg *Registry) Target() target.Target { return reg.tgt }

// Engine returns the layout engine all nodes of this registry render with.
func (reg *Registry) Engine() *target.Engine { return reg.engine }

func (reg *Registry) Diags() diag.Reporter { return reg.diags }

// FindByName returns the node registered under a canonical name.
func (reg *Registry) FindByName(name string) (*Type, bool) {
	et, ok := reg.byName[name]
	return et, ok
}

// All returns every cached node in insertion order.
func (reg *Registry) All() []*Type {
	return reg.order
}

// Live returns the nodes marked by Keep, in insertion order.
func (reg *Registry) Live() []*Type {
	var out []*Type
	for _, et := range reg.order {
		if et.live {
			out = append(out, et)
		}
	}
	return out
}

// ExportVar checks and exports the type of a variable declaration,
// reporting failures against the declaration.
func (reg *Registry) ExportVar(vd *srctype.VarDecl) *Type {
	if vd == nil {
		return nil
	}
	canon, name, cacheable, ok := normalizeType(vd.Type, vd, reg.diags)
	if !ok {
		return nil
	}
	return reg.exportNamed(canon, name, cacheable)
}

// ExportType checks and exports a bare descriptor. Failures are attributed
// to the type's own declarations only; descriptors reached from a variable
// should go through ExportVar.
func (reg *Registry) ExportType(t *srctype.Type) *Type {
	canon, name, cacheable, ok := normalizeType(t, nil, nil)
	if !ok {
		return nil
	}
	return reg.exportNamed(canon, name, cacheable)
}

// ExportPrimitive creates (or returns) a primitive node for a data type
// directly, carrying an explicit role and normalized flag. The packed-pixel
// kinds have no builtin descriptor spelling, so callers that need one of
// them come through here instead of ExportType.
func (reg *Registry) ExportPrimitive(dt rtspec.DataType, role rtspec.Role, normalized bool) *Type {
	if !dt.Valid() {
		return nil
	}
	name := dt.String()
	if et, ok := reg.byName[name]; ok {
		return et
	}
	et := reg.newPrimitiveType(dt, name, role, normalized)
	reg.insert(et, true)
	return et
}

// exportNamed is the lookup-or-create step: dispatches on the canonical
// descriptor's kind to the variant constructor and caches the result when
// the name permits caching.
func (reg *Registry) exportNamed(t *srctype.Type, name string, cacheable bool) *Type {
	if cacheable {
		if et, ok := reg.byName[name]; ok {
			return et
		}
	}

	var et *Type
	switch t.Kind {
	case srctype.KindRecord:
		dt := RuntimeRecordType(name)
		switch {
		case dt == rtspec.DataTypeUnknown:
			et = reg.newRecordType(t, name, false)
		case dt.IsMatrix():
			et = reg.newMatrixType(t, name, matrixDim(dt))
		default:
			// Remaining runtime record kinds are opaque object handles,
			// modeled as primitives.
			et = reg.newPrimitiveType(dt, name, rtspec.RoleUser, false)
		}
	case srctype.KindBuiltin:
		et = reg.newPrimitiveType(reg.dataTypeOf(t), name, rtspec.RoleUser, false)
	case srctype.KindPointer:
		et = reg.newPointerType(t, name)
	case srctype.KindVector:
		et = reg.newVectorType(t, name)
	case srctype.KindConstantArray:
		et = reg.newConstantArrayType(t)
	default:
		diag.ReportError(reg.diags, diag.ExportUnknownType, source.NoSpan,
			fmt.Sprintf("unknown type cannot be exported: '%s'", t.Kind))
	}

	// Only fully built nodes reach the table; a failed construction leaves
	// no partial entry behind.
	reg.insert(et, cacheable)
	return et
}

func (reg *Registry) insert(et *Type, cacheable bool) {
	if et == nil || !cacheable {
		return
	}
	if _, exists := reg.byName[et.name]; exists {
		return
	}
	reg.byName[et.name] = et
	reg.order = append(reg.order, et)
}

// dataTypeOf resolves a canonical descriptor to its runtime data type,
// diagnosing unsupported scalars at creation time.
func (reg *Registry) dataTypeOf(t *srctype.Type) rtspec.DataType {
	t = t.Canonical()
	if t == nil {
		return rtspec.DataTypeUnknown
	}
	switch t.Kind {
	case srctype.KindBuiltin:
		dt, ok := BuiltinDataType(t.Builtin)
		if !ok {
			diag.ReportError(reg.diags, diag.ExportUnsupportedBuiltin, source.NoSpan,
				fmt.Sprintf("built-in type cannot be exported: '%s'", t.Builtin))
			return rtspec.DataTypeUnknown
		}
		return dt
	case srctype.KindRecord:
		// Must be a recognized runtime record kind.
		return runtimeTypeOf(t)
	default:
		diag.ReportError(reg.diags, diag.ExportUnsupportedPrimitive, source.NoSpan,
			fmt.Sprintf("primitive type cannot be exported: '%s'", t.Kind))
		return rtspec.DataTypeUnknown
	}
}

func matrixDim(dt rtspec.DataType) uint32 {
	switch dt {
	case rtspec.DataTypeMatrix2x2:
		return 2
	case rtspec.DataTypeMatrix3x3:
		return 3
	case rtspec.DataTypeMatrix4x4:
		return 4
	default:
		panic(fmt.Sprintf("export: %s is not a matrix kind", dt))
	}
}
