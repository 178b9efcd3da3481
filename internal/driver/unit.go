package driver

import (
	"fmt"
	"path/filepath"

	"slate/internal/diag"
	"slate/internal/export"
	"slate/internal/pragma"
	"slate/internal/source"
	"slate/internal/srctype"
	"slate/internal/target"
)

// ExportedVar pairs a declared variable name with its export node.
type ExportedVar struct {
	Name string
	Type *export.Type
}

// UnitResult is everything processing one compilation unit produced.
type UnitResult struct {
	Name     string
	Manifest string
	Target   target.Target
	FileSet  *source.FileSet
	Bag      *diag.Bag
	Registry *export.Registry
	Pragmas  *pragma.Recorder
	Vars     []ExportedVar
}

// ProcessUnit loads a unit manifest, reconstructs its declarations, runs
// the export layer over every declared variable, and scans the listed
// sources for pragmas. Malformed manifests fail hard; unexportable
// declarations surface as diagnostics in the result bag.
func ProcessUnit(path string, maxDiagnostics int) (*UnitResult, error) {
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	tgt, err := resolveTarget(m.Unit.Target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	fs := source.NewFileSet()
	manifestID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	// Manifest declarations have no finer location than the file itself.
	declSpan := source.Span{
		File: manifestID,
		End:  uint32(len(fs.Get(manifestID).Content)), // #nosec G115 -- bounded by file size
	}

	records, err := buildRecords(m, path, declSpan)
	if err != nil {
		return nil, err
	}

	// Layout failures are left as nil layouts: every record the checker
	// accepts is sizable, so an unsized record is already rejected before
	// the builder would need its layout.
	sizer := newRecordSizer(tgt)
	for _, s := range m.Structs {
		_ = sizer.layoutRecord(records[s.Name])
	}

	bag := diag.NewBag(maxDiagnostics)
	sink := diag.BagReporter{Bag: bag}

	rec := pragma.NewRecorder()
	dir := filepath.Dir(path)
	for _, src := range m.Unit.Sources {
		id, err := fs.Load(filepath.Join(dir, src))
		if err != nil {
			return nil, err
		}
		pragma.ScanFile(fs.Get(id), rec, sink)
	}

	reg := export.NewRegistry(tgt, sink)
	vars := make([]ExportedVar, 0, len(m.Exports))
	for _, e := range m.Exports {
		t, err := ParseTypeExpr(e.Type, records)
		if err != nil {
			return nil, fmt.Errorf("%s: export %q: %w", path, e.Name, err)
		}
		vd := &srctype.VarDecl{Name: e.Name, Span: declSpan, Type: t}
		et := reg.ExportVar(vd)
		if et == nil {
			continue
		}
		et.Keep()
		vars = append(vars, ExportedVar{Name: e.Name, Type: et})
	}

	return &UnitResult{
		Name:     m.Unit.Name,
		Manifest: path,
		Target:   tgt,
		FileSet:  fs,
		Bag:      bag,
		Registry: reg,
		Pragmas:  rec,
		Vars:     vars,
	}, nil
}

func resolveTarget(name string) (target.Target, error) {
	switch name {
	case "":
		return target.Default(), nil
	case target.X86_64LinuxGNU().Triple:
		return target.X86_64LinuxGNU(), nil
	case target.AArch64LinuxGNU().Triple:
		return target.AArch64LinuxGNU(), nil
	default:
		return target.Target{}, fmt.Errorf("unknown target %q", name)
	}
}

// buildRecords reconstructs the unit's record declarations in two passes so
// fields may refer to any struct in the manifest, including the one being
// declared.
func buildRecords(m *Manifest, path string, declSpan source.Span) (map[string]*srctype.RecordDecl, error) {
	records := make(map[string]*srctype.RecordDecl, len(m.Structs))
	for _, s := range m.Structs {
		records[s.Name] = &srctype.RecordDecl{
			Name:          s.Name,
			Span:          declSpan,
			Union:         s.Union,
			Defined:       !s.Opaque,
			TypedefName:   s.Typedef,
			Packed:        s.Packed,
			FlexibleArray: s.FlexArray,
		}
	}
	for _, s := range m.Structs {
		rd := records[s.Name]
		for _, f := range s.Fields {
			ft, err := ParseTypeExpr(f.Type, records)
			if err != nil {
				return nil, fmt.Errorf("%s: struct %q field %q: %w", path, s.Name, f.Name, err)
			}
			rd.Fields = append(rd.Fields, srctype.FieldDecl{
				Name:     f.Name,
				Type:     ft,
				BitField: f.BitField,
				Span:     declSpan,
			})
		}
	}
	// Object-member propagation runs after all fields exist; nesting order
	// in the manifest is not constrained.
	for _, s := range m.Structs {
		markObjectMembers(records[s.Name], make(map[*srctype.RecordDecl]bool))
	}
	return records, nil
}

func markObjectMembers(rd *srctype.RecordDecl, visiting map[*srctype.RecordDecl]bool) bool {
	if rd == nil || visiting[rd] {
		return false
	}
	if rd.HasObjectMember {
		return true
	}
	visiting[rd] = true
	for i := range rd.Fields {
		ft := rd.Fields[i].Type.Canonical()
		for ft != nil && ft.Kind == srctype.KindConstantArray {
			ft = ft.Elem.Canonical()
		}
		if ft == nil || ft.Kind != srctype.KindRecord || ft.Record == nil {
			continue
		}
		dt := export.RuntimeRecordType(ft.Record.DeclaredName())
		if dt.IsObject() || markObjectMembers(ft.Record, visiting) {
			rd.HasObjectMember = true
			return true
		}
	}
	return false
}
