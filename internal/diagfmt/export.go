package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"slate/internal/export"
)

// ExportEntry pairs a variable name with its export node for dumping.
type ExportEntry struct {
	Name string
	Type *export.Type
}

var exportNameColor = color.New(color.FgGreen, color.Bold)

// DumpExportsPretty writes a human-readable description of every exported
// variable: the type shape, its rendered machine type, and its sizes.
func DumpExportsPretty(w io.Writer, entries []ExportEntry, colorize bool) error {
	for _, e := range entries {
		name := e.Name
		if colorize {
			name = exportNameColor.Sprint(name)
		}
		fmt.Fprintf(w, "%s: %s\n", name, describeType(e.Type))

		tt, err := e.Type.TargetType()
		if err != nil {
			return fmt.Errorf("render %q: %w", e.Name, err)
		}
		alloc, err := e.Type.TargetAllocSize()
		if err != nil {
			return err
		}
		store, err := e.Type.TargetStoreSize()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  target: %s\n", tt)
		fmt.Fprintf(w, "  alloc:  %d bytes, store: %d bytes\n", alloc, store)
		if e.Type.Class() == export.ClassRecord {
			for _, f := range e.Type.Fields() {
				fmt.Fprintf(w, "  +%-4d %s: %s\n", f.Offset, f.Name, describeType(f.Type))
			}
		}
	}
	return nil
}

func describeType(t *export.Type) string {
	if t == nil {
		return "<nil>"
	}
	switch t.Class() {
	case export.ClassPrimitive:
		if t.IsObject() {
			return fmt.Sprintf("object handle %s", t.DataType())
		}
		return fmt.Sprintf("primitive %s", t.DataType())
	case export.ClassPointer:
		return fmt.Sprintf("pointer to %s", describeType(t.Pointee()))
	case export.ClassVector:
		return fmt.Sprintf("vector %s x%d", t.DataType(), t.Lanes())
	case export.ClassMatrix:
		return fmt.Sprintf("matrix %dx%d", t.Dim(), t.Dim())
	case export.ClassConstantArray:
		return fmt.Sprintf("array [%d] of %s", t.Len(), describeType(t.Element()))
	case export.ClassRecord:
		return fmt.Sprintf("record %s (%d fields)", t.Name(), len(t.Fields()))
	default:
		return t.Class().String()
	}
}

// ExportJSON is one exported variable in JSON form.
type ExportJSON struct {
	Name      string      `json:"name"`
	Class     string      `json:"class"`
	Type      string      `json:"type"`
	Target    string      `json:"target"`
	AllocSize int64       `json:"alloc_size"`
	StoreSize int64       `json:"store_size"`
	Fields    []FieldJSON `json:"fields,omitempty"`
}

// FieldJSON is one record field in JSON form.
type FieldJSON struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Offset int64  `json:"offset"`
}

// DumpExportsJSON writes the export dump as indented JSON.
func DumpExportsJSON(w io.Writer, entries []ExportEntry) error {
	out := make([]ExportJSON, 0, len(entries))
	for _, e := range entries {
		tt, err := e.Type.TargetType()
		if err != nil {
			return fmt.Errorf("render %q: %w", e.Name, err)
		}
		alloc, err := e.Type.TargetAllocSize()
		if err != nil {
			return err
		}
		store, err := e.Type.TargetStoreSize()
		if err != nil {
			return err
		}
		ej := ExportJSON{
			Name:      e.Name,
			Class:     e.Type.Class().String(),
			Type:      describeType(e.Type),
			Target:    tt.String(),
			AllocSize: alloc,
			StoreSize: store,
		}
		for _, f := range e.Type.Fields() {
			ej.Fields = append(ej.Fields, FieldJSON{
				Name:   f.Name,
				Type:   describeType(f.Type),
				Offset: f.Offset,
			})
		}
		out = append(out, ej)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
