package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"slate/internal/diag"
	"slate/internal/diagfmt"
	"slate/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("unit.toml", []byte("line one\nline two\n"))
	sp := source.Span{File: id, Start: 9, End: 13}

	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.ExportPointerInStruct, sp,
		"structures containing pointers cannot be exported: 'Holder'").
		WithNote(sp, "field 'p' declared here"))
	bag.Add(diag.New(diag.SevWarning, diag.PragmaMalformed, sp, "unexpected token after pragma 'version'"))
	return bag, fs
}

func TestPretty(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})

	out := buf.String()
	if !strings.Contains(out, "unit.toml:2:1: error[SL4006]: structures containing pointers cannot be exported: 'Holder'") {
		t.Errorf("missing error line in:\n%s", out)
	}
	if !strings.Contains(out, "note: field 'p' declared here") {
		t.Errorf("missing note in:\n%s", out)
	}
	if !strings.Contains(out, "warning[SL1501]") {
		t.Errorf("missing warning in:\n%s", out)
	}
}

func TestPrettyCapped(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Max: 1})

	out := buf.String()
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected one diagnostic plus the overflow line:\n%s", out)
	}
	if !strings.Contains(out, "... and 1 more") {
		t.Errorf("missing overflow marker in:\n%s", out)
	}
}

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, fs := sampleBag(t)
	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
	})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Severity != "error" || d.Code != "SL4006" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.File != "unit.toml" || d.Location.Line != 2 || d.Location.Col != 1 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "field 'p' declared here" {
		t.Errorf("notes = %+v", d.Notes)
	}

	capped := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 1})
	if capped.Count != 1 {
		t.Errorf("capped count = %d", capped.Count)
	}
	if capped.Diagnostics[0].Location.Line != 0 {
		t.Error("positions included without IncludePositions")
	}
}

func TestJSONEncodes(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["count"].(float64) != 2 {
		t.Errorf("count = %v", decoded["count"])
	}
}
