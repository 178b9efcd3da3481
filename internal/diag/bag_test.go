package diag_test

import (
	"testing"

	"slate/internal/diag"
	"slate/internal/source"
)

func TestBagCap(t *testing.T) {
	bag := diag.NewBag(2)
	d := diag.NewError(diag.ExportUnion, source.NoSpan, "x")
	if !bag.Add(d) || !bag.Add(d) {
		t.Fatal("first two adds must succeed")
	}
	if bag.Add(d) {
		t.Error("add past the cap must report drop")
	}
	if bag.Len() != 2 {
		t.Errorf("len = %d, want 2", bag.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	bag := diag.NewBag(8)
	bag.Add(diag.New(diag.SevInfo, diag.ExportInfo, source.NoSpan, "i"))
	if bag.HasErrors() || bag.HasWarnings() {
		t.Error("info only")
	}
	bag.Add(diag.New(diag.SevWarning, diag.ExportInfo, source.NoSpan, "w"))
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Error("warning present")
	}
	bag.Add(diag.NewError(diag.ExportUnion, source.NoSpan, "e"))
	if !bag.HasErrors() {
		t.Error("error present")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := diag.NewBag(8)
	sp := func(start uint32) source.Span { return source.Span{File: 0, Start: start, End: start + 1} }
	bag.Add(diag.NewError(diag.ExportUnion, sp(9), "later"))
	bag.Add(diag.NewError(diag.ExportUnion, sp(2), "earlier"))
	bag.Add(diag.NewError(diag.ExportUnion, sp(2), "earlier"))

	bag.Sort()
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("len after dedup = %d, want 2", bag.Len())
	}
	if bag.Items()[0].Message != "earlier" {
		t.Errorf("sort order: %+v", bag.Items())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := diag.NewBag(1)
	a.Add(diag.NewError(diag.ExportUnion, source.NoSpan, "a"))
	b := diag.NewBag(2)
	b.Add(diag.NewError(diag.ExportUnion, source.NoSpan, "b1"))
	b.Add(diag.NewError(diag.ExportUnion, source.NoSpan, "b2"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Errorf("len = %d, want 3", a.Len())
	}
}

func TestBagReporter(t *testing.T) {
	bag := diag.NewBag(4)
	r := diag.BagReporter{Bag: bag}
	r.Report(diag.ExportBitField, diag.SevError, source.NoSpan, "msg", []diag.Note{{Msg: "note"}})
	if bag.Len() != 1 {
		t.Fatalf("len = %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.ExportBitField || len(d.Notes) != 1 {
		t.Errorf("diagnostic = %+v", d)
	}

	// Nil-tolerant shortcut.
	diag.ReportError(nil, diag.ExportUnion, source.NoSpan, "dropped")
	diag.ReportError(diag.NopReporter{}, diag.ExportUnion, source.NoSpan, "dropped")
}

func TestCodeString(t *testing.T) {
	if got := diag.ExportBitField.String(); got != "SL4005" {
		t.Errorf("code = %q, want SL4005", got)
	}
	if got := diag.PragmaMalformed.String(); got != "SL1501" {
		t.Errorf("code = %q, want SL1501", got)
	}
}
