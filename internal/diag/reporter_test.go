package diag

import (
	"strings"
	"testing"

	"factorlint/internal/source"
)

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}

	b := ReportError(r, ScanUnterminatedFence, source.Span{Start: 1, End: 2}, "boom").
		WithNote(source.Span{Start: 5, End: 6}, "opened here").
		WithFix("close it", TextEdit{Span: source.Span{Start: 9, End: 9}, NewText: "```\n"})

	b.Emit()
	b.Emit() // повторный Emit игнорируется

	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != SevError || d.Code != ScanUnterminatedFence {
		t.Errorf("diagnostic = %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "opened here" {
		t.Errorf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Title != "close it" {
		t.Errorf("fixes = %+v", d.Fixes)
	}
}

func TestReportBuilderWithSeverity(t *testing.T) {
	bag := NewBag(10)
	ReportWarning(BagReporter{Bag: bag}, ScanTableCellCount, source.Span{}, "meh").
		WithSeverity(SevError).
		Emit()

	if bag.Items()[0].Severity != SevError {
		t.Error("Expected severity override to apply")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})

	span := source.Span{File: 0, Start: 3, End: 7}
	r.Report(ScanUnterminatedFence, SevError, span, "same", nil, nil)
	r.Report(ScanUnterminatedFence, SevError, span, "same", nil, nil)
	// Другое сообщение — не дубль.
	r.Report(ScanUnterminatedFence, SevError, span, "other", nil, nil)

	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("doc.md", []byte("line one\nline two\n"))

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     ScanTableCellCount,
			Message:  "row has 2 cells,\theader has 3",
			Primary:  source.Span{File: id, Start: 9, End: 13},
		},
		{
			Severity: SevError,
			Code:     ScanUnterminatedFence,
			Message:  "unterminated code fence",
			Primary:  source.Span{File: id, Start: 0, End: 4},
			Notes:    []Note{{Span: source.Span{File: id, Start: 9, End: 10}, Msg: "see here"}},
		},
	}

	got := FormatShortDiagnostics(diags, fs, false)
	want := "error MD1001 doc.md:1:1 unterminated code fence\n" +
		"warning MD1003 doc.md:2:1 row has 2 cells, header has 3"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	withNotes := FormatShortDiagnostics(diags, fs, true)
	if !strings.Contains(withNotes, "note MD1001 doc.md:2:1 see here") {
		t.Errorf("notes missing:\n%s", withNotes)
	}
}

func TestFormatShortDiagnosticsEmpty(t *testing.T) {
	fs := source.NewFileSet()
	if got := FormatShortDiagnostics(nil, fs, false); got != "" {
		t.Errorf("Expected empty output, got %q", got)
	}
}
