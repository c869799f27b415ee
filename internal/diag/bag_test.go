package diag

import (
	"testing"

	"factorlint/internal/source"
)

func TestBagCap(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(Diagnostic{Code: ScanUnterminatedFence}) {
		t.Error("Expected first Add to succeed")
	}
	if !bag.Add(Diagnostic{Code: StructSectionCount}) {
		t.Error("Expected second Add to succeed")
	}
	// Лимит достигнут.
	if bag.Add(Diagnostic{Code: StructSummaryMissing}) {
		t.Error("Expected third Add to be rejected")
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Severity: SevInfo})

	if bag.HasErrors() || bag.HasWarnings() {
		t.Error("Info-only bag should have no errors or warnings")
	}

	bag.Add(Diagnostic{Severity: SevWarning})
	if bag.HasErrors() {
		t.Error("Expected no errors yet")
	}
	if !bag.HasWarnings() {
		t.Error("Expected warnings")
	}

	bag.Add(Diagnostic{Severity: SevError})
	if !bag.HasErrors() {
		t.Error("Expected errors")
	}
}

func TestBagCountBySeverity(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Severity: SevError})
	bag.Add(Diagnostic{Severity: SevError})
	bag.Add(Diagnostic{Severity: SevWarning})
	bag.Add(Diagnostic{Severity: SevInfo})

	errors, warnings, infos := bag.CountBySeverity()
	if errors != 2 || warnings != 1 || infos != 1 {
		t.Errorf("CountBySeverity = %d/%d/%d, want 2/1/1", errors, warnings, infos)
	}
}

// TestBagSort проверяет порядок: файл, позиция, severity (desc), код.
func TestBagSort(t *testing.T) {
	bag := NewBag(10)
	bag.Add(Diagnostic{Code: StructSectionCount, Severity: SevError, Primary: source.Span{File: 0, Start: 20, End: 25}})
	bag.Add(Diagnostic{Code: ScanUnterminatedFence, Severity: SevError, Primary: source.Span{File: 0, Start: 5, End: 10}})
	bag.Add(Diagnostic{Code: ScanTableCellCount, Severity: SevWarning, Primary: source.Span{File: 0, Start: 5, End: 10}})

	bag.Sort()
	items := bag.Items()

	if items[0].Code != ScanUnterminatedFence {
		t.Errorf("item 0 = %s", items[0].Code)
	}
	// Одинаковый span: error раньше warning.
	if items[1].Code != ScanTableCellCount {
		t.Errorf("item 1 = %s", items[1].Code)
	}
	if items[2].Code != StructSectionCount {
		t.Errorf("item 2 = %s", items[2].Code)
	}
}

func TestBagDedup(t *testing.T) {
	span := source.Span{File: 0, Start: 1, End: 2}
	bag := NewBag(10)
	bag.Add(Diagnostic{Code: ScanUnterminatedFence, Primary: span, Message: "a"})
	bag.Add(Diagnostic{Code: ScanUnterminatedFence, Primary: span, Message: "b"})
	bag.Add(Diagnostic{Code: StructSectionCount, Primary: span})

	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("Len after Dedup = %d, want 2", bag.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Code: ScanUnterminatedFence})

	b := NewBag(2)
	b.Add(Diagnostic{Code: StructSectionCount})
	b.Add(Diagnostic{Code: StructSummaryMissing})

	a.Merge(b)
	if a.Len() != 3 {
		t.Errorf("Len after Merge = %d, want 3", a.Len())
	}
	a.Merge(nil) // не должно паниковать
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{ScanUnterminatedFence, "MD1001"},
		{ScanTableCellCount, "MD1003"},
		{StructSectionCount, "DOC2001"},
		{StructSummaryUnknownRef, "DOC2104"},
		{IOLoadFileError, "IO9001"},
		{UnknownCode, "X0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("Code(%d).ID() = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	if sev, ok := ParseSeverity("error"); !ok || sev != SevError {
		t.Error("error label not parsed")
	}
	if sev, ok := ParseSeverity("warning"); !ok || sev != SevWarning {
		t.Error("warning label not parsed")
	}
	if _, ok := ParseSeverity("loud"); ok {
		t.Error("unknown label accepted")
	}
}
