package mddoc

import (
	"testing"

	"factorlint/internal/source"
)

func buildString(t *testing.T, content string) *Document {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("doc.md", []byte(content))
	return Build(fs.Get(id))
}

func TestBuildCollectsHeadings(t *testing.T) {
	doc := buildString(t, "# Top\n\n## 1. Codebase\n\n### nested\n")

	if len(doc.Headings) != 3 {
		t.Fatalf("Expected 3 headings, got %d", len(doc.Headings))
	}
	if doc.Headings[1].Level != 2 || doc.Headings[1].Text != "1. Codebase" {
		t.Errorf("heading 1 = %+v", doc.Headings[1])
	}
	if doc.Headings[1].Anchor != "1. codebase" {
		t.Errorf("anchor = %q, want %q", doc.Headings[1].Anchor, "1. codebase")
	}
}

func TestBuildFences(t *testing.T) {
	doc := buildString(t, "```sh\necho hi\n```\n\n```go\nunterminated\n")

	if len(doc.Fences) != 2 {
		t.Fatalf("Expected 2 fences, got %d", len(doc.Fences))
	}
	if !doc.Fences[0].Closed {
		t.Error("Expected first fence to be closed")
	}
	if doc.Fences[1].Closed {
		t.Error("Expected second fence to be open")
	}

	unclosed := doc.UnclosedFences()
	if len(unclosed) != 1 || unclosed[0].Info != "go" {
		t.Errorf("UnclosedFences = %+v", unclosed)
	}
}

func TestBuildTableWellFormed(t *testing.T) {
	doc := buildString(t, "| # | Factor |\n| - | ------ |\n| 1 | Codebase |\n| 2 | Config |\n")

	if len(doc.Tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(doc.Tables))
	}
	table := doc.Tables[0]
	if !table.WellFormed {
		t.Fatal("Expected table to be well-formed")
	}
	if len(table.Header) != 2 || len(table.Rows) != 2 {
		t.Errorf("header %d cells, %d rows", len(table.Header), len(table.Rows))
	}
	if table.Rows[0][1].Text != "Codebase" {
		t.Errorf("row 0 cell 1 = %q", table.Rows[0][1].Text)
	}
}

func TestBuildTableBrokenDelim(t *testing.T) {
	// Вторая строка не delimiter row — таблица неправильная.
	doc := buildString(t, "| a | b |\n| 1 | 2 |\n| 3 | 4 |\n")

	if len(doc.Tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(doc.Tables))
	}
	if doc.Tables[0].WellFormed {
		t.Error("Expected table to be malformed")
	}
}

func TestSingleRowIsNotTable(t *testing.T) {
	doc := buildString(t, "| lonely |\n\nprose\n")
	if len(doc.Tables) != 0 {
		t.Errorf("Expected no tables, got %d", len(doc.Tables))
	}
}

func TestSummaryTablePicksLastWellFormed(t *testing.T) {
	content := "| x | y |\n| - | - |\n| 1 | 2 |\n\n" +
		"| # | Factor |\n| - | - |\n| 1 | Codebase |\n"
	doc := buildString(t, content)

	table, ok := doc.SummaryTable()
	if !ok {
		t.Fatal("Expected a summary table")
	}
	if table.Header[1].Text != "Factor" {
		t.Errorf("Expected last table, header = %q", table.Header[1].Text)
	}
}

func TestPrinciples(t *testing.T) {
	content := "## 1. Codebase\n\n## 2) Config\n\n## Summary\n\n### 3. ignored level\n"
	doc := buildString(t, content)

	ps := doc.Principles(2)
	if len(ps) != 2 {
		t.Fatalf("Expected 2 principles, got %d", len(ps))
	}
	if ps[0].Number != 1 || ps[0].Title != "Codebase" || ps[0].Key != "codebase" {
		t.Errorf("principle 0 = %+v", ps[0])
	}
	if ps[1].Number != 2 || ps[1].Title != "Config" {
		t.Errorf("principle 1 = %+v", ps[1])
	}
}

func TestParsePrincipleHeading(t *testing.T) {
	cases := []struct {
		text  string
		num   int
		title string
		ok    bool
	}{
		{"1. Codebase", 1, "Codebase", true},
		{"12. Admin Processes", 12, "Admin Processes", true},
		{"3) Config", 3, "Config", true},
		{"Summary", 0, "", false},
		{"1 Codebase", 0, "", false},
		{"7.", 0, "", false},
		{"7.   ", 0, "", false},
	}
	for _, tc := range cases {
		num, title, ok := parsePrincipleHeading(tc.text)
		if ok != tc.ok || num != tc.num || title != tc.title {
			t.Errorf("parsePrincipleHeading(%q) = %d %q %v, want %d %q %v",
				tc.text, num, title, ok, tc.num, tc.title, tc.ok)
		}
	}
}

func TestNormalizeAnchor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Codebase", "codebase"},
		{"  Build,   Release, Run ", "build, release, run"},
		{"Dev/Prod Parity", "dev/prod parity"},
		// NFC: 'e' + combining acute == 'é'
		{"Café", "café"},
	}
	for _, tc := range cases {
		if got := NormalizeAnchor(tc.in); got != tc.want {
			t.Errorf("NormalizeAnchor(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsDelimRow(t *testing.T) {
	doc := buildString(t, "| a | b | c |\n| --- | :-: | --: |\n| 1 | 2 | 3 |\n")
	if !doc.Tables[0].WellFormed {
		t.Error("Expected alignment delimiters to be accepted")
	}
}

func TestEOFSpan(t *testing.T) {
	doc := buildString(t, "abc")
	span := doc.EOFSpan()
	if span.Start != 3 || span.End != 3 {
		t.Errorf("EOFSpan = %v, want 3-3", span)
	}
}
