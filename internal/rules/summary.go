package rules

import (
	"fmt"

	"factorlint/internal/diag"
	"factorlint/internal/mddoc"
	"factorlint/internal/mdscan"
)

// SummaryRule checks the closing summary table: present, exactly one row
// per principle, rows ordered the same way as the body sections.
type SummaryRule struct{}

func (SummaryRule) ID() string { return "summary-table" }

func (SummaryRule) Describe() string {
	return "the summary table must list every principle once, in body order"
}

func (SummaryRule) Check(doc *mddoc.Document, cfg Config, r diag.Reporter) {
	principles := doc.Principles(cfg.SectionLevel)

	table, ok := doc.SummaryTable()
	if !ok {
		diag.ReportError(r, diag.StructSummaryMissing, doc.EOFSpan(),
			fmt.Sprintf("summary table with %d rows not found", cfg.ExpectedSections)).
			Emit()
		return
	}

	if len(table.Rows) != cfg.ExpectedSections {
		diag.ReportError(r, diag.StructSummaryRowCount, table.Span,
			fmt.Sprintf("summary table has %d rows, expected %d", len(table.Rows), cfg.ExpectedSections)).
			Emit()
	}

	seen := make(map[string]int, len(table.Rows))
	for i, row := range table.Rows {
		cell, ok := nameCell(row)
		if !ok {
			continue
		}
		key := mddoc.NormalizeAnchor(cell.Text)
		if j, dup := seen[key]; dup {
			diag.ReportError(r, diag.StructSummaryDuplicate, cell.Span,
				fmt.Sprintf("principle %q listed twice in the summary table", cell.Text)).
				WithNote(table.RowSpans[j], "first listed here").
				Emit()
			continue
		}
		seen[key] = i
	}

	// Проверка порядка только при совпадающем количестве, иначе каскад.
	if len(table.Rows) != len(principles) {
		return
	}
	known := make(map[string]bool, len(principles))
	for _, p := range principles {
		known[p.Key] = true
	}
	for i, row := range table.Rows {
		cell, ok := nameCell(row)
		if !ok {
			continue
		}
		key := mddoc.NormalizeAnchor(cell.Text)
		if key == principles[i].Key {
			continue
		}
		if !known[key] {
			// Неизвестное имя — забота правила references.
			continue
		}
		diag.ReportError(r, diag.StructSummaryOrder, cell.Span,
			fmt.Sprintf("summary row %d names %q, body section %d is %q",
				i+1, cell.Text, i+1, principles[i].Title)).
			WithNote(principles[i].Heading.Span, "body section here").
			Emit()
	}
}

// nameCell — первая ячейка строки, которая не является номером.
func nameCell(row []mdscan.Cell) (mdscan.Cell, bool) {
	for _, c := range row {
		if c.Text == "" {
			continue
		}
		if !allDigits(c.Text) {
			return c, true
		}
	}
	return mdscan.Cell{}, false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
