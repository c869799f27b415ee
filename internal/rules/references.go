package rules

import (
	"fmt"

	"factorlint/internal/diag"
	"factorlint/internal/mddoc"
)

// ReferencesRule checks that every principle named in the summary table
// resolves to a heading earlier in the document.
type ReferencesRule struct{}

func (ReferencesRule) ID() string { return "references" }

func (ReferencesRule) Describe() string {
	return "every summary table entry must name a section present in the body"
}

func (ReferencesRule) Check(doc *mddoc.Document, cfg Config, r diag.Reporter) {
	table, ok := doc.SummaryTable()
	if !ok {
		// Отсутствие таблицы — забота правила summary-table.
		return
	}

	known := make(map[string]bool, len(doc.Headings))
	for _, h := range doc.Headings {
		known[h.Anchor] = true
	}
	for _, p := range doc.Principles(cfg.SectionLevel) {
		known[p.Key] = true
	}

	for _, row := range table.Rows {
		cell, ok := nameCell(row)
		if !ok {
			continue
		}
		key := mddoc.NormalizeAnchor(cell.Text)
		if known[key] {
			continue
		}
		diag.ReportError(r, diag.StructSummaryUnknownRef, cell.Span,
			fmt.Sprintf("summary table references %q, which has no matching section", cell.Text)).
			Emit()
	}
}
