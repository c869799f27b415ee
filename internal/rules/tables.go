package rules

import (
	"fmt"

	"factorlint/internal/diag"
	"factorlint/internal/mddoc"
)

// TablesRule reports malformed pipe tables: a broken delimiter row or rows
// whose cell count diverges from the header.
type TablesRule struct{}

func (TablesRule) ID() string { return "tables" }

func (TablesRule) Describe() string {
	return "pipe tables must have a valid delimiter row and consistent cell counts"
}

func (TablesRule) Check(doc *mddoc.Document, _ Config, r diag.Reporter) {
	for _, t := range doc.Tables {
		if !t.WellFormed {
			diag.ReportWarning(r, diag.ScanMalformedTableDelim, t.DelimSpan,
				"table delimiter row is malformed").
				WithNote(t.Span, "table starts here").
				Emit()
			continue
		}

		want := len(t.Header)
		if len(t.Delim) != want {
			diag.ReportWarning(r, diag.ScanTableCellCount, t.DelimSpan,
				fmt.Sprintf("delimiter row has %d cells, header has %d", len(t.Delim), want)).
				Emit()
		}
		for i, row := range t.Rows {
			if len(row) != want {
				diag.ReportWarning(r, diag.ScanTableCellCount, t.RowSpans[i],
					fmt.Sprintf("row has %d cells, header has %d", len(row), want)).
					Emit()
			}
		}
	}
}
