package rules

import (
	"strconv"
	"strings"

	"factorlint/internal/diag"
	"factorlint/internal/mddoc"
)

// FencesRule reports fenced code blocks that are never terminated.
type FencesRule struct{}

func (FencesRule) ID() string { return "fences" }

func (FencesRule) Describe() string {
	return "every fenced code block must be terminated before end of file"
}

func (FencesRule) Check(doc *mddoc.Document, _ Config, r diag.Reporter) {
	for _, fence := range doc.UnclosedFences() {
		closer := strings.Repeat(string(fence.Marker), fence.MarkerLen)
		b := diag.ReportError(r, diag.ScanUnterminatedFence, fence.Open,
			"unterminated code fence")
		if fence.Info != "" {
			b.WithNote(fence.Open, "fence opened with info string "+strconv.Quote(fence.Info))
		}
		b.WithFix("append closing fence at end of file", diag.TextEdit{
			Span:    doc.EOFSpan(),
			NewText: "\n" + closer + "\n",
		})
		b.Emit()
	}
}
