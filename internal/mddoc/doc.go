// Package mddoc builds a block-level document model from a scanned Markdown
// file: headings, code fences and tables, plus the derived view the rules
// check — numbered principle sections and the summary table.
package mddoc

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"factorlint/internal/mdscan"
	"factorlint/internal/source"
)

// Heading is an ATX heading with its normalized anchor text.
type Heading struct {
	Level    int
	Text     string
	Anchor   string // NFC, case-folded, collapsed whitespace
	Span     source.Span
	TextSpan source.Span
}

// Fence is a fenced code block. Closed is false when the closing delimiter
// was never found before EOF.
type Fence struct {
	Info      string
	Marker    byte
	MarkerLen int
	Open      source.Span
	Close     source.Span
	Closed    bool
}

// Table is a run of pipe rows. WellFormed is false when the second row of
// the run is not a valid delimiter row, in which case Delim is the row that
// failed and Rows holds the remaining lines as data.
type Table struct {
	Span       source.Span
	Header     []mdscan.Cell
	Delim      []mdscan.Cell
	DelimSpan  source.Span
	Rows       [][]mdscan.Cell
	RowSpans   []source.Span
	WellFormed bool
}

// Principle is a numbered body section: a heading of the form "N. Title".
type Principle struct {
	Number  int
	Title   string
	Key     string // normalized title, used for summary matching
	Heading Heading
}

// Document is the block-level model of one Markdown file.
type Document struct {
	File     *source.File
	Headings []Heading
	Fences   []Fence
	Tables   []Table
}

// SummaryTable returns the last well-formed table in the document, which is
// where the contract expects the principle summary. ok is false when the
// document has no well-formed table.
func (d *Document) SummaryTable() (Table, bool) {
	for i := len(d.Tables) - 1; i >= 0; i-- {
		if d.Tables[i].WellFormed {
			return d.Tables[i], true
		}
	}
	return Table{}, false
}

// Principles extracts numbered sections at the given heading level, in body
// order.
func (d *Document) Principles(level int) []Principle {
	out := make([]Principle, 0, 12)
	for _, h := range d.Headings {
		if h.Level != level {
			continue
		}
		num, title, ok := parsePrincipleHeading(h.Text)
		if !ok {
			continue
		}
		out = append(out, Principle{
			Number:  num,
			Title:   title,
			Key:     NormalizeAnchor(title),
			Heading: h,
		})
	}
	return out
}

// parsePrincipleHeading разбирает "N. Title" (допускается "N) Title").
func parsePrincipleHeading(text string) (num int, title string, ok bool) {
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		num = num*10 + int(text[i]-'0')
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	if i >= len(text) || (text[i] != '.' && text[i] != ')') {
		return 0, "", false
	}
	i++
	title = strings.TrimSpace(text[i:])
	if title == "" {
		return 0, "", false
	}
	return num, title, true
}

// NormalizeAnchor prepares heading or cell text for reference comparison:
// NFC normalization, case folding and whitespace collapsing. Renderer-level
// slug rules (dashes, punctuation stripping) are deliberately not applied.
func NormalizeAnchor(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}
