package mddoc

import (
	"strings"

	"factorlint/internal/mdscan"
	"factorlint/internal/source"
)

// Build scans the file and assembles the document model in one pass.
func Build(file *source.File) *Document {
	scanner := mdscan.New(file)
	blocks := scanner.Scan()

	doc := &Document{File: file}

	var openFence *Fence
	var tableRun []mdscan.Block

	flushTable := func() {
		if len(tableRun) >= 2 {
			doc.Tables = append(doc.Tables, buildTable(tableRun))
		}
		tableRun = nil
	}

	for _, blk := range blocks {
		if blk.Kind != mdscan.BlockTableRow {
			flushTable()
		}

		switch blk.Kind {
		case mdscan.BlockHeading:
			doc.Headings = append(doc.Headings, Heading{
				Level:    blk.Level,
				Text:     blk.Text,
				Anchor:   NormalizeAnchor(blk.Text),
				Span:     blk.Span,
				TextSpan: blk.TextSpan,
			})

		case mdscan.BlockFenceOpen:
			doc.Fences = append(doc.Fences, Fence{
				Info:      blk.Info,
				Marker:    blk.Marker,
				MarkerLen: blk.MarkerLen,
				Open:      blk.Span,
			})
			openFence = &doc.Fences[len(doc.Fences)-1]

		case mdscan.BlockFenceClose:
			if openFence != nil {
				openFence.Close = blk.Span
				openFence.Closed = true
				openFence = nil
			}

		case mdscan.BlockTableRow:
			tableRun = append(tableRun, blk)

		case mdscan.BlockBlank, mdscan.BlockText:
			// ничего
		}
	}
	flushTable()

	return doc
}

func buildTable(run []mdscan.Block) Table {
	span := run[0].Span
	for _, blk := range run[1:] {
		span = span.Cover(blk.Span)
	}

	t := Table{
		Span:      span,
		Header:    run[0].Cells,
		Delim:     run[1].Cells,
		DelimSpan: run[1].Span,
	}
	t.WellFormed = isDelimRow(run[1].Cells)

	for _, blk := range run[2:] {
		t.Rows = append(t.Rows, blk.Cells)
		t.RowSpans = append(t.RowSpans, blk.Span)
	}
	return t
}

// isDelimRow — каждая ячейка вида ":?-+:?" (GFM delimiter row).
func isDelimRow(cells []mdscan.Cell) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		text := c.Text
		text = strings.TrimPrefix(text, ":")
		text = strings.TrimSuffix(text, ":")
		if text == "" || strings.Trim(text, "-") != "" {
			return false
		}
	}
	return true
}

// UnclosedFences returns fences whose closing delimiter is missing.
func (d *Document) UnclosedFences() []Fence {
	out := make([]Fence, 0)
	for _, f := range d.Fences {
		if !f.Closed {
			out = append(out, f)
		}
	}
	return out
}

// EOFSpan returns an empty span at the end of the file, used to anchor
// append-style fixes.
func (d *Document) EOFSpan() source.Span {
	end := uint32(len(d.File.Content))
	return source.Span{File: d.File.ID, Start: end, End: end}
}
