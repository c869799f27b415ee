package mdscan

import (
	"factorlint/internal/source"
)

// BlockKind classifies a single scanned line.
type BlockKind uint8

const (
	// BlockBlank is a line containing only whitespace.
	BlockBlank BlockKind = iota
	// BlockHeading is an ATX heading line.
	BlockHeading
	// BlockFenceOpen opens a fenced code block.
	BlockFenceOpen
	// BlockFenceClose closes the matching fenced code block.
	BlockFenceClose
	// BlockTableRow is a pipe-delimited table line.
	BlockTableRow
	// BlockText is any other line, including lines inside an open fence.
	BlockText
)

func (k BlockKind) String() string {
	switch k {
	case BlockBlank:
		return "blank"
	case BlockHeading:
		return "heading"
	case BlockFenceOpen:
		return "fence-open"
	case BlockFenceClose:
		return "fence-close"
	case BlockTableRow:
		return "table-row"
	case BlockText:
		return "text"
	}
	return "unknown"
}

// Cell is one table cell: the trimmed text and its span in the source.
type Cell struct {
	Text string
	Span source.Span
}

// Block is one scanned line with construct-specific payload.
// Span covers the line without the trailing newline.
type Block struct {
	Kind BlockKind
	Span source.Span

	// Заголовок
	Level    int         // 1..6
	Text     string      // текст заголовка без маркеров
	TextSpan source.Span // span текста заголовка

	// Fence
	Marker    byte   // '`' или '~'
	MarkerLen int    // длина открывающей последовательности
	Info      string // info string после открывающего fence

	// Таблица
	Cells []Cell
}
