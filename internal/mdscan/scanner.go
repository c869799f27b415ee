// Package mdscan turns a Markdown document into a flat sequence of line
// blocks: headings, fence delimiters, table rows, blank lines and opaque
// text. It never fails; malformed structure is represented as-is and judged
// later by the rule layer.
//
// The scanner covers the block constructs the document contract needs and
// deliberately nothing else: ATX headings, backtick/tilde code fences and
// pipe tables, all per CommonMark/GFM line rules.
package mdscan

import (
	"factorlint/internal/source"
)

type Scanner struct {
	file   *source.File
	cursor Cursor

	// Открытый fence, пока не встретился закрывающий маркер.
	openFence *Block
}

func New(file *source.File) *Scanner {
	return &Scanner{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Scan walks the whole file and returns its blocks in document order.
func (s *Scanner) Scan() []Block {
	blocks := make([]Block, 0, 64)
	for {
		span, text, ok := s.cursor.NextLine()
		if !ok {
			break
		}
		blocks = append(blocks, s.classifyLine(span, text))
	}
	return blocks
}

// InFence reports whether the scanner stopped with an unterminated fence.
// Valid after Scan.
func (s *Scanner) InFence() (open Block, ok bool) {
	if s.openFence == nil {
		return Block{}, false
	}
	return *s.openFence, true
}

// classifyLine выбирает сканер для строки.
// Внутри открытого fence всё, кроме закрывающего маркера, — текст.
func (s *Scanner) classifyLine(span source.Span, text string) Block {
	if s.openFence != nil {
		if blk, ok := scanFenceClose(span, text, s.openFence.Marker, s.openFence.MarkerLen); ok {
			s.openFence = nil
			return blk
		}
		return Block{Kind: BlockText, Span: span}
	}

	if isBlank(text) {
		return Block{Kind: BlockBlank, Span: span}
	}

	if blk, ok := scanFenceOpen(span, text); ok {
		s.openFence = &blk
		return blk
	}

	if blk, ok := scanHeading(span, text); ok {
		return blk
	}

	if blk, ok := scanTableRow(span, text); ok {
		return blk
	}

	return Block{Kind: BlockText, Span: span}
}

// isBlank — только пробелы и табы.
func isBlank(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] != ' ' && text[i] != '\t' {
			return false
		}
	}
	return true
}

// lineIndent counts leading spaces; a tab ends the count since a tab in
// leading position already means a code line in CommonMark.
func lineIndent(text string) (spaces int, tooDeep bool) {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ':
			spaces++
			if spaces > 3 {
				return spaces, true
			}
		case '\t':
			return spaces, true
		default:
			return spaces, false
		}
	}
	return spaces, false
}
