package mdscan

import (
	"strings"

	"factorlint/internal/source"
)

// scanTableRow распознаёт строку GFM-таблицы: строка начинается с '|'
// (после отступа до 3 пробелов). Ячейки режутся по неэкранированным '|',
// ведущая и замыкающая черта не дают ячеек.
func scanTableRow(span source.Span, text string) (Block, bool) {
	indent, tooDeep := lineIndent(text)
	if tooDeep {
		return Block{}, false
	}
	if indent >= len(text) || text[indent] != '|' {
		return Block{}, false
	}

	type segment struct {
		start, end int // байты внутри text
	}
	segments := make([]segment, 0, 8)

	segStart := indent + 1
	for j := indent + 1; j <= len(text); j++ {
		atEnd := j == len(text)
		if !atEnd && (text[j] != '|' || isEscapedPipe(text, j)) {
			continue
		}
		segments = append(segments, segment{start: segStart, end: j})
		segStart = j + 1
	}

	// Замыкающая '|': последний сегмент после неё пуст — это не ячейка.
	if len(segments) > 1 {
		last := segments[len(segments)-1]
		if isBlank(text[last.start:last.end]) && last.start > 0 && text[last.start-1] == '|' {
			segments = segments[:len(segments)-1]
		}
	}

	cells := make([]Cell, 0, len(segments))
	for _, seg := range segments {
		raw := text[seg.start:seg.end]
		leading := len(raw) - len(strings.TrimLeft(raw, " \t"))
		trimmed := strings.TrimSpace(raw)
		start := span.Start + uint32(seg.start+leading)
		cells = append(cells, Cell{
			Text: trimmed,
			Span: source.Span{File: span.File, Start: start, End: start + uint32(len(trimmed))},
		})
	}

	return Block{
		Kind:  BlockTableRow,
		Span:  span,
		Cells: cells,
	}, true
}

// isEscapedPipe — '|' с нечётным числом '\' перед ним.
func isEscapedPipe(text string, j int) bool {
	backslashes := 0
	for k := j - 1; k >= 0 && text[k] == '\\'; k-- {
		backslashes++
	}
	return backslashes%2 == 1
}
