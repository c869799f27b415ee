package mdscan

import (
	"strings"

	"factorlint/internal/source"
)

// scanHeading распознаёт ATX-заголовок: до 3 пробелов отступа, 1..6 '#',
// затем пробел/таб или конец строки. Закрывающая последовательность '#'
// отрезается по правилам CommonMark.
func scanHeading(span source.Span, text string) (Block, bool) {
	indent, tooDeep := lineIndent(text)
	if tooDeep {
		return Block{}, false
	}

	i := indent
	level := 0
	for i < len(text) && text[i] == '#' {
		level++
		i++
	}
	if level == 0 || level > 6 {
		return Block{}, false
	}
	if i < len(text) && text[i] != ' ' && text[i] != '\t' {
		// "#foo" — не заголовок
		return Block{}, false
	}

	// Пропускаем пробелы после маркера.
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}

	rest := text[i:]
	trimmed := strings.TrimRight(rest, " \t")

	// Закрывающие '#': отрезаем, только если перед ними пробел
	// или заголовок состоит из них целиком.
	closing := strings.TrimRight(trimmed, "#")
	if closing != trimmed {
		if closing == "" || strings.HasSuffix(closing, " ") || strings.HasSuffix(closing, "\t") {
			trimmed = strings.TrimRight(closing, " \t")
		}
	}

	textStart := span.Start + uint32(i)
	return Block{
		Kind:     BlockHeading,
		Span:     span,
		Level:    level,
		Text:     trimmed,
		TextSpan: source.Span{File: span.File, Start: textStart, End: textStart + uint32(len(trimmed))},
	}, true
}
