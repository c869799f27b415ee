package mdscan

import (
	"strings"

	"factorlint/internal/source"
)

// scanFenceOpen распознаёт открывающий fence: до 3 пробелов отступа,
// минимум 3 '`' или '~', дальше info string. Для backtick-fence info
// string не может содержать '`' (CommonMark).
func scanFenceOpen(span source.Span, text string) (Block, bool) {
	indent, tooDeep := lineIndent(text)
	if tooDeep {
		return Block{}, false
	}

	i := indent
	if i >= len(text) {
		return Block{}, false
	}
	marker := text[i]
	if marker != '`' && marker != '~' {
		return Block{}, false
	}

	runLen := 0
	for i < len(text) && text[i] == marker {
		runLen++
		i++
	}
	if runLen < 3 {
		return Block{}, false
	}

	info := strings.TrimSpace(text[i:])
	if marker == '`' && strings.ContainsRune(info, '`') {
		return Block{}, false
	}

	return Block{
		Kind:      BlockFenceOpen,
		Span:      span,
		Marker:    marker,
		MarkerLen: runLen,
		Info:      info,
	}, true
}

// scanFenceClose распознаёт закрывающий fence: тот же маркер, длина не
// меньше открывающей, и ничего, кроме пробелов, после.
func scanFenceClose(span source.Span, text string, marker byte, openLen int) (Block, bool) {
	indent, tooDeep := lineIndent(text)
	if tooDeep {
		return Block{}, false
	}

	i := indent
	runLen := 0
	for i < len(text) && text[i] == marker {
		runLen++
		i++
	}
	if runLen < 3 || runLen < openLen {
		return Block{}, false
	}
	if !isBlank(text[i:]) {
		return Block{}, false
	}

	return Block{
		Kind:      BlockFenceClose,
		Span:      span,
		Marker:    marker,
		MarkerLen: runLen,
	}, true
}
