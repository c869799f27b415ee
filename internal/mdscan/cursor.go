package mdscan

import (
	"fmt"

	"fortio.org/safecast"

	"factorlint/internal/source"
)

// Cursor представляет собой позицию в файле. Сканер документа построчный,
// поэтому курсор выдаёт целые строки, а не отдельные байты.
type Cursor struct {
	file  *source.File
	off   uint32
	limit uint32
}

// NewCursor creates a cursor positioned at the start of the file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		file:  f,
		off:   0,
		limit: limit,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.off >= c.limit
}

// NextLine returns the span and text of the next line (without the trailing
// newline) and advances past it. ok is false at EOF.
func (c *Cursor) NextLine() (span source.Span, text string, ok bool) {
	if c.EOF() {
		return source.Span{}, "", false
	}

	start := c.off
	end := start
	for end < c.limit && c.file.Content[end] != '\n' {
		end++
	}

	span = source.Span{File: c.file.ID, Start: start, End: end}
	text = string(c.file.Content[start:end])

	// Перепрыгиваем '\n', если он есть.
	if end < c.limit {
		c.off = end + 1
	} else {
		c.off = end
	}
	return span, text, true
}
