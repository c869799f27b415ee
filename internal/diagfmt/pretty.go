package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"factorlint/internal/diag"
	"factorlint/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	fixColor     = color.New(color.FgGreen)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с
// аналогичным форматом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writePrettyDiagnostic(w, d, fs, opts)
	}
}

func writePrettyDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(file, fs, opts.PathMode),
		start.Line, start.Col,
		severityText(d.Severity, opts.Color),
		d.Code.ID(),
		d.Message,
	)

	writeContext(w, file, d.Primary, start, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nfile := fs.Get(note.Span.File)
			nstart, _ := fs.Resolve(note.Span)
			label := "note"
			if opts.Color {
				label = noteColor.Sprint(label)
			}
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n",
				label, formatPath(nfile, fs, opts.PathMode), nstart.Line, nstart.Col, note.Msg)
		}
	}

	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			label := "fix"
			if opts.Color {
				label = fixColor.Sprint(label)
			}
			fmt.Fprintf(w, "  %s: %s\n", label, fix.Title)
		}
	}
}

// writeContext печатает строку-контекст и подчёркивание ^~~~ по span.
func writeContext(w io.Writer, file *source.File, span source.Span, start source.LineCol, opts PrettyOpts) {
	line := file.GetLine(start.Line)
	if line == "" && span.Empty() {
		return
	}

	// Табы ломают выравнивание — заменяем на один пробел.
	display := strings.ReplaceAll(line, "\t", " ")
	if opts.Width > 0 && runewidth.StringWidth(display) > opts.Width {
		display = runewidth.Truncate(display, opts.Width, "…")
	}
	fmt.Fprintf(w, "  %s\n", display)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	prefixWidth := runewidth.StringWidth(strings.ReplaceAll(line[:col], "\t", " "))

	spanLen := int(span.Len())
	remaining := len(line) - col
	if spanLen > remaining {
		spanLen = remaining
	}
	underWidth := 1
	if spanLen > 1 {
		underWidth = runewidth.StringWidth(line[col : col+spanLen])
	}
	if opts.Width > 0 && prefixWidth+underWidth > opts.Width {
		underWidth = max(1, opts.Width-prefixWidth)
	}

	underline := "^" + strings.Repeat("~", max(0, underWidth-1))
	if opts.Color {
		underline = errorColor.Sprint(underline)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", prefixWidth), underline)
}

func severityText(sev diag.Severity, colorize bool) string {
	if !colorize {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(sev.String())
	case diag.SevWarning:
		return warningColor.Sprint(sev.String())
	default:
		return infoColor.Sprint(sev.String())
	}
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
