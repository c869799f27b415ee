package mdscan

import (
	"testing"

	"factorlint/internal/source"
)

func scanString(t *testing.T, content string) []Block {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("doc.md", []byte(content))
	return New(fs.Get(id)).Scan()
}

func kinds(blocks []Block) []BlockKind {
	out := make([]BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

// TestScanHeadings проверяет распознавание ATX-заголовков.
func TestScanHeadings(t *testing.T) {
	cases := []struct {
		name      string
		line      string
		isHeading bool
		level     int
		text      string
	}{
		{"h1", "# Title", true, 1, "Title"},
		{"h2", "## 1. Codebase", true, 2, "1. Codebase"},
		{"h6", "###### deep", true, 6, "deep"},
		{"seven hashes", "####### nope", false, 0, ""},
		{"no space after marker", "#nope", false, 0, ""},
		{"indent up to three", "   ## ok", true, 2, "ok"},
		{"four spaces is code", "    ## nope", false, 0, ""},
		{"closing sequence trimmed", "## Title ##", true, 2, "Title"},
		{"closing without space kept", "## Title##", true, 2, "Title##"},
		{"only hashes", "## ##", true, 2, ""},
		{"empty after marker", "##", true, 2, ""},
	}

	for _, tc := range cases {
		blocks := scanString(t, tc.line)
		if len(blocks) != 1 {
			t.Fatalf("%s: expected 1 block, got %d", tc.name, len(blocks))
		}
		blk := blocks[0]
		if tc.isHeading != (blk.Kind == BlockHeading) {
			t.Errorf("%s: kind = %s", tc.name, blk.Kind)
			continue
		}
		if !tc.isHeading {
			continue
		}
		if blk.Level != tc.level {
			t.Errorf("%s: level = %d, want %d", tc.name, blk.Level, tc.level)
		}
		if blk.Text != tc.text {
			t.Errorf("%s: text = %q, want %q", tc.name, blk.Text, tc.text)
		}
	}
}

func TestHeadingTextSpan(t *testing.T) {
	blocks := scanString(t, "## 1. Codebase")
	blk := blocks[0]
	if blk.TextSpan.Start != 3 || blk.TextSpan.End != 14 {
		t.Errorf("TextSpan = %v, want 3-14", blk.TextSpan)
	}
}

// TestScanFences проверяет открытие и закрытие fence-блоков.
func TestScanFences(t *testing.T) {
	blocks := scanString(t, "```go\ncode | not a table\n```\n")
	want := []BlockKind{BlockFenceOpen, BlockText, BlockFenceClose}
	got := kinds(blocks)
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d: kind = %s, want %s", i, got[i], want[i])
		}
	}

	open := blocks[0]
	if open.Marker != '`' || open.MarkerLen != 3 || open.Info != "go" {
		t.Errorf("fence open = marker %q len %d info %q", open.Marker, open.MarkerLen, open.Info)
	}
}

func TestScanFenceTilde(t *testing.T) {
	blocks := scanString(t, "~~~~\ntext\n~~~\n~~~~\n")
	// Закрытие короче открывающего — это текст.
	want := []BlockKind{BlockFenceOpen, BlockText, BlockText, BlockFenceClose}
	got := kinds(blocks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d: kind = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanFenceUnterminated(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("doc.md", []byte("```sh\necho hi\n"))
	s := New(fs.Get(id))
	blocks := s.Scan()

	if blocks[len(blocks)-1].Kind != BlockText {
		t.Errorf("expected trailing text inside open fence")
	}
	open, ok := s.InFence()
	if !ok {
		t.Fatal("Expected InFence to report an open fence")
	}
	if open.Info != "sh" {
		t.Errorf("open fence info = %q, want sh", open.Info)
	}
}

func TestBacktickInfoStringRejected(t *testing.T) {
	// CommonMark: info string backtick-fence не может содержать '`'.
	blocks := scanString(t, "``` a`b")
	if blocks[0].Kind != BlockText {
		t.Errorf("kind = %s, want text", blocks[0].Kind)
	}
}

// TestScanTableRow проверяет разрезание строки таблицы на ячейки.
func TestScanTableRow(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		cells []string
	}{
		{"simple", "| a | b |", []string{"a", "b"}},
		{"no trailing pipe", "| a | b", []string{"a", "b"}},
		{"delimiter row", "| --- | :-: |", []string{"---", ":-:"}},
		{"escaped pipe", `| a \| b | c |`, []string{`a \| b`, "c"}},
		{"empty cell kept", "| a |  | c |", []string{"a", "", "c"}},
	}

	for _, tc := range cases {
		blocks := scanString(t, tc.line)
		blk := blocks[0]
		if blk.Kind != BlockTableRow {
			t.Fatalf("%s: kind = %s, want table-row", tc.name, blk.Kind)
		}
		if len(blk.Cells) != len(tc.cells) {
			t.Fatalf("%s: %d cells, want %d", tc.name, len(blk.Cells), len(tc.cells))
		}
		for i, want := range tc.cells {
			if blk.Cells[i].Text != want {
				t.Errorf("%s: cell %d = %q, want %q", tc.name, i, blk.Cells[i].Text, want)
			}
		}
	}
}

func TestTableCellSpans(t *testing.T) {
	blocks := scanString(t, "| ab | c |")
	cells := blocks[0].Cells
	if cells[0].Span.Start != 2 || cells[0].Span.End != 4 {
		t.Errorf("cell 0 span = %v, want 2-4", cells[0].Span)
	}
	if cells[1].Span.Start != 7 || cells[1].Span.End != 8 {
		t.Errorf("cell 1 span = %v, want 7-8", cells[1].Span)
	}
}

func TestBlankAndText(t *testing.T) {
	blocks := scanString(t, "\n \t \nplain prose\n")
	want := []BlockKind{BlockBlank, BlockBlank, BlockText}
	got := kinds(blocks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d: kind = %s, want %s", i, got[i], want[i])
		}
	}
}
