package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 5, End: 10}
	b := Span{File: 0, Start: 2, End: 7}

	got := a.Cover(b)
	if got.Start != 2 || got.End != 10 {
		t.Errorf("Cover = %v, want 0:2-10", got)
	}

	// Другой файл — span не трогаем.
	other := Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files = %v, want %v", got, a)
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: 3, End: 6}

	cases := []struct {
		off  uint32
		want bool
	}{
		{2, false},
		{3, true},
		{5, true},
		{6, false}, // End не включается
	}
	for _, tc := range cases {
		if got := s.Contains(tc.off); got != tc.want {
			t.Errorf("Contains(%d) = %v, want %v", tc.off, got, tc.want)
		}
	}
}

func TestSpanOverlaps(t *testing.T) {
	s := Span{File: 0, Start: 3, End: 6}

	cases := []struct {
		name  string
		other Span
		want  bool
	}{
		{"before", Span{File: 0, Start: 0, End: 3}, false},
		{"touching start", Span{File: 0, Start: 0, End: 4}, true},
		{"inside", Span{File: 0, Start: 4, End: 5}, true},
		{"after", Span{File: 0, Start: 6, End: 9}, false},
		{"other file", Span{File: 1, Start: 3, End: 6}, false},
	}
	for _, tc := range cases {
		if got := s.Overlaps(tc.other); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSpanEmptyLen(t *testing.T) {
	if !(Span{Start: 4, End: 4}).Empty() {
		t.Error("Expected empty span")
	}
	if (Span{Start: 4, End: 7}).Len() != 3 {
		t.Error("Expected Len 3")
	}
}
