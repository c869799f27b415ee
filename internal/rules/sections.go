package rules

import (
	"fmt"
	"strconv"

	"factorlint/internal/diag"
	"factorlint/internal/mddoc"
	"factorlint/internal/source"
)

// SectionsRule checks the numbered principle sections: exactly the expected
// count, numbered 1..N without gaps or duplicates, in ascending body order.
type SectionsRule struct{}

func (SectionsRule) ID() string { return "sections" }

func (SectionsRule) Describe() string {
	return "numbered principle sections must cover 1..N exactly once, in order"
}

func (SectionsRule) Check(doc *mddoc.Document, cfg Config, r diag.Reporter) {
	principles := doc.Principles(cfg.SectionLevel)
	expected := cfg.ExpectedSections

	if len(principles) == 0 {
		span := doc.EOFSpan()
		if len(doc.Headings) > 0 {
			span = doc.Headings[0].Span
		}
		diag.ReportError(r, diag.StructSectionCount, span,
			fmt.Sprintf("no numbered principle sections found, expected %d", expected)).
			Emit()
		return
	}

	last := principles[len(principles)-1]
	if len(principles) != expected {
		diag.ReportError(r, diag.StructSectionCount, last.Heading.Span,
			fmt.Sprintf("found %d numbered sections, expected %d", len(principles), expected)).
			Emit()
	}

	firstByNum := make(map[int]mddoc.Principle, len(principles))
	for _, p := range principles {
		prev, dup := firstByNum[p.Number]
		if dup {
			diag.ReportError(r, diag.StructDuplicateSection, p.Heading.Span,
				fmt.Sprintf("duplicate principle number %d", p.Number)).
				WithNote(prev.Heading.Span, "first used here").
				Emit()
			continue
		}
		firstByNum[p.Number] = p
	}

	for _, p := range principles {
		if p.Number < 1 || p.Number > expected {
			diag.ReportError(r, diag.StructSectionGap, p.Heading.Span,
				fmt.Sprintf("principle number %d is outside 1..%d", p.Number, expected)).
				Emit()
		}
	}

	missing := make([]string, 0)
	for n := 1; n <= expected; n++ {
		if _, ok := firstByNum[n]; !ok {
			missing = append(missing, strconv.Itoa(n))
		}
	}
	if len(missing) > 0 && len(missing) < expected {
		msg := "missing principle number " + missing[0]
		if len(missing) > 1 {
			msg = "missing principle numbers " + joinComma(missing)
		}
		diag.ReportError(r, diag.StructSectionGap, last.Heading.Span, msg).Emit()
	}

	for i := 1; i < len(principles); i++ {
		cur, prev := principles[i], principles[i-1]
		if cur.Number > prev.Number {
			continue
		}
		want := i + 1
		b := diag.ReportError(r, diag.StructSectionOrder, cur.Heading.Span,
			fmt.Sprintf("principle %d appears after principle %d", cur.Number, prev.Number)).
			WithNote(prev.Heading.Span, "previous section here")
		if span, ok := numberSpan(cur); ok {
			b.WithFix(fmt.Sprintf("renumber section to %d", want), diag.TextEdit{
				Span:    span,
				NewText: strconv.Itoa(want),
				OldText: cur.Heading.Text[:span.Len()],
			})
		}
		b.Emit()
	}
}

// numberSpan возвращает span цифрового префикса заголовка "N. Title".
func numberSpan(p mddoc.Principle) (source.Span, bool) {
	digits := 0
	for digits < len(p.Heading.Text) && p.Heading.Text[digits] >= '0' && p.Heading.Text[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return source.Span{}, false
	}
	start := p.Heading.TextSpan.Start
	return source.Span{File: p.Heading.TextSpan.File, Start: start, End: start + uint32(digits)}, true
}

func joinComma(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}
