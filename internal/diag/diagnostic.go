package diag

import (
	"factorlint/internal/source"
)

// Note is a secondary location attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the text covered by Span with NewText.
// OldText, when non-empty, is a guard: the edit is skipped unless the
// current content of Span equals OldText.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix is a mechanical correction suggested by a rule.
type Fix struct {
	ID          string
	Title       string
	IsPreferred bool
	Edits       []TextEdit
}

// Diagnostic is a single finding with a primary location, optional
// secondary notes and optional fix suggestions.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// WithFix returns a copy of the diagnostic with an extra fix attached.
func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}
