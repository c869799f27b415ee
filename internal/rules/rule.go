// Package rules implements the document-contract checks: numbered principle
// sections, the summary table, fence termination and summary/section
// referential consistency. Rules consume the mddoc model and report through
// diag.Reporter; they never touch the filesystem.
package rules

import (
	"factorlint/internal/diag"
	"factorlint/internal/mddoc"
)

// Config carries the document contract a rule run checks against.
type Config struct {
	// ExpectedSections is the required number of numbered principle
	// sections (and summary rows).
	ExpectedSections int
	// SectionLevel is the heading level of principle sections.
	SectionLevel int
}

// DefaultConfig is the contract of the twelve-factor document.
func DefaultConfig() Config {
	return Config{
		ExpectedSections: 12,
		SectionLevel:     2,
	}
}

// Rule is a single structural check over a document.
type Rule interface {
	// ID is the stable rule name used in the manifest and the CLI.
	ID() string
	// Describe is a one-line human description for `factorlint rules`.
	Describe() string
	// Check inspects the document and reports findings.
	Check(doc *mddoc.Document, cfg Config, r diag.Reporter)
}
