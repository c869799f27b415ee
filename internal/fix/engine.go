// Package fix selects and applies fix suggestions attached to diagnostics.
package fix

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"factorlint/internal/diag"
	"factorlint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes file changes without writing them.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path       string
	EditCount  int
	NewContent []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to
// opts, and applies them.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diagnostics, result)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected := selectCandidates(candidates, opts, result)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	if err := applyCandidates(fs, selected, opts, result); err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates собирает фиксы из диагностик; фиксы без правок — skip.
// Пустой ID синтезируется из кода, файла, позиции и индекса фикса.
func gatherCandidates(diagnostics []diag.Diagnostic, result *ApplyResult) []candidate {
	cands := make([]candidate, 0)

	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				result.Skipped = append(result.Skipped, SkippedFix{
					ID:     f.ID,
					Title:  f.Title,
					Reason: "fix has no edits",
				})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands
}

// sortCandidates sorts in-place: file, span, insertion order, code, ID.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return candidates[i].fix.ID < candidates[j].fix.ID
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions, result *ApplyResult) []candidate {
	switch opts.Mode {
	case ApplyModeAll:
		return candidates

	case ApplyModeID:
		for _, c := range candidates {
			if c.fix.ID == opts.TargetID {
				return []candidate{c}
			}
		}
		result.Skipped = append(result.Skipped, SkippedFix{
			ID:     opts.TargetID,
			Reason: "no fix with this id",
		})
		return nil

	default: // ApplyModeOnce
		return candidates[:1]
	}
}

// applyCandidates группирует правки по файлам и применяет их справа налево,
// чтобы более ранние span оставались валидными. Пересекающиеся правки в
// одном проходе отклоняются.
func applyCandidates(fs *source.FileSet, selected []candidate, opts ApplyOptions, result *ApplyResult) error {
	type fileEdit struct {
		edit diag.TextEdit
		cand candidate
	}
	perFile := make(map[source.FileID][]fileEdit)
	fileOrder := make([]source.FileID, 0)

	for _, c := range selected {
		accepted := true
		for _, edit := range c.fix.Edits {
			for _, existing := range perFile[edit.Span.File] {
				if edit.Span.Overlaps(existing.edit.Span) {
					accepted = false
				}
			}
		}
		if !accepted {
			result.Skipped = append(result.Skipped, SkippedFix{
				ID:     c.fix.ID,
				Title:  c.fix.Title,
				Reason: "edits overlap with an already selected fix",
			})
			continue
		}
		for _, edit := range c.fix.Edits {
			if _, seen := perFile[edit.Span.File]; !seen {
				fileOrder = append(fileOrder, edit.Span.File)
			}
			perFile[edit.Span.File] = append(perFile[edit.Span.File], fileEdit{edit: edit, cand: c})
		}

		file := fs.Get(c.diag.Primary.File)
		result.Applied = append(result.Applied, AppliedFix{
			ID:          c.fix.ID,
			Title:       c.fix.Title,
			Code:        c.diag.Code,
			Message:     c.diag.Message,
			PrimaryPath: file.Path,
			EditCount:   len(c.fix.Edits),
		})
	}

	for _, fileID := range fileOrder {
		edits := perFile[fileID]
		file := fs.Get(fileID)

		// Справа налево.
		sort.SliceStable(edits, func(i, j int) bool {
			return edits[i].edit.Span.Start > edits[j].edit.Span.Start
		})

		content := bytes.Clone(file.Content)
		applied := 0
		for _, fe := range edits {
			edit := fe.edit
			if edit.Span.End > uint32(len(content)) {
				continue
			}
			old := content[edit.Span.Start:edit.Span.End]
			if edit.OldText != "" && string(old) != edit.OldText {
				result.Skipped = append(result.Skipped, SkippedFix{
					ID:     fe.cand.fix.ID,
					Title:  fe.cand.fix.Title,
					Reason: fmt.Sprintf("guard mismatch: expected %q, found %q", edit.OldText, old),
				})
				continue
			}
			var buf bytes.Buffer
			buf.Write(content[:edit.Span.Start])
			buf.WriteString(edit.NewText)
			buf.Write(content[edit.Span.End:])
			content = buf.Bytes()
			applied++
		}

		if applied == 0 {
			continue
		}

		change := FileChange{Path: file.Path, EditCount: applied, NewContent: content}
		result.FileChanges = append(result.FileChanges, change)

		if opts.DryRun || file.Flags&source.FileVirtual != 0 {
			continue
		}
		if err := writeFileAtomic(file.Path, content); err != nil {
			return fmt.Errorf("fix: failed to write %s: %w", file.Path, err)
		}
	}
	return nil
}

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".factorlint-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
