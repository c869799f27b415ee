// Package driver orchestrates lint runs: loading documents, building the
// model, running rules, severity policy, parallel directory walks and the
// result cache.
package driver

import (
	"context"
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"sort"

	"factorlint/internal/diag"
	"factorlint/internal/mddoc"
	"factorlint/internal/rules"
	"factorlint/internal/source"
)

// CheckOptions configures a lint run.
type CheckOptions struct {
	MaxDiagnostics   int
	IgnoreWarnings   bool
	WarningsAsErrors bool

	// Контракт документа.
	ExpectedSections int
	SectionLevel     int

	// RuleSeverities maps rule ID to a manifest severity label.
	RuleSeverities map[string]string

	// EnableCache skips re-linting unchanged clean files.
	EnableCache bool

	// Registry overrides the rule set; nil means rules.Default().
	Registry *rules.Registry
}

func (o CheckOptions) withDefaults() CheckOptions {
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = 100
	}
	if o.ExpectedSections <= 0 {
		o.ExpectedSections = 12
	}
	if o.SectionLevel <= 0 {
		o.SectionLevel = 2
	}
	if o.Registry == nil {
		o.Registry = rules.Default()
	}
	return o
}

// ruleConfig converts options into the rule-layer contract.
func (o CheckOptions) ruleConfig() rules.Config {
	return rules.Config{
		ExpectedSections: o.ExpectedSections,
		SectionLevel:     o.SectionLevel,
	}
}

// configHash fingerprints everything that can change lint results for the
// same content. Used as part of the cache key.
func (o CheckOptions) configHash() [32]byte {
	ids := make([]string, 0, len(o.RuleSeverities))
	for id := range o.RuleSeverities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := sha256.New()
	fmt.Fprintf(h, "v%d;sections=%d;level=%d;ignore=%t;promote=%t;",
		diskCacheSchemaVersion, o.ExpectedSections, o.SectionLevel,
		o.IgnoreWarnings, o.WarningsAsErrors)
	for _, id := range ids {
		fmt.Fprintf(h, "%s=%s;", id, o.RuleSeverities[id])
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// CheckResult is the outcome of linting one document.
type CheckResult struct {
	Path     string
	FileSet  *source.FileSet
	FileID   source.FileID
	Doc      *mddoc.Document
	Bag      *diag.Bag
	CacheHit bool
}

// CheckFile lints a single document.
func CheckFile(ctx context.Context, path string, opts CheckOptions) (*CheckResult, error) {
	opts = opts.withDefaults()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	var cache *DiskCache
	if opts.EnableCache {
		cache, err = OpenDiskCache("factorlint")
		if err != nil {
			// Кэш — оптимизация, без него просто линтим.
			cache = nil
		}
	}

	return checkLoaded(fileSet, fileID, opts, cache), nil
}

// checkLoaded lints an already loaded file. Shared by CheckFile and the
// parallel directory walk; fileSet must not be mutated concurrently.
func checkLoaded(fileSet *source.FileSet, fileID source.FileID, opts CheckOptions, cache *DiskCache) *CheckResult {
	file := fileSet.Get(fileID)

	result := &CheckResult{
		Path:    file.Path,
		FileSet: fileSet,
		FileID:  fileID,
	}

	configHash := opts.configHash()
	cacheKey := cacheKey(file.Hash, configHash)

	if cache != nil {
		var payload DiskPayload
		if ok, err := cache.Get(cacheKey, &payload); err == nil && ok && payload.Clean {
			result.Bag = diag.NewBag(opts.MaxDiagnostics)
			result.CacheHit = true
			return result
		}
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	var reporter diag.Reporter = diag.BagReporter{Bag: bag}
	reporter = diag.NewDedupReporter(reporter)
	reporter = severityPolicyReporter{
		next:             reporter,
		ignoreWarnings:   opts.IgnoreWarnings,
		warningsAsErrors: opts.WarningsAsErrors,
	}

	doc := mddoc.Build(file)
	opts.Registry.Check(doc, opts.ruleConfig(), reporter, opts.RuleSeverities)
	bag.Sort()

	result.Doc = doc
	result.Bag = bag

	if cache != nil && bag.Len() == 0 {
		_ = cache.Put(cacheKey, &DiskPayload{
			Schema:      diskCacheSchemaVersion,
			Path:        file.Path,
			ContentHash: file.Hash,
			ConfigHash:  configHash,
			Clean:       true,
		})
	}
	return result
}

// severityPolicyReporter применяет --no-warnings / --warnings-as-errors
// до попадания диагностики в Bag.
type severityPolicyReporter struct {
	next             diag.Reporter
	ignoreWarnings   bool
	warningsAsErrors bool
}

func (r severityPolicyReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	if sev == diag.SevWarning {
		if r.ignoreWarnings {
			return
		}
		if r.warningsAsErrors {
			sev = diag.SevError
		}
	}
	r.next.Report(code, sev, primary, msg, notes, fixes)
}
