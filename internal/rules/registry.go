package rules

import (
	"fmt"
	"sort"

	"factorlint/internal/diag"
	"factorlint/internal/mddoc"
	"factorlint/internal/source"
)

// SeverityOff is the manifest label that disables a rule.
const SeverityOff = "off"

// Registry holds rules in deterministic order.
type Registry struct {
	rules map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Default returns a registry with all built-in rules.
func Default() *Registry {
	reg := NewRegistry()
	reg.MustRegister(FencesRule{})
	reg.MustRegister(TablesRule{})
	reg.MustRegister(SectionsRule{})
	reg.MustRegister(SummaryRule{})
	reg.MustRegister(ReferencesRule{})
	return reg
}

// Register adds a rule; duplicate IDs are rejected.
func (reg *Registry) Register(r Rule) error {
	if _, ok := reg.rules[r.ID()]; ok {
		return fmt.Errorf("rules: duplicate rule id %q", r.ID())
	}
	reg.rules[r.ID()] = r
	return nil
}

// MustRegister is Register for built-ins wired at startup.
func (reg *Registry) MustRegister(r Rule) {
	if err := reg.Register(r); err != nil {
		panic(err)
	}
}

// All returns rules sorted by ID.
func (reg *Registry) All() []Rule {
	out := make([]Rule, 0, len(reg.rules))
	for _, r := range reg.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// ValidateOverrides checks manifest severity labels against known rules.
func (reg *Registry) ValidateOverrides(overrides map[string]string) error {
	for id, label := range overrides {
		if _, ok := reg.rules[id]; !ok {
			return fmt.Errorf("rules: unknown rule %q in overrides", id)
		}
		if label == SeverityOff {
			continue
		}
		if _, ok := diag.ParseSeverity(label); !ok {
			return fmt.Errorf("rules: unknown severity %q for rule %q", label, id)
		}
	}
	return nil
}

// Check runs every registered rule against the document. overrides maps
// rule ID to a severity label ("off" skips the rule, any other label forces
// the severity of everything the rule reports).
func (reg *Registry) Check(doc *mddoc.Document, cfg Config, r diag.Reporter, overrides map[string]string) {
	for _, rule := range reg.All() {
		target := r
		if label, ok := overrides[rule.ID()]; ok {
			if label == SeverityOff {
				continue
			}
			if sev, ok := diag.ParseSeverity(label); ok {
				target = severityOverrideReporter{next: r, sev: sev}
			}
		}
		rule.Check(doc, cfg, target)
	}
}

// severityOverrideReporter принудительно выставляет severity всем
// диагностикам правила.
type severityOverrideReporter struct {
	next diag.Reporter
	sev  diag.Severity
}

func (r severityOverrideReporter) Report(code diag.Code, _ diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.next.Report(code, r.sev, primary, msg, notes, fixes)
}
