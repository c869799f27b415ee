package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"factorlint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List registered rules and their effective severities",
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	manifest, hasManifest, err := loadProjectManifest("")
	if err != nil {
		return err
	}

	overrides := map[string]string{}
	if hasManifest && manifest.Config.Rules != nil {
		overrides = manifest.Config.Rules
	}

	registry := rules.Default()
	if err := registry.ValidateOverrides(overrides); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tSEVERITY\tDESCRIPTION")
	for _, rule := range registry.All() {
		severity := "default"
		if label, ok := overrides[rule.ID()]; ok {
			severity = label
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", rule.ID(), severity, rule.Describe())
	}
	return w.Flush()
}
