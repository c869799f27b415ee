package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"factorlint/internal/driver"
	"factorlint/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file.md]",
	Short: "Apply available fixes to a document",
	Long:  "Run the check, surface available fixes, and apply them according to the chosen strategy.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all available fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "report changes without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	applyOpts := fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	manifest, hasManifest, err := loadProjectManifest("")
	if err != nil {
		return err
	}

	checkOpts := driver.CheckOptions{MaxDiagnostics: maxDiagnostics}
	if hasManifest {
		checkOpts.ExpectedSections = manifest.Config.Document.Sections
		checkOpts.SectionLevel = manifest.Config.Document.Level
		checkOpts.RuleSeverities = manifest.Config.Rules
	}

	var target string
	switch {
	case len(args) == 1:
		target = args[0]
	case hasManifest:
		target, err = resolveDocumentPath(manifest)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%s", noManifestMessage)
	}

	result, err := driver.CheckFile(cmd.Context(), target, checkOpts)
	if err != nil {
		return fmt.Errorf("fix: check failed: %w", err)
	}

	res, applyErr := fix.Apply(result.FileSet, result.Bag.Items(), applyOpts)
	return handleApplyResult(res, applyErr, dryRun)
}

func handleApplyResult(res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res != nil {
		for _, applied := range res.Applied {
			fmt.Fprintf(os.Stdout, "applied %s: %s (%s)\n", applied.ID, applied.Title, applied.PrimaryPath)
		}
		for _, skipped := range res.Skipped {
			fmt.Fprintf(os.Stdout, "skipped %s: %s\n", skipped.ID, skipped.Reason)
		}
		for _, change := range res.FileChanges {
			verb := "updated"
			if dryRun {
				verb = "would update"
			}
			fmt.Fprintf(os.Stdout, "%s %s (%d edit(s))\n", verb, change.Path, change.EditCount)
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) {
			fmt.Fprintln(os.Stdout, "nothing to fix")
			return nil
		}
		return applyErr
	}
	return nil
}
