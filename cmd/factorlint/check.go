package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"factorlint/internal/diag"
	"factorlint/internal/diagfmt"
	"factorlint/internal/driver"
	"factorlint/internal/source"
	"factorlint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.md|directory]",
	Short: "Check document structure against the contract",
	Long:  `Check a Markdown document (or all *.md files within a directory) against the structural contract: numbered sections, summary table, fences and references`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

// init registers CLI flags for the check command used by runCheck.
func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("cache", false, "skip re-checking unchanged clean files")
	checkCmd.Flags().Bool("ui", false, "interactive progress for directory runs")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// runCheck executes the "check" command: resolves the target from the
// argument or the manifest, runs the lint driver, renders the chosen
// format, and exits with a non-zero status when errors are present.
func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "sarif", "short":
		// supported
	default:
		return fmt.Errorf("unknown format value: %s", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}

	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}

	enableCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	useUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	manifest, hasManifest, err := loadProjectManifest("")
	if err != nil {
		return err
	}

	opts := driver.CheckOptions{
		MaxDiagnostics:   maxDiagnostics,
		IgnoreWarnings:   noWarnings,
		WarningsAsErrors: warningsAsErrors,
		EnableCache:      enableCache,
	}
	if hasManifest {
		opts.ExpectedSections = manifest.Config.Document.Sections
		opts.SectionLevel = manifest.Config.Document.Level
		opts.RuleSeverities = manifest.Config.Rules
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

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fileSet *source.FileSet
		merged  *diag.Bag
		files   int
	)

	if st.IsDir() {
		var results []driver.CheckDirResult
		if useUI && isTerminal(os.Stdout) {
			fileSet, results, err = runCheckDirWithUI(cmd.Context(), target, opts, jobs)
		} else {
			fileSet, results, err = driver.CheckDir(cmd.Context(), target, opts, jobs, nil)
		}
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		files = len(results)
		merged = driver.MergeBags(results, maxDiagnostics)
	} else {
		result, err := driver.CheckFile(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		fileSet = result.FileSet
		merged = result.Bag
		files = 1
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, merged, fileSet, diagfmt.PrettyOpts{
			Color:     colorEnabled(),
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowFixes: suggest,
		})
		if !quiet && isTerminal(os.Stdout) {
			errCount, warnCount, _ := merged.CountBySeverity()
			diagfmt.WriteSummary(os.Stdout, files, errCount, warnCount)
		}

	case "json":
		if err := diagfmt.JSON(os.Stdout, merged, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
		}); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}

	case "sarif":
		if err := diagfmt.Sarif(os.Stdout, merged, fileSet, diagfmt.SarifRunMeta{
			ToolName:       "factorlint",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args,
		}); err != nil {
			return fmt.Errorf("failed to encode sarif: %w", err)
		}

	case "short":
		out := diag.FormatShortDiagnostics(merged.Items(), fileSet, withNotes)
		if out != "" {
			fmt.Fprintln(os.Stdout, out)
		}
	}

	if merged.HasErrors() {
		os.Exit(1)
	}
	return nil
}
