package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"factorlint/internal/driver"
	"factorlint/internal/source"
	"factorlint/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.CheckDirResult
	err     error
}

// runCheckDirWithUI lints a directory while rendering interactive progress.
func runCheckDirWithUI(ctx context.Context, dir string, opts driver.CheckOptions, jobs int) (*source.FileSet, []driver.CheckDirResult, error) {
	files, err := driver.ListMarkdownFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		fileSet, results, err := driver.CheckDir(ctx, dir, opts, jobs, func(ev driver.Event) {
			events <- ev
		})
		outcomeCh <- checkOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
