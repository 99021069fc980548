package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"enumrange/internal/driver"
	"enumrange/internal/pipeline"
	"enumrange/internal/source"
	"enumrange/internal/ui"
)

type expandOutcome struct {
	fileSet *source.FileSet
	results []*driver.Result
	err     error
}

func runExpandDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options, jobs int) (*source.FileSet, []*driver.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan expandOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = pipeline.ChannelSink{Ch: events}
		fs, results, err := driver.ExpandDir(ctx, dir, optsCopy, jobs)
		outcomeCh <- expandOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
