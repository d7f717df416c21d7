package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"arkc/internal/driver"
	"arkc/internal/ui"
)

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

func runCheckDirWithUI(cmd *cobra.Command, title, dir string, files []string, opts driver.Options) (*driver.DirResult, error) {
	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		opts.Progress = func(ev driver.ProgressEvent) { events <- ev }
		res, err := driver.CheckDir(cmd.Context(), dir, opts)
		outcomeCh <- dirOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()))
	_, uiErr := program.Run()
	// UI мог выйти раньше: дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
