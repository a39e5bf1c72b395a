package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lbx/internal/shared"
	"github.com/desertthunder/lbx/internal/ui"
)

// TUI runs the export with an interactive progress display.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	config := r.config
	if err := config.Validate(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/lbx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	engine, closeEngine, err := r.buildEngine(config)
	if err != nil {
		return err
	}
	defer closeEngine()

	model := ui.NewModel(ctx, engine)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
