package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/lbx/internal/tasks"
)

// progressUpdateMsg wraps one engine update for the Elm loop.
type progressUpdateMsg tasks.ProgressUpdate

// exportCompleteMsg signals that the engine goroutine finished.
type exportCompleteMsg struct {
	result *tasks.ExportResult
	err    error
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	engine       *tasks.ExportEngine
	bar          progress.Model
	help         help.Model
	keys         keyMap
	progressChan chan tasks.ProgressUpdate
	current      tasks.ProgressUpdate
	gamesParsed  int
	platforms    int
	result       *tasks.ExportResult
	err          error
	done         bool
	width        int
}

// NewModel creates the export progress model. The export itself starts
// when the program calls Init.
func NewModel(ctx context.Context, engine *tasks.ExportEngine) *Model {
	return &Model{
		ctx:    ctx,
		engine: engine,
		bar:    progress.New(progress.WithDefaultGradient()),
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init starts the export goroutine and begins draining its progress.
func (m *Model) Init() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.Run(m.ctx, m.progressChan)
		m.result = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

// Update handles messages from the Elm loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case progressUpdateMsg:
		m.current = tasks.ProgressUpdate(msg)
		m.apply(tasks.ProgressUpdate(msg))
		return m, m.waitForProgress()

	case exportCompleteMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, nil

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		if model, ok := bar.(progress.Model); ok {
			m.bar = model
		}
		return m, cmd
	}

	return m, nil
}

// apply folds one update into the displayed counters.
func (m *Model) apply(update tasks.ProgressUpdate) {
	switch update.Phase {
	case tasks.ScanPlatforms:
		m.platforms = update.Total
	case tasks.ParseGames:
		if update.Data == nil {
			m.gamesParsed = update.Step
		}
	}
}

// View renders the UI based on the current state.
func (m *Model) View() string {
	title := styles.title.Render("lbx export")
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())

	if m.done {
		if m.err != nil {
			return fmt.Sprintf("%s\n%s\n\n%s\n",
				title,
				styles.err.Render(fmt.Sprintf("Export failed: %v", m.err)),
				helpView,
			)
		}
		summary := fmt.Sprintf("Exported %d games and %d playlists from %d platforms",
			len(m.result.Games), len(m.result.Playlists), m.result.Platforms)
		if m.result.Root == nil {
			summary += styles.warn.Render(" (folder tree skipped)")
		}
		return fmt.Sprintf("%s\n%s\n\n%s\n", title, styles.ok.Render(summary), helpView)
	}

	bar := m.bar.ViewAs(m.percent())
	status := m.current.Message
	if status == "" {
		status = "Starting export..."
	}
	counter := styles.help.Render(fmt.Sprintf("%d games parsed", m.gamesParsed))
	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n\n%s\n", title, status, bar, counter, helpView)
}

// percent estimates overall completion from the current phase.
func (m *Model) percent() float64 {
	update := m.current
	if update.Total > 0 && update.Phase != tasks.ScanPlatforms {
		return float64(update.Step) / float64(update.Total)
	}
	return 0
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.progressChan
		if !ok {
			return exportCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}
