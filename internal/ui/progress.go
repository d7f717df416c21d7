// Package ui renders a Bubble Tea progress view for directory runs.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"arkc/internal/driver"
)

const statusWidth = 8

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// fileRow: состояние одного файла в списке.
type fileRow struct {
	path     string
	status   string
	stage    driver.Stage
	elapsed  time.Duration
	finished bool
}

type progressModel struct {
	title    string
	events   <-chan driver.ProgressEvent
	spinner  spinner.Model
	bar      progress.Model
	rows     []fileRow
	byPath   map[string]int
	runLabel string
	width    int
	done     bool
}

type eventMsg driver.ProgressEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file progress
// of a directory run. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.ProgressEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	rows := make([]fileRow, len(files))
	byPath := make(map[string]int, len(files))
	for i, file := range files {
		rows[i] = fileRow{path: file, status: "queued"}
		byPath[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    rows,
		byPath:  byPath,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.ProgressEvent(msg)), m.waitEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case progress.FrameMsg:
		next, cmd := m.bar.Update(msg)
		m.bar = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := m.title
	if m.runLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.runLabel)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	// статус, время, путь
	nameWidth := max(m.width-statusWidth-12, 20)
	for _, row := range m.rows {
		elapsed := ""
		if row.elapsed > 0 {
			elapsed = fmt.Sprintf("%6.1fms", float64(row.elapsed.Microseconds())/1000)
		}
		fmt.Fprintf(&b, "  %s %s %s\n",
			statusStyle(row.status).Render(fmt.Sprintf("%*s", statusWidth, row.status)),
			dimStyle.Render(fmt.Sprintf("%8s", elapsed)),
			truncate(row.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.counts()))
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) counts() string {
	finished, failed, cached := 0, 0, 0
	for _, row := range m.rows {
		if !row.finished {
			continue
		}
		finished++
		switch row.status {
		case "error":
			failed++
		case "cached":
			cached++
		}
	}
	return fmt.Sprintf("%d/%d files, %d with errors, %d cached", finished, len(m.rows), failed, cached)
}

func (m *progressModel) waitEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// apply обновляет строку файла; событие без файла относится ко всему прогону.
func (m *progressModel) apply(ev driver.ProgressEvent) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	if ev.File == "" {
		if label != "" {
			m.runLabel = label
		}
		return nil
	}
	idx, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[idx]
	if label != "" {
		row.status = label
		row.stage = ev.Stage
	}
	if ev.Elapsed > 0 {
		row.elapsed = ev.Elapsed
	}
	switch ev.Status {
	case driver.StatusDone, driver.StatusError, driver.StatusCached:
		row.finished = true
	}
	return m.bar.SetPercent(m.Percent())
}

// Percent returns the share of work done, counting finished files as whole
// units and in-flight files by stage.
func (m *progressModel) Percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, row := range m.rows {
		if row.finished {
			total++
			continue
		}
		total += stageWeight(row.stage)
	}
	return total / float64(len(m.rows))
}

func stageWeight(stage driver.Stage) float64 {
	switch stage {
	case driver.StageParse:
		return 0.3
	case driver.StageEmit:
		return 0.8
	default:
		return 0
	}
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusDone:
		return "done"
	case driver.StatusError:
		return "error"
	case driver.StatusCached:
		return "cached"
	case driver.StatusWorking:
		switch stage {
		case driver.StageLoad:
			return "loading"
		case driver.StageParse:
			return "parsing"
		case driver.StageEmit:
			return "emitting"
		}
	}
	return ""
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "done", "cached":
		return okStyle
	case "error":
		return errStyle
	case "loading", "parsing", "emitting":
		return workingStyle
	default:
		return idleStyle
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
