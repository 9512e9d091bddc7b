// Package tui is the interactive hand replay viewer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/nfcpoker/nfcpoker/internal/display"
	"github.com/nfcpoker/nfcpoker/internal/replay"
)

// DefaultAutoDelay is the pause between steps while auto-playing.
const DefaultAutoDelay = 800 * time.Millisecond

// autoTickMsg advances an auto-play run. seq discards ticks from a run that
// was stopped or reset.
type autoTickMsg struct{ seq int }

// ReplayModel is the Bubble Tea model for stepping through one hand.
type ReplayModel struct {
	logger   *log.Logger
	renderer *display.Renderer

	cursor  replay.Cursor
	table   replay.Table
	history []string

	logViewport viewport.Model

	auto      bool
	autoStart bool
	autoDelay time.Duration
	autoSeq   int
	quitting  bool

	width  int
	height int
}

// NewReplayModel creates a viewer positioned before the first step of the
// cursor's hand.
func NewReplayModel(cursor replay.Cursor, renderer *display.Renderer, logger *log.Logger) *ReplayModel {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &ReplayModel{
		logger:      logger.WithPrefix("replay"),
		renderer:    renderer,
		logViewport: vp,
		autoDelay:   DefaultAutoDelay,
	}
	m.cursor, m.table = cursor.Reset()
	return m
}

// SetAutoDelay changes the auto-play interval.
func (m *ReplayModel) SetAutoDelay(d time.Duration) {
	if d > 0 {
		m.autoDelay = d
	}
}

// SetAutoStart makes the viewer begin auto-playing as soon as it starts.
func (m *ReplayModel) SetAutoStart(on bool) {
	m.autoStart = on
}

// Init implements tea.Model.
func (m *ReplayModel) Init() tea.Cmd {
	if m.autoStart {
		return m.toggleAuto()
	}
	return nil
}

// Update handles key presses, window resizes and auto-play ticks.
func (m *ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case autoTickMsg:
		if !m.auto || msg.seq != m.autoSeq {
			return m, nil
		}
		m.step()
		if m.cursor.Done() {
			m.auto = false
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "n", " ", "space", "right", "enter":
			m.stopAuto()
			m.step()
		case "a":
			return m, m.toggleAuto()
		case "r":
			m.stopAuto()
			m.reset()
		case "up", "k":
			m.logViewport.ScrollUp(1)
		case "down", "j":
			m.logViewport.ScrollDown(1)
		case "home", "g":
			m.logViewport.GotoTop()
		case "end", "G":
			m.logViewport.GotoBottom()
		}
	}
	return m, nil
}

// step applies the next replay step, if any.
func (m *ReplayModel) step() {
	next, table, ok := m.cursor.Next(m.table)
	if !ok {
		return
	}
	m.cursor, m.table = next, table
	m.history = append(m.history, table.Message)
	m.logger.Debug("Step", "index", m.cursor.Index, "message", table.Message)
	m.refreshLog()
}

func (m *ReplayModel) reset() {
	m.cursor, m.table = m.cursor.Reset()
	m.history = nil
	m.logger.Debug("Reset", "hand", m.cursor.Hand.Number)
	m.refreshLog()
}

func (m *ReplayModel) toggleAuto() tea.Cmd {
	if m.auto {
		m.stopAuto()
		return nil
	}
	if m.cursor.Done() {
		return nil
	}
	m.auto = true
	m.autoSeq++
	m.logger.Info("Auto-play started", "delay", m.autoDelay)
	return m.tick()
}

func (m *ReplayModel) stopAuto() {
	if m.auto {
		m.auto = false
		m.autoSeq++
		m.logger.Info("Auto-play stopped", "index", m.cursor.Index)
	}
}

func (m *ReplayModel) tick() tea.Cmd {
	seq := m.autoSeq
	return tea.Tick(m.autoDelay, func(time.Time) tea.Msg {
		return autoTickMsg{seq: seq}
	})
}

func (m *ReplayModel) refreshLog() {
	m.logViewport.SetContent(LogStyle.Render(strings.Join(m.history, "\n")))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the table, the action log and the key help.
func (m *ReplayModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(fmt.Sprintf(" Hand #%d ", m.cursor.Hand.Number)) + " " + m.status()
	table := m.renderer.Table(m.table)
	help := HelpStyle.Render("n/space next • a auto • r reset • ↑↓ scroll • q quit")

	logHeight := m.height - lipgloss.Height(header) - lipgloss.Height(table) - lipgloss.Height(help) - 2
	m.logViewport.Width = max(1, m.width-2)
	m.logViewport.Height = max(1, logHeight)
	logPane := paneStyle.Width(m.logViewport.Width).Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, table, logPane, help)
}

func (m *ReplayModel) status() string {
	progress := StepStyle.Render(fmt.Sprintf("step %d/%d", m.cursor.Index, m.cursor.Len()))
	switch {
	case m.auto:
		return progress + " " + AutoStyle.Render("AUTO")
	case m.cursor.Done():
		return progress + " " + DoneStyle.Render("done")
	default:
		return progress
	}
}

// Run starts the viewer in the alternate screen and blocks until it exits
// or ctx is cancelled.
func Run(ctx context.Context, m *ReplayModel) error {
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("replay viewer: %w", err)
	}
	return nil
}
