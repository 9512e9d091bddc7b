package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/nfcpoker/nfcpoker/internal/display"
	"github.com/nfcpoker/nfcpoker/internal/handlog"
	"github.com/nfcpoker/nfcpoker/internal/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewerLog = `players:2
pot:500
hand:1
dealer:1
Stacks:[500,500]
p1:sb
p2:bb
p1:c-10
com:2-C,7-D,9-S
W-p2:40
`

func newTestModel(t *testing.T) *ReplayModel {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests

	cursor, err := replay.NewCursor(handlog.Parse(viewerLog), 1)
	require.NoError(t, err)
	return NewReplayModel(cursor, display.NewRenderer(1), logger)
}

func press(m *ReplayModel, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestReplayModelStepping(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, 6, m.cursor.Len())
	assert.Equal(t, 0, m.cursor.Index)

	t.Run("next steps forward", func(t *testing.T) {
		press(m, "n")
		press(m, " ")
		assert.Equal(t, 2, m.cursor.Index)
		assert.Equal(t, []string{"Dealer: P2", "P1 posts SB"}, m.history)
		assert.Equal(t, 10, m.table.Pot)
	})

	t.Run("stops at the end", func(t *testing.T) {
		for range 10 {
			press(m, "n")
		}
		assert.True(t, m.cursor.Done())
		assert.Equal(t, 0, m.table.Pot)
		assert.Len(t, m.history, 6)
		assert.Equal(t, "P2 wins $40!", m.table.Message)
	})

	t.Run("reset returns to the start", func(t *testing.T) {
		press(m, "r")
		assert.Equal(t, 0, m.cursor.Index)
		assert.Empty(t, m.history)
		assert.Equal(t, 0, m.table.Pot)
		assert.Equal(t, 500, m.table.Seats[0].Stack)
	})
}

func TestReplayModelAutoPlay(t *testing.T) {
	m := newTestModel(t)

	cmd := press(m, "a")
	require.NotNil(t, cmd)
	assert.True(t, m.auto)

	// Ticks from the current run advance the hand.
	_, next := m.Update(autoTickMsg{seq: m.autoSeq})
	assert.Equal(t, 1, m.cursor.Index)
	assert.NotNil(t, next)

	// A stale tick is ignored.
	_, stale := m.Update(autoTickMsg{seq: m.autoSeq - 1})
	assert.Nil(t, stale)
	assert.Equal(t, 1, m.cursor.Index)

	// Manual stepping cancels auto-play.
	press(m, "n")
	assert.False(t, m.auto)
	_, after := m.Update(autoTickMsg{seq: m.autoSeq})
	assert.Nil(t, after)
	assert.Equal(t, 2, m.cursor.Index)

	// Auto-play runs to the end and then stops itself.
	press(m, "a")
	for m.auto {
		m.Update(autoTickMsg{seq: m.autoSeq})
	}
	assert.True(t, m.cursor.Done())
	assert.Nil(t, press(m, "a"), "auto-play does not start on a finished hand")
}

func TestReplayModelView(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	press(m, "n")
	view := m.View()
	assert.Contains(t, view, "Hand #1")
	assert.Contains(t, view, "step 1/6")
	assert.Contains(t, view, "Dealer: P2")
	assert.Contains(t, view, "P1 (you)")

	m.SetAutoDelay(50 * time.Millisecond)
	press(m, "a")
	assert.Contains(t, m.View(), "AUTO")
}

func TestReplayModelQuit(t *testing.T) {
	m := newTestModel(t)
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "", m.View())
}

func TestOpenLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.log")
	logger, closeLog, err := OpenLogger(path, "debug")
	require.NoError(t, err)

	logger.Debug("hello", "hand", 1)
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")

	_, _, err = OpenLogger(filepath.Join(t.TempDir(), "missing", "x.log"), "info")
	assert.Error(t, err)
}

func TestReplayModelAutoStart(t *testing.T) {
	m := newTestModel(t)
	assert.Nil(t, m.Init())

	m.SetAutoStart(true)
	require.NotNil(t, m.Init())
	assert.True(t, m.auto)
}
