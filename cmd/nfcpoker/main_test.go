package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"github.com/nfcpoker/nfcpoker/internal/config"
	"github.com/nfcpoker/nfcpoker/internal/display"
	"github.com/nfcpoker/nfcpoker/internal/handlog"
	"github.com/nfcpoker/nfcpoker/internal/phh"
	"github.com/nfcpoker/nfcpoker/internal/profit"
	"github.com/nfcpoker/nfcpoker/internal/replay"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const winnerLog = `Game Start
players:3
pot:1000
sb:10
bb:20
hand:1
dealer:0
Stacks:[1000,1000,1000]
p2:sb
p3:bb
p1:c-20
p2:c-10
p3:F
W-p1:50
hand:2
dealer:1
Stacks:[1030,990,980]
p3:sb
p1:bb
Winner:p2-1200
`

const chainedLog = `players:2
pot:500
hand:1
Stacks:[500,500]
p1:sb
p2:bb
p1:F
W-p2:30
hand:2
Stacks:[490,510]
`

func writeLog(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testGlobals(t *testing.T) *Globals {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	return &Globals{Config: filepath.Join(t.TempDir(), "none.hcl"), NoColor: true}
}

func TestProfitCommand(t *testing.T) {
	g := testGlobals(t)
	cfg, err := g.loadConfig()
	require.NoError(t, err)
	files := []string{writeLog(t, "a.log", winnerLog), writeLog(t, "b.log", chainedLog)}

	t.Run("single seat across files", func(t *testing.T) {
		cmd := &ProfitCmd{Files: files, Seat: 2}
		reports, err := cmd.compute(context.Background(), zerolog.Nop(), cfg)
		require.NoError(t, err)
		require.Len(t, reports, 2)

		assert.Equal(t, files[0], reports[0].File)
		assert.Equal(t, 200, reports[0].Results[0].Profit)
		assert.Equal(t, profit.MethodFinalWinner, reports[0].Results[0].Method)
		assert.Equal(t, 10, reports[1].Results[0].Profit)

		var out bytes.Buffer
		require.NoError(t, cmd.print(&out, display.NewRenderer(2), reports))
		assert.Contains(t, out.String(), "+$200")
		assert.Contains(t, out.String(), "Total profit across 2 files: 210")
	})

	t.Run("all seats", func(t *testing.T) {
		cmd := &ProfitCmd{Files: files[1:], AllSeats: true}
		reports, err := cmd.compute(context.Background(), zerolog.Nop(), cfg)
		require.NoError(t, err)
		require.Len(t, reports[0].Results, 2)
		assert.Equal(t, -10, reports[0].Results[0].Profit)
		assert.Equal(t, 10, reports[0].Results[1].Profit)
	})

	t.Run("seat from config", func(t *testing.T) {
		withSeat := *cfg
		withSeat.Player.Seat = 1
		cmd := &ProfitCmd{Files: files[:1]}
		reports, err := cmd.compute(context.Background(), zerolog.Nop(), &withSeat)
		require.NoError(t, err)
		assert.Equal(t, 1, reports[0].Results[0].Seat)
	})

	t.Run("missing seat", func(t *testing.T) {
		cmd := &ProfitCmd{Files: files}
		_, err := cmd.compute(context.Background(), zerolog.Nop(), cfg)
		assert.ErrorIs(t, err, errNoSeat)
	})

	t.Run("invalid seat", func(t *testing.T) {
		cmd := &ProfitCmd{Files: files, Seat: 3}
		_, err := cmd.compute(context.Background(), zerolog.Nop(), cfg)
		assert.ErrorIs(t, err, profit.ErrInvalidSeat)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cmd := &ProfitCmd{Files: files, Seat: 1}
		_, err := cmd.compute(ctx, zerolog.Nop(), cfg)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestShowCommand(t *testing.T) {
	session := handlog.Parse(winnerLog + "bogus\n")
	r := display.NewRenderer(0)

	var out bytes.Buffer
	require.NoError(t, (&ShowCmd{Diagnostics: true}).print(&out, r, session))
	assert.Contains(t, out.String(), "Hands: 2")
	assert.Contains(t, out.String(), "Final winner: P2 with $1200")
	assert.Contains(t, out.String(), "Hand #2 • dealer P2")
	assert.Contains(t, out.String(), `"bogus"`)

	out.Reset()
	require.NoError(t, (&ShowCmd{Hand: 1}).print(&out, r, session))
	assert.Contains(t, out.String(), "P1 wins $50!")

	err := (&ShowCmd{Hand: 9}).print(&out, r, session)
	assert.True(t, errors.Is(err, replay.ErrHandNotFound))
}

func TestPrintFrames(t *testing.T) {
	session := handlog.Parse(winnerLog)
	cursor, err := replay.NewCursor(session, 1)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printFrames(&out, display.NewRenderer(0), cursor))

	text := out.String()
	assert.Contains(t, text, "Hand #1")
	assert.Contains(t, text, "[1/7] dealer:0")
	assert.Contains(t, text, "[7/7] W-p1:50")
	assert.Equal(t, 7, strings.Count(text, "Pot: $")-1)
}

func TestPlayFrames(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	session := handlog.Parse(chainedLog)
	cursor, err := replay.NewCursor(session, 1)
	require.NoError(t, err)

	mockClock := quartz.NewMock(t)
	player := replay.NewAutoPlayer(mockClock, time.Second)

	src := player.Start(ctx, cursor, cursor.Start())
	relay := make(chan replay.Frame, cursor.Len())
	for range cursor.Len() {
		mockClock.Advance(time.Second).MustWait(ctx)
		relay <- <-src
	}
	close(relay)

	var out bytes.Buffer
	require.NoError(t, playFrames(ctx, &out, display.NewRenderer(0), cursor, relay))
	assert.Contains(t, out.String(), "[1/4] p1:sb")
	assert.Contains(t, out.String(), "[4/4] W-p2:30")
}

func TestExportCommand(t *testing.T) {
	g := testGlobals(t)
	file := writeLog(t, "table-7.log", winnerLog)
	out := filepath.Join(t.TempDir(), "nested", "session.phhs")

	require.NoError(t, (&ExportCmd{File: file, Out: out}).Run(g))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	hands, err := phh.DecodeSession(f)
	require.NoError(t, err)
	require.Len(t, hands, 2)
	assert.Equal(t, "table-7", hands[0].Table)
	assert.Equal(t, phh.DefaultVariant, hands[0].Variant)
}

func TestExportCommandPerHand(t *testing.T) {
	g := testGlobals(t)
	file := writeLog(t, "table-7.log", winnerLog)
	dir := filepath.Join(t.TempDir(), "hands")

	require.NoError(t, (&ExportCmd{File: file, Out: dir, Variant: "FT", PerHand: true}).Run(g))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for name, id := range map[string]string{"1.phh": "hand-1", "2.phh": "hand-2"} {
		var hand phh.HandHistory
		_, err := toml.DecodeFile(filepath.Join(dir, name), &hand)
		require.NoError(t, err)
		assert.Equal(t, id, hand.HandID)
		assert.Equal(t, "table-7", hand.Table)
		assert.Equal(t, "FT", hand.Variant)
	}
}

func TestExportOutputPath(t *testing.T) {
	cfg := config.Default()
	cmd := &ExportCmd{File: "/logs/friday.txt"}
	assert.Equal(t, filepath.Join("exports", "friday.phhs"), cmd.outputPath(cfg))
	assert.Equal(t, "NT", cmd.variant(cfg))

	cmd.Out, cmd.Variant = "x.phhs", "FT"
	assert.Equal(t, "x.phhs", cmd.outputPath(cfg))
	assert.Equal(t, "FT", cmd.variant(cfg))

	perHand := &ExportCmd{File: "/logs/friday.txt", PerHand: true}
	assert.Equal(t, filepath.Join("exports", "friday"), perHand.outputPath(cfg))
}

func TestShowEmptyLog(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&ShowCmd{Hand: 3}).print(&out, display.NewRenderer(0), handlog.Parse("players:4\n")))
	assert.Contains(t, out.String(), "4 players")
	assert.Contains(t, out.String(), "No hands recorded")
}
