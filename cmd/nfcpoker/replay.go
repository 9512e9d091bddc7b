package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/coder/quartz"
	"github.com/nfcpoker/nfcpoker/cmd/nfcpoker/shared"
	"github.com/nfcpoker/nfcpoker/internal/display"
	"github.com/nfcpoker/nfcpoker/internal/replay"
	"github.com/nfcpoker/nfcpoker/internal/tui"
)

// ReplayCmd steps through one hand, interactively or as plain text.
type ReplayCmd struct {
	File  string        `arg:"" name:"file" type:"existingfile" help:"Hand log file"`
	Hand  int           `required:"" help:"Hand number to replay"`
	Plain bool          `help:"Print every step instead of opening the viewer"`
	Auto  bool          `help:"Advance automatically"`
	Delay time.Duration `help:"Delay between automatic steps (defaults to replay.auto_delay_ms)"`
}

func (c *ReplayCmd) Run(g *Globals) error {
	logger := g.logger()
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	session, err := parseFile(logger, cfg, c.File)
	if err != nil {
		return err
	}
	cursor, err := replay.NewCursor(session, c.Hand)
	if err != nil {
		return fmt.Errorf("%s: hand %d: %w", c.File, c.Hand, err)
	}

	delay := c.Delay
	if delay <= 0 {
		delay = cfg.AutoDelay()
	}
	ctx := shared.SetupSignalHandler(logger)
	r := g.renderer(cfg.Player.Seat)

	switch {
	case c.Plain && c.Auto:
		player := replay.NewAutoPlayer(quartz.NewReal(), delay)
		return playFrames(ctx, os.Stdout, r, cursor, player.Start(ctx, cursor, cursor.Start()))
	case c.Plain:
		return printFrames(os.Stdout, r, cursor)
	}

	tuiLogger, closeLog, err := tui.OpenLogger(cfg.Replay.LogFile, cfg.Replay.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	tuiLogger.Info("Starting replay", "file", c.File, "hand", c.Hand, "steps", cursor.Len())
	model := tui.NewReplayModel(cursor, r, tuiLogger)
	model.SetAutoDelay(delay)
	model.SetAutoStart(c.Auto)
	return tui.Run(ctx, model)
}

func writeFrame(w io.Writer, r *display.Renderer, total int, f replay.Frame) error {
	_, err := fmt.Fprintf(w, "[%d/%d] %s\n%s\n", f.Index+1, total, f.Step.Label(), r.Table(f.Table))
	return err
}

// printFrames writes every frame of the hand at once.
func printFrames(w io.Writer, r *display.Renderer, cursor replay.Cursor) error {
	if _, err := fmt.Fprintf(w, "Hand #%d\n%s\n", cursor.Hand.Number, r.Table(cursor.Start())); err != nil {
		return err
	}
	for _, f := range replay.Frames(cursor) {
		if err := writeFrame(w, r, cursor.Len(), f); err != nil {
			return err
		}
	}
	return nil
}

// playFrames writes frames as they arrive until the channel closes.
func playFrames(ctx context.Context, w io.Writer, r *display.Renderer, cursor replay.Cursor, frames <-chan replay.Frame) error {
	if _, err := fmt.Fprintf(w, "Hand #%d\n%s\n", cursor.Hand.Number, r.Table(cursor.Start())); err != nil {
		return err
	}
	for f := range frames {
		if err := writeFrame(w, r, cursor.Len(), f); err != nil {
			return err
		}
	}
	return ctx.Err()
}
