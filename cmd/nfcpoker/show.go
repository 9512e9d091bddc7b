package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nfcpoker/nfcpoker/internal/display"
	"github.com/nfcpoker/nfcpoker/internal/handlog"
	"github.com/nfcpoker/nfcpoker/internal/replay"
)

// ShowCmd prints what a hand log contains.
type ShowCmd struct {
	File        string `arg:"" name:"file" type:"existingfile" help:"Hand log file"`
	Hand        int    `help:"Show a single hand in full"`
	Diagnostics bool   `short:"d" help:"List lines the parser skipped"`
}

func (c *ShowCmd) Run(g *Globals) error {
	logger := g.logger()
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	session, err := parseFile(logger, cfg, c.File)
	if err != nil {
		return err
	}
	return c.print(os.Stdout, g.renderer(cfg.Player.Seat), session)
}

func (c *ShowCmd) print(w io.Writer, r *display.Renderer, session *handlog.Session) error {
	out := r.SessionSummary(session) + "\n"

	switch {
	case session.Empty():
		out += "No hands recorded\n"
	case c.Hand > 0:
		hand, ok := session.Hand(c.Hand)
		if !ok {
			return fmt.Errorf("hand %d: %w", c.Hand, replay.ErrHandNotFound)
		}
		out += r.Hand(session.Config, hand)
	default:
		out += r.HandList(session)
	}

	if c.Diagnostics && len(session.Diagnostics) > 0 {
		out += "\n" + r.Diagnostics(session.Diagnostics)
	}

	_, err := io.WriteString(w, out)
	return err
}
