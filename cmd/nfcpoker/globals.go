package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/nfcpoker/nfcpoker/cmd/nfcpoker/shared"
	"github.com/nfcpoker/nfcpoker/internal/config"
	"github.com/nfcpoker/nfcpoker/internal/display"
	"github.com/nfcpoker/nfcpoker/internal/handlog"
	"github.com/rs/zerolog"
)

// Globals are flags shared by every command.
type Globals struct {
	Config    string `kong:"default='nfcpoker.hcl',help='Path to HCL config file'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
	LogFormat string `kong:"default='console',enum='console,json',help='Log output format (console or json)'"`
	NoColor   bool   `kong:"help='Disable coloured output'"`
}

func (g *Globals) logger() zerolog.Logger {
	return shared.NewLogger(os.Stderr, g.LogFormat, g.Debug, g.NoColor)
}

func (g *Globals) loadConfig() (*config.Config, error) {
	return config.Load(g.Config)
}

func (g *Globals) renderer(seat int) *display.Renderer {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	} else {
		display.Plain(os.Stdout)
	}
	return display.NewRenderer(seat)
}

// parseFile reads one hand log with the config's table fallbacks.
func parseFile(logger zerolog.Logger, cfg *config.Config, path string) (*handlog.Session, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parser := handlog.NewParser(
		logger.With().Str("file", path).Logger(),
		handlog.WithDefaults(cfg.SessionDefaults()),
	)
	session, err := parser.ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	logger.Debug().
		Str("file", path).
		Int("hands", len(session.Hands)).
		Int("diagnostics", len(session.Diagnostics)).
		Msg("Parsed hand log")
	return session, nil
}
