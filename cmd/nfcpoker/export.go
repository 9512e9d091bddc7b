package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nfcpoker/nfcpoker/internal/config"
	"github.com/nfcpoker/nfcpoker/internal/fileutil"
	"github.com/nfcpoker/nfcpoker/internal/phh"
)

// ExportCmd converts a hand log into a PHH session file, or one .phh file per hand.
type ExportCmd struct {
	File    string `arg:"" name:"file" type:"existingfile" help:"Hand log file"`
	Out     string `short:"o" help:"Output path (defaults to <export.dir>/<name>.phhs, or <export.dir>/<name>/ with --per-hand)"`
	Variant string `help:"PHH variant code (defaults to export.variant)"`
	PerHand bool   `help:"Write each hand to its own .phh file in the output directory"`
}

func (c *ExportCmd) Run(g *Globals) error {
	logger := g.logger()
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	session, err := parseFile(logger, cfg, c.File)
	if err != nil {
		return err
	}

	if session.Empty() {
		logger.Warn().Str("file", c.File).Msg("Log has no hands, exporting an empty session")
	}

	hands := phh.FromSession(session, phh.ExportOptions{
		Table:   tableName(c.File),
		Variant: c.variant(cfg),
	})

	out := c.outputPath(cfg)
	if c.PerHand {
		err = writeHandFiles(out, hands)
	} else {
		err = writeSessionFile(out, hands)
	}
	if err != nil {
		return err
	}

	logger.Info().
		Str("file", c.File).
		Str("out", out).
		Bool("per_hand", c.PerHand).
		Int("hands", len(hands)).
		Msg("Exported PHH")
	return nil
}

func writeSessionFile(out string, hands []*phh.HandHistory) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := fileutil.WriteAtomic(out, 0o644, func(w io.Writer) error {
		return phh.EncodeSession(w, hands)
	}); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return nil
}

// writeHandFiles writes <dir>/<n>.phh per hand, numbered like the sections of
// a session file.
func writeHandFiles(dir string, hands []*phh.HandHistory) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	var buf bytes.Buffer
	for i, hand := range hands {
		buf.Reset()
		if err := phh.Encode(&buf, hand); err != nil {
			return err
		}
		path := filepath.Join(dir, strconv.Itoa(i+1)+".phh")
		if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func (c *ExportCmd) outputPath(cfg *config.Config) string {
	if c.Out != "" {
		return c.Out
	}
	name := tableName(c.File)
	if c.PerHand {
		return filepath.Join(cfg.Export.Dir, name)
	}
	return filepath.Join(cfg.Export.Dir, name+".phhs")
}

func tableName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func (c *ExportCmd) variant(cfg *config.Config) string {
	if c.Variant != "" {
		return c.Variant
	}
	return cfg.Export.Variant
}
