package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/nfcpoker/nfcpoker/cmd/nfcpoker/shared"
	"github.com/nfcpoker/nfcpoker/internal/config"
	"github.com/nfcpoker/nfcpoker/internal/display"
	"github.com/nfcpoker/nfcpoker/internal/profit"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ProfitCmd reports how many chips a seat won or lost.
type ProfitCmd struct {
	Files    []string `arg:"" name:"file" type:"existingfile" help:"Hand log files"`
	Seat     int      `short:"s" help:"Seat to report (defaults to player.seat from config)"`
	AllSeats bool     `help:"Report every seat of every file"`
}

var errNoSeat = errors.New("no seat given: pass --seat or set player.seat in the config file")

// fileProfit is the outcome for one log file.
type fileProfit struct {
	File    string
	Results []profit.Result
}

func (c *ProfitCmd) Run(g *Globals) error {
	logger := g.logger()
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	ctx := shared.SetupSignalHandler(logger)

	reports, err := c.compute(ctx, logger, cfg)
	if err != nil {
		return err
	}
	return c.print(os.Stdout, g.renderer(c.seat(cfg)), reports)
}

func (c *ProfitCmd) seat(cfg *config.Config) int {
	if c.Seat != 0 {
		return c.Seat
	}
	return cfg.Player.Seat
}

// compute parses every file concurrently; each goroutine owns its session.
func (c *ProfitCmd) compute(ctx context.Context, logger zerolog.Logger, cfg *config.Config) ([]fileProfit, error) {
	seat := c.seat(cfg)
	if !c.AllSeats && seat == 0 {
		return nil, errNoSeat
	}

	reports := make([]fileProfit, len(c.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range c.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			session, err := parseFile(logger, cfg, file)
			if err != nil {
				return err
			}

			report := fileProfit{File: file}
			if c.AllSeats {
				report.Results = profit.Summarize(session)
			} else {
				res, err := profit.Compute(session, seat)
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				report.Results = []profit.Result{res}
			}
			reports[i] = report

			logger.Debug().
				Str("file", file).
				Int("results", len(report.Results)).
				Msg("Computed profit")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *ProfitCmd) print(w io.Writer, r *display.Renderer, reports []fileProfit) error {
	var all []profit.Result
	for _, report := range reports {
		if len(reports) > 1 || c.AllSeats {
			if _, err := fmt.Fprintf(w, "%s\n", report.File); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, r.Profit(report.Results)); err != nil {
			return err
		}
		all = append(all, report.Results...)
	}

	if len(reports) > 1 {
		if _, err := fmt.Fprintf(w, "\nTotal profit across %d files: %d\n", len(reports), profit.Total(all)); err != nil {
			return err
		}
	}
	return nil
}
