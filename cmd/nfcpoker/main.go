package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Profit  ProfitCmd        `cmd:"" help:"Report chip profit for a seat across one or more hand logs"`
	Show    ShowCmd          `cmd:"" help:"Summarise a hand log"`
	Replay  ReplayCmd        `cmd:"" help:"Step through a single hand"`
	Export  ExportCmd        `cmd:"" help:"Export a hand log as a PHH session file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("nfcpoker"),
		kong.Description("Hand log tools for NFC poker tables"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
