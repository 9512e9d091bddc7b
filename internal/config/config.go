// Package config loads the optional HCL configuration for the nfcpoker CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/nfcpoker/nfcpoker/internal/handlog"
	"github.com/nfcpoker/nfcpoker/internal/phh"
)

// DefaultFilename is the config file looked up when none is given.
const DefaultFilename = "nfcpoker.hcl"

// Config is the complete CLI configuration.
type Config struct {
	Table  TableSettings
	Player PlayerSettings
	Replay ReplaySettings
	Export ExportSettings
}

// TableSettings are the fallbacks for logs that omit their config lines.
type TableSettings struct {
	Players     int `hcl:"players,optional"`
	StartingPot int `hcl:"starting_pot,optional"`
	SmallBlind  int `hcl:"small_blind,optional"`
	BigBlind    int `hcl:"big_blind,optional"`
}

// PlayerSettings identify the user at the table.
type PlayerSettings struct {
	Seat int `hcl:"seat,optional"`
}

// ReplaySettings configure the replay viewer
type ReplaySettings struct {
	AutoDelayMS int    `hcl:"auto_delay_ms,optional"`
	LogFile     string `hcl:"log_file,optional"`
	LogLevel    string `hcl:"log_level,optional"`
}

// ExportSettings configure PHH export
type ExportSettings struct {
	Dir     string `hcl:"dir,optional"`
	Variant string `hcl:"variant,optional"`
}

// fileConfig mirrors the file layout; every block is optional.
type fileConfig struct {
	Table  *TableSettings  `hcl:"table,block"`
	Player *PlayerSettings `hcl:"player,block"`
	Replay *ReplaySettings `hcl:"replay,block"`
	Export *ExportSettings `hcl:"export,block"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Table: TableSettings{
			Players:     handlog.DefaultPlayers,
			StartingPot: handlog.DefaultStartingPot,
			SmallBlind:  handlog.DefaultSmallBlind,
			BigBlind:    handlog.DefaultBigBlind,
		},
		Replay: ReplaySettings{
			AutoDelayMS: 800,
			LogFile:     "nfcpoker-replay.log",
			LogLevel:    "warn",
		},
		Export: ExportSettings{
			Dir:     "exports",
			Variant: phh.DefaultVariant,
		},
	}
}

// Load reads filename, falling back to defaults when it does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Table != nil {
		mergeInt(&cfg.Table.Players, raw.Table.Players)
		mergeInt(&cfg.Table.StartingPot, raw.Table.StartingPot)
		mergeInt(&cfg.Table.SmallBlind, raw.Table.SmallBlind)
		mergeInt(&cfg.Table.BigBlind, raw.Table.BigBlind)
	}
	if raw.Player != nil {
		cfg.Player.Seat = raw.Player.Seat
	}
	if raw.Replay != nil {
		mergeInt(&cfg.Replay.AutoDelayMS, raw.Replay.AutoDelayMS)
		mergeString(&cfg.Replay.LogFile, raw.Replay.LogFile)
		mergeString(&cfg.Replay.LogLevel, raw.Replay.LogLevel)
	}
	if raw.Export != nil {
		mergeString(&cfg.Export.Dir, raw.Export.Dir)
		mergeString(&cfg.Export.Variant, raw.Export.Variant)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return cfg, nil
}

func mergeInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate checks the configuration for values no log could use.
func (c *Config) Validate() error {
	if c.Table.Players <= 0 {
		return fmt.Errorf("table players must be positive")
	}
	if c.Table.StartingPot < 0 {
		return fmt.Errorf("table starting pot cannot be negative")
	}
	if c.Table.SmallBlind <= 0 || c.Table.BigBlind <= 0 {
		return fmt.Errorf("table blinds must be positive")
	}
	if c.Table.BigBlind < c.Table.SmallBlind {
		return fmt.Errorf("big blind %d is below small blind %d", c.Table.BigBlind, c.Table.SmallBlind)
	}
	if c.Player.Seat < 0 || c.Player.Seat > c.Table.Players {
		return fmt.Errorf("player seat %d outside 1..%d", c.Player.Seat, c.Table.Players)
	}
	if c.Replay.AutoDelayMS < 0 {
		return fmt.Errorf("replay auto delay cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Replay.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.Replay.LogLevel)
	}
	return nil
}

// SessionDefaults returns the parser fallbacks.
func (c *Config) SessionDefaults() handlog.SessionConfig {
	return handlog.SessionConfig{
		Players:     c.Table.Players,
		StartingPot: c.Table.StartingPot,
		SmallBlind:  c.Table.SmallBlind,
		BigBlind:    c.Table.BigBlind,
	}
}

// AutoDelay returns the replay auto-play interval.
func (c *Config) AutoDelay() time.Duration {
	return time.Duration(c.Replay.AutoDelayMS) * time.Millisecond
}
