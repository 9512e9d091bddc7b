package shared

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Log formats accepted by --log-format.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// NewLogger builds the command logger. JSON output carries RFC 3339 timestamps;
// any other format gets the console writer, without colour when noColor is set.
// Commands pass stderr so stdout stays free for their output.
func NewLogger(w io.Writer, format string, debug, noColor bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if format != LogFormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: noColor}
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}
