package handlog

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine marks a line with a known prefix whose payload did not parse.
	ErrMalformedLine = errors.New("malformed line")
	// ErrUnrecognizedLine marks a line that matched no known prefix, or arrived out of place.
	ErrUnrecognizedLine = errors.New("unrecognized line")
)

// LineError describes a line the parser could not turn into structured data.
// The line itself is still kept in the open hand's actions where possible.
type LineError struct {
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *LineError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("line %d %q: %v: %s", e.Line, e.Text, e.Err, e.Reason)
}

func (e *LineError) Unwrap() error { return e.Err }

// Malformed reports whether the diagnostic is an ErrMalformedLine.
func (e *LineError) Malformed() bool { return errors.Is(e.Err, ErrMalformedLine) }
