package replay

import (
	"errors"
	"fmt"

	"github.com/nfcpoker/nfcpoker/internal/handlog"
)

// ErrHandNotFound is returned when a session has no hand with the requested number.
var ErrHandNotFound = errors.New("replay: hand not found")

// StepKind distinguishes the sources a replay step can come from.
type StepKind int

const (
	StepAction StepKind = iota
	StepDealer
	StepWinner
)

// Step is one unit of replay.
type Step struct {
	Kind   StepKind
	Action handlog.Action
	Winner handlog.Winner
	Dealer int
}

// Label is a short description of the step for logs and action lists.
func (s Step) Label() string {
	switch s.Kind {
	case StepDealer:
		return fmt.Sprintf("dealer:%d", s.Dealer)
	case StepWinner:
		return fmt.Sprintf("W-p%d:%d", s.Winner.Seat, s.Winner.Amount)
	default:
		return s.Action.Raw
	}
}

// Steps lists a hand's replay order: the dealer marker, then actions and pot
// awards in log order. Awards without a line number follow the actions.
func Steps(hand *handlog.Hand) []Step {
	steps := make([]Step, 0, len(hand.Actions)+len(hand.Winners)+1)
	if hand.HasDealer {
		steps = append(steps, Step{Kind: StepDealer, Dealer: hand.Dealer})
	}

	winners := hand.Winners
	for _, a := range hand.Actions {
		for len(winners) > 0 && winners[0].Line != 0 && winners[0].Line < a.Line {
			steps = append(steps, Step{Kind: StepWinner, Winner: winners[0]})
			winners = winners[1:]
		}
		steps = append(steps, Step{Kind: StepAction, Action: a})
	}
	for _, w := range winners {
		steps = append(steps, Step{Kind: StepWinner, Winner: w})
	}
	return steps
}

// Cursor is a position within a hand's replay. It is a value: advancing
// returns a new cursor and leaves the old one usable.
type Cursor struct {
	Config handlog.SessionConfig
	Hand   *handlog.Hand
	Index  int

	steps []Step
}

// NewCursor positions a cursor before the first step of the numbered hand.
func NewCursor(session *handlog.Session, number int) (Cursor, error) {
	hand, ok := session.Hand(number)
	if !ok {
		return Cursor{}, fmt.Errorf("%w: %d", ErrHandNotFound, number)
	}
	return CursorFor(session.Config, hand), nil
}

// CursorFor builds a cursor for a hand already in hand.
func CursorFor(cfg handlog.SessionConfig, hand *handlog.Hand) Cursor {
	return Cursor{Config: cfg, Hand: hand, steps: Steps(hand)}
}

// Start returns the table before any step is applied.
func (c Cursor) Start() Table {
	return NewTable(c.Config, c.Hand)
}

// Len is the number of steps in the hand.
func (c Cursor) Len() int { return len(c.steps) }

// Done reports whether every step has been applied.
func (c Cursor) Done() bool { return c.Index >= len(c.steps) }

// Peek returns the step Next would apply.
func (c Cursor) Peek() (Step, bool) {
	if c.Done() {
		return Step{}, false
	}
	return c.steps[c.Index], true
}

// Next applies the next step to t. ok is false once the hand is exhausted,
// in which case the cursor and table are returned unchanged.
func (c Cursor) Next(t Table) (Cursor, Table, bool) {
	step, ok := c.Peek()
	if !ok {
		return c, t, false
	}
	c.Index++
	return c, Apply(t, step), true
}

// Reset rewinds to the start of the hand.
func (c Cursor) Reset() (Cursor, Table) {
	c.Index = 0
	return c, c.Start()
}

// Frame is the table after a given step.
type Frame struct {
	Index int
	Step  Step
	Table Table
}

// Frames replays the whole hand from the start.
func Frames(c Cursor) []Frame {
	c, t := c.Reset()
	frames := make([]Frame, 0, c.Len())
	for !c.Done() {
		step, _ := c.Peek()
		idx := c.Index
		c, t, _ = c.Next(t)
		frames = append(frames, Frame{Index: idx, Step: step, Table: t})
	}
	return frames
}
