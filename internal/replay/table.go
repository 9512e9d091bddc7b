// Package replay steps through a parsed hand one action at a time, producing
// the table state a viewer would draw after each step.
package replay

import (
	"fmt"
	"strings"

	"github.com/nfcpoker/nfcpoker/internal/handlog"
)

// HiddenCard is shown for hole cards that have not been revealed.
const HiddenCard = "XX-X"

// MaxBoardCards is the number of community cards a table can show.
const MaxBoardCards = 5

// SeatStatus is the display state of a seat.
type SeatStatus int

const (
	SeatActive SeatStatus = iota
	SeatFolded
	SeatAllIn
	SeatWinner
	SeatBusted
)

func (s SeatStatus) String() string {
	switch s {
	case SeatFolded:
		return "folded"
	case SeatAllIn:
		return "all-in"
	case SeatWinner:
		return "winner"
	case SeatBusted:
		return "busted"
	default:
		return "active"
	}
}

// Seat is one player's position at the table.
type Seat struct {
	Number    int
	Stack     int
	Status    SeatStatus
	Blind     string
	Dealer    bool
	HoleCards [2]string
}

// Table is everything a viewer draws for one moment of a hand.
type Table struct {
	Seats   []Seat
	Pot     int
	Board   []string
	Message string
}

func (t Table) clone() Table {
	out := t
	out.Seats = append([]Seat(nil), t.Seats...)
	out.Board = append([]string(nil), t.Board...)
	return out
}

// seat returns the index of a 1-based seat, or -1.
func (t Table) seat(number int) int {
	if number < 1 || number > len(t.Seats) {
		return -1
	}
	return number - 1
}

// NewTable builds the table at the start of a hand: stacks from the hand's
// Stacks line, or the starting pot for every seat when it is missing.
func NewTable(cfg handlog.SessionConfig, hand *handlog.Hand) Table {
	n := max(cfg.Players, len(hand.Stacks))
	t := Table{Seats: make([]Seat, n)}
	for i := range t.Seats {
		seat := Seat{
			Number:    i + 1,
			Stack:     cfg.StartingPot,
			HoleCards: [2]string{HiddenCard, HiddenCard},
		}
		if i < len(hand.Stacks) {
			seat.Stack = hand.Stacks[i]
			if seat.Stack == 0 {
				seat.Status = SeatBusted
			}
		}
		t.Seats[i] = seat
	}
	return t
}

// Apply returns the table after one step. The input table is not modified.
func Apply(t Table, step Step) Table {
	out := t.clone()
	switch step.Kind {
	case StepDealer:
		applyDealer(&out, step.Dealer)
	case StepWinner:
		applyWinner(&out, step.Winner)
	default:
		applyAction(&out, step.Action)
	}
	return out
}

func applyDealer(t *Table, dealer int) {
	for i := range t.Seats {
		t.Seats[i].Dealer = false
	}
	idx := t.seat(dealer + 1)
	if idx < 0 {
		t.Message = fmt.Sprintf("Dealer: seat %d not at table", dealer+1)
		return
	}
	t.Seats[idx].Dealer = true
	t.Message = fmt.Sprintf("Dealer: P%d", dealer+1)
}

func applyWinner(t *Table, w handlog.Winner) {
	t.Pot = max(0, t.Pot-w.Amount)
	idx := t.seat(w.Seat)
	if idx < 0 {
		t.Message = fmt.Sprintf("P%d wins $%d", w.Seat, w.Amount)
		return
	}
	t.Seats[idx].Stack += w.Amount
	t.Seats[idx].Status = SeatWinner
	t.Message = fmt.Sprintf("P%d wins $%d!", w.Seat, w.Amount)
}

func applyAction(t *Table, a handlog.Action) {
	if a.Kind == handlog.ActionCommunity {
		for _, card := range a.Cards {
			if len(t.Board) < MaxBoardCards {
				t.Board = append(t.Board, card)
			}
		}
		t.Message = "Board: " + strings.Join(t.Board, " ")
		return
	}

	idx := t.seat(a.Seat)
	if idx < 0 {
		t.Message = a.Raw
		return
	}
	seat := &t.Seats[idx]
	name := fmt.Sprintf("P%d", a.Seat)

	switch a.Kind {
	case handlog.ActionSmallBlind, handlog.ActionBigBlind:
		blind := "SB"
		if a.Kind == handlog.ActionBigBlind {
			blind = "BB"
		}
		seat.Stack -= a.Amount
		seat.Blind = blind
		t.Pot += a.Amount
		t.Message = fmt.Sprintf("%s posts %s", name, blind)
	case handlog.ActionCall:
		seat.Stack -= a.Amount
		t.Pot += a.Amount
		t.Message = fmt.Sprintf("%s CALLS $%d", name, a.Amount)
	case handlog.ActionRaise:
		seat.Stack -= a.Amount
		t.Pot += a.Amount
		t.Message = fmt.Sprintf("%s RAISES $%d", name, a.Amount)
	case handlog.ActionAllIn:
		t.Pot += a.Amount
		seat.Stack = 0
		seat.Status = SeatAllIn
		t.Message = fmt.Sprintf("%s all in", name)
	case handlog.ActionFold:
		seat.Status = SeatFolded
		t.Message = fmt.Sprintf("%s folds", name)
	case handlog.ActionCardReveal:
		card := a.Raw
		if len(a.Cards) > 0 {
			card = a.Cards[0]
		}
		if seat.HoleCards[0] == HiddenCard {
			seat.HoleCards[0] = card
		} else {
			seat.HoleCards[1] = card
		}
		t.Message = fmt.Sprintf("%s shows %s", name, card)
	default:
		t.Message = a.Raw
	}
}
