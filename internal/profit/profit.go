// Package profit derives a player's chip result for a parsed session.
package profit

import (
	"errors"
	"fmt"

	"github.com/nfcpoker/nfcpoker/internal/handlog"
)

// ErrInvalidSeat is returned for seats outside [1, players].
var ErrInvalidSeat = errors.New("profit: invalid seat")

// Method records which source produced a final chip count.
type Method int

const (
	// MethodDefault means no hand carried a usable stack; the starting pot is assumed.
	MethodDefault Method = iota
	// MethodFinalWinner uses the session's Winner:p marker.
	MethodFinalWinner
	// MethodNextStacks uses a later hand's starting stacks.
	MethodNextStacks
	// MethodLastHand derives the result from the last hand's stack, bets and winnings.
	MethodLastHand
)

func (m Method) String() string {
	switch m {
	case MethodFinalWinner:
		return "final-winner"
	case MethodNextStacks:
		return "next-stacks"
	case MethodLastHand:
		return "last-hand"
	default:
		return "default"
	}
}

// Result is one seat's outcome for a session.
type Result struct {
	Seat       int
	FinalChips int
	Profit     int
	Method     Method
}

// Profit returns the seat's net chips relative to the session's starting pot.
func Profit(session *handlog.Session, seat int) (int, error) {
	res, err := Compute(session, seat)
	if err != nil {
		return 0, err
	}
	return res.Profit, nil
}

// Compute resolves the seat's final chips, preferring an explicit final
// marker and otherwise chaining hand stacks.
func Compute(session *handlog.Session, seat int) (Result, error) {
	players := session.Config.Players
	if seat < 1 || seat > players {
		return Result{}, fmt.Errorf("%w: seat %d, table has %d players", ErrInvalidSeat, seat, players)
	}

	start := session.Config.StartingPot
	if chips, ok := session.FinalChips[seat]; ok && session.FinalWinner != nil {
		return Result{Seat: seat, FinalChips: chips, Profit: chips - start, Method: MethodFinalWinner}, nil
	}

	final, method := chainStacks(session.Hands, seat, start)
	return Result{Seat: seat, FinalChips: final, Profit: final - start, Method: method}, nil
}

// chainStacks walks the hands in order. Each hand's stacks record the result
// of the hand before it, so only the last hand needs bet and winnings math.
func chainStacks(hands []handlog.Hand, seat, start int) (int, Method) {
	final, method := start, MethodDefault
	for i := range hands {
		if i+1 < len(hands) {
			if chips, ok := hands[i+1].Stack(seat); ok {
				final, method = chips, MethodNextStacks
			}
			continue
		}

		last := &hands[i]
		if chips, ok := last.Stack(seat); ok {
			final = chips - last.Bets[seat] + last.Winnings(seat)
			method = MethodLastHand
		}
	}
	return final, method
}

// Summarize computes every seat's result for the session.
func Summarize(session *handlog.Session) []Result {
	results := make([]Result, 0, session.Config.Players)
	for seat := 1; seat <= session.Config.Players; seat++ {
		res, err := Compute(session, seat)
		if err != nil {
			continue
		}
		results = append(results, res)
	}
	return results
}

// Total sums the profit across several results, e.g. one seat over many sessions.
func Total(results []Result) int {
	total := 0
	for _, r := range results {
		total += r.Profit
	}
	return total
}
