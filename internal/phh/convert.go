package phh

import (
	"fmt"

	"github.com/nfcpoker/nfcpoker/internal/handlog"
)

// ExportOptions controls how a session is labelled in PHH.
type ExportOptions struct {
	Table   string
	Variant string
}

// FromSession converts every hand of a parsed session.
func FromSession(session *handlog.Session, opts ExportOptions) []*HandHistory {
	hands := make([]*HandHistory, 0, len(session.Hands))
	for i := range session.Hands {
		var next *handlog.Hand
		if i+1 < len(session.Hands) {
			next = &session.Hands[i+1]
		}
		hands = append(hands, FromHand(session.Config, &session.Hands[i], next, opts))
	}
	return hands
}

// FromHand converts one hand. next, when present, supplies the finishing stacks;
// otherwise they are derived from the hand's bets and winnings.
func FromHand(cfg handlog.SessionConfig, hand, next *handlog.Hand, opts ExportOptions) *HandHistory {
	variant := opts.Variant
	if variant == "" {
		variant = DefaultVariant
	}
	n := max(cfg.Players, len(hand.Stacks))

	h := &HandHistory{
		Variant:           variant,
		Table:             opts.Table,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            cfg.BigBlind,
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		Players:           make([]string, n),
		HandID:            fmt.Sprintf("hand-%d", hand.Number),
		Metadata:          map[string]any{"hand_number": hand.Number},
	}
	if seat, ok := hand.DealerSeat(); ok {
		h.Metadata["dealer_seat"] = seat
	}
	if hand.Unnumbered {
		h.Metadata["unnumbered"] = true
	}

	for i := 0; i < n; i++ {
		seat := i + 1
		start, ok := hand.Stack(seat)
		if !ok {
			start = cfg.StartingPot
		}
		finish := start - hand.Bets[seat] + hand.Winnings(seat)
		if next != nil {
			if chips, ok := next.Stack(seat); ok {
				finish = chips
			}
		}
		h.Seats[i] = seat
		h.Players[i] = fmt.Sprintf("P%d", seat)
		h.StartingStacks[i] = start
		h.FinishingStacks[i] = finish
		h.Winnings[i] = hand.Winnings(seat)
	}

	h.Actions = formatActions(hand.Actions, h.BlindsOrStraddles)
	return h
}

// formatActions translates table actions to PHH action strings, tracking
// per-street contributions so raises are written as street totals. Blind
// posts are recorded in blinds rather than as actions.
func formatActions(actions []handlog.Action, blinds []int) []string {
	out := make([]string, 0, len(actions))
	contributions := make(map[int]int)
	revealed := make(map[int][]string)
	var revealOrder []int

	for _, a := range actions {
		player := fmt.Sprintf("p%d", a.Seat)
		switch a.Kind {
		case handlog.ActionSmallBlind, handlog.ActionBigBlind:
			contributions[a.Seat] += a.Amount
			if a.Seat >= 1 && a.Seat <= len(blinds) && blinds[a.Seat-1] == 0 {
				blinds[a.Seat-1] = a.Amount
			}
		case handlog.ActionCall:
			contributions[a.Seat] += a.Amount
			out = append(out, player+" cc")
		case handlog.ActionRaise, handlog.ActionAllIn:
			contributions[a.Seat] += a.Amount
			out = append(out, fmt.Sprintf("%s cbr %d", player, contributions[a.Seat]))
		case handlog.ActionFold:
			out = append(out, player+" f")
		case handlog.ActionCardReveal:
			if _, seen := revealed[a.Seat]; !seen {
				revealOrder = append(revealOrder, a.Seat)
			}
			revealed[a.Seat] = append(revealed[a.Seat], a.Cards...)
		case handlog.ActionCommunity:
			contributions = make(map[int]int)
			out = append(out, "d db "+NormalizeCards(a.Cards))
		default:
			out = append(out, "# "+a.Raw)
		}
	}

	for _, seat := range revealOrder {
		out = append(out, fmt.Sprintf("p%d sm %s", seat, NormalizeCards(revealed[seat])))
	}
	return out
}
