// Package display renders sessions, hands, replay tables and profit reports
// as styled terminal text.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/nfcpoker/nfcpoker/internal/deck"
	"github.com/nfcpoker/nfcpoker/internal/handlog"
	"github.com/nfcpoker/nfcpoker/internal/profit"
	"github.com/nfcpoker/nfcpoker/internal/replay"
)

// Renderer formats domain values for a terminal.
type Renderer struct {
	styles *Styles
	seat   int // highlighted seat, 0 for none
}

// NewRenderer creates a renderer that highlights seat (0 disables highlighting).
func NewRenderer(seat int) *Renderer {
	return &Renderer{styles: NewStyles(), seat: seat}
}

// Plain switches lipgloss to uncoloured output when w is not a colour terminal.
func Plain(w io.Writer) {
	if termenv.NewOutput(w).EnvColorProfile() == termenv.Ascii {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Card renders a single card code, red for hearts and diamonds.
func (r *Renderer) Card(card string) string {
	if card == replay.HiddenCard || card == "" {
		return r.styles.Hidden.Render(replay.HiddenCard)
	}
	c, err := deck.ParseCode(card)
	switch {
	case err != nil:
		return r.styles.Warning.Render(card)
	case c.IsRed():
		return r.styles.CardRed.Render(card)
	default:
		return r.styles.CardBlack.Render(card)
	}
}

// Cards renders a bracketed list of cards.
func (r *Renderer) Cards(cards []string) string {
	if len(cards) == 0 {
		return "[]"
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = r.Card(c)
	}
	return "[" + strings.Join(out, " ") + "]"
}

func (r *Renderer) seatName(seat int) string {
	name := fmt.Sprintf("P%d", seat)
	if seat == r.seat {
		return r.styles.Player.Render(name + " (you)")
	}
	return name
}

// SessionSummary describes the session configuration and outcome.
func (r *Renderer) SessionSummary(session *handlog.Session) string {
	var b strings.Builder
	cfg := session.Config
	b.WriteString(r.styles.Header.Render("Session"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d players • $%d starting stacks • $%d/$%d blinds\n",
		cfg.Players, cfg.StartingPot, cfg.SmallBlind, cfg.BigBlind)
	fmt.Fprintf(&b, "Hands: %d\n", len(session.Hands))
	if session.FinalWinner != nil {
		fmt.Fprintf(&b, "Final winner: %s with %s\n",
			r.seatName(session.FinalWinner.Seat),
			r.styles.Winner.Render(fmt.Sprintf("$%d", session.FinalWinner.FinalChips)))
	}
	if n := len(session.Diagnostics); n > 0 {
		b.WriteString(r.styles.Warning.Render(fmt.Sprintf("%d lines could not be read", n)))
		b.WriteString("\n")
	}
	return b.String()
}

// HandList renders one line per hand.
func (r *Renderer) HandList(session *handlog.Session) string {
	var b strings.Builder
	for i := range session.Hands {
		hand := &session.Hands[i]
		dealer := "-"
		if seat, ok := hand.DealerSeat(); ok {
			dealer = fmt.Sprintf("P%d", seat)
		}
		winners := make([]string, len(hand.Winners))
		for j, w := range hand.Winners {
			winners[j] = fmt.Sprintf("%s $%d", r.seatName(w.Seat), w.Amount)
		}
		fmt.Fprintf(&b, "Hand #%d • dealer %s • %d actions", hand.Number, dealer, len(hand.Actions))
		if len(winners) > 0 {
			b.WriteString(" • ")
			b.WriteString(r.styles.Winner.Render(strings.Join(winners, ", ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Hand renders a single hand in full: stacks, every step and the board.
func (r *Renderer) Hand(cfg handlog.SessionConfig, hand *handlog.Hand) string {
	var b strings.Builder
	b.WriteString(r.styles.Header.Render(fmt.Sprintf("Hand #%d", hand.Number)))
	b.WriteString("\n")

	if len(hand.Stacks) > 0 {
		stacks := make([]string, len(hand.Stacks))
		for i, s := range hand.Stacks {
			stacks[i] = fmt.Sprintf("%s $%d", r.seatName(i+1), s)
		}
		b.WriteString(r.styles.SubHeader.Render("Stacks: "))
		b.WriteString(strings.Join(stacks, "  "))
		b.WriteString("\n")
	}

	for _, f := range replay.Frames(replay.CursorFor(cfg, hand)) {
		line := f.Table.Message
		switch {
		case f.Step.Kind == replay.StepWinner:
			line = r.styles.Winner.Render(line)
		case f.Step.Kind == replay.StepAction && f.Step.Action.Kind == handlog.ActionUnknown:
			line = r.styles.Warning.Render(line)
		case f.Step.Kind == replay.StepAction && f.Step.Action.Commits():
			line = r.styles.Action.Render(line)
		default:
			line = r.styles.Info.Render(line)
		}
		fmt.Fprintf(&b, "  %s\n", line)
	}

	if len(hand.Board) > 0 {
		fmt.Fprintf(&b, "Board: %s\n", r.Cards(hand.Board))
	}
	return b.String()
}

// Table renders a replay table snapshot.
func (r *Renderer) Table(t replay.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pot: %s  Board: %s\n",
		r.styles.Pot.Render(fmt.Sprintf("$%d", t.Pot)), r.Cards(t.Board))
	b.WriteString(r.styles.Separator.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	for _, s := range t.Seats {
		b.WriteString(r.Seat(s))
		b.WriteString("\n")
	}
	if t.Message != "" {
		b.WriteString(r.styles.SubHeader.Render(t.Message))
		b.WriteString("\n")
	}
	return b.String()
}

// Seat renders one seat row.
func (r *Renderer) Seat(s replay.Seat) string {
	var marks []string
	if s.Dealer {
		marks = append(marks, "BTN")
	}
	if s.Blind != "" {
		marks = append(marks, s.Blind)
	}
	row := fmt.Sprintf("%-10s $%-6d %s %s %s",
		r.seatName(s.Number), s.Stack,
		r.Cards(s.HoleCards[:]), strings.Join(marks, " "), s.Status)
	row = strings.TrimRight(row, " ")

	switch s.Status {
	case replay.SeatFolded, replay.SeatBusted:
		return r.styles.Folded.Render(row)
	case replay.SeatWinner:
		return r.styles.Winner.Render(row)
	case replay.SeatAllIn:
		return r.styles.Warning.Render(row)
	default:
		return row
	}
}

// Profit renders a list of profit results, with a total row when more than one.
func (r *Renderer) Profit(results []profit.Result) string {
	var b strings.Builder
	for _, res := range results {
		fmt.Fprintf(&b, "%-10s %s  (final $%d, %s)\n",
			r.seatName(res.Seat), r.amount(res.Profit), res.FinalChips, res.Method)
	}
	if len(results) > 1 {
		b.WriteString(r.styles.Separator.Render(strings.Repeat("─", 40)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%-10s %s\n", "Total", r.amount(profit.Total(results)))
	}
	return b.String()
}

func (r *Renderer) amount(v int) string {
	switch {
	case v > 0:
		return r.styles.Gain.Render(fmt.Sprintf("+$%d", v))
	case v < 0:
		return r.styles.Loss.Render(fmt.Sprintf("-$%d", -v))
	default:
		return "$0"
	}
}

// Diagnostics lists the lines the parser skipped or could not read.
func (r *Renderer) Diagnostics(diags []*handlog.LineError) string {
	var b strings.Builder
	for _, d := range diags {
		style := r.styles.Info
		if d.Malformed() {
			style = r.styles.Error
		}
		b.WriteString(style.Render(d.Error()))
		b.WriteString("\n")
	}
	return b.String()
}
