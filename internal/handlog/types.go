// Package handlog parses the line-oriented event logs written by the NFC
// poker table into structured sessions.
package handlog

// Defaults used when a log omits its config lines.
const (
	DefaultPlayers     = 6
	DefaultStartingPot = 1000
	DefaultSmallBlind  = 10
	DefaultBigBlind    = 20
)

// SessionConfig holds the table configuration declared before the first hand.
type SessionConfig struct {
	Players     int
	StartingPot int
	SmallBlind  int
	BigBlind    int
}

// DefaultSessionConfig returns the configuration assumed for an empty log.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Players:     DefaultPlayers,
		StartingPot: DefaultStartingPot,
		SmallBlind:  DefaultSmallBlind,
		BigBlind:    DefaultBigBlind,
	}
}

// Winner is a pot award declared mid-hand by a W-p line.
type Winner struct {
	Seat   int
	Amount int
	// Line is the 1-based log line of the W-p marker, 0 when unknown.
	Line int
}

// FinalWinner is the session-level result declared by a Winner:p line.
type FinalWinner struct {
	Seat       int
	FinalChips int
}

// Hand is one hand of the session as recorded by the device.
type Hand struct {
	Number int
	// Unnumbered is set when the hand: marker's number could not be read; Number is 0.
	Unnumbered bool

	// Dealer is the raw dealer index written by the device (zero-based).
	Dealer    int
	HasDealer bool

	// Stacks holds each seat's chips at the start of the hand; Stacks[i] is seat i+1.
	Stacks  []int
	Actions []Action
	Winners []Winner
	Board   []string

	// Bets accumulates the chips each seat put in during the hand, keyed by 1-based seat.
	Bets map[int]int
}

// DealerSeat returns the 1-based dealer seat, if the hand recorded one.
func (h *Hand) DealerSeat() (int, bool) {
	if !h.HasDealer {
		return 0, false
	}
	return h.Dealer + 1, true
}

// Stack returns the starting stack of a 1-based seat.
func (h *Hand) Stack(seat int) (int, bool) {
	if seat < 1 || seat > len(h.Stacks) {
		return 0, false
	}
	return h.Stacks[seat-1], true
}

// Winnings sums the W-p awards for a seat.
func (h *Hand) Winnings(seat int) int {
	total := 0
	for _, w := range h.Winners {
		if w.Seat == seat {
			total += w.Amount
		}
	}
	return total
}

// Session is the parsed form of one log. It is not modified after Parse returns.
type Session struct {
	Config      SessionConfig
	Hands       []Hand
	FinalWinner *FinalWinner

	// FinalChips holds every seat named by a Winner:p line.
	FinalChips map[int]int

	Diagnostics []*LineError
}

// Hand returns the first hand with the given number.
func (s *Session) Hand(number int) (*Hand, bool) {
	for i := range s.Hands {
		if s.Hands[i].Number == number {
			return &s.Hands[i], true
		}
	}
	return nil, false
}

// Empty reports whether the log contained no hands.
func (s *Session) Empty() bool {
	return len(s.Hands) == 0
}
