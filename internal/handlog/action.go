package handlog

import (
	"errors"
	"strconv"
	"strings"
)

// ActionKind is the decoded shape of an action line.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionSmallBlind
	ActionBigBlind
	ActionCall
	ActionRaise
	ActionAllIn
	ActionFold
	ActionCardReveal
	ActionCommunity
)

var actionKindNames = map[ActionKind]string{
	ActionUnknown:    "unknown",
	ActionSmallBlind: "small_blind",
	ActionBigBlind:   "big_blind",
	ActionCall:       "call",
	ActionRaise:      "raise",
	ActionAllIn:      "allin",
	ActionFold:       "fold",
	ActionCardReveal: "reveal",
	ActionCommunity:  "community",
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return "ActionKind(" + strconv.Itoa(int(k)) + ")"
}

// Action is one line of a hand, decoded once at parse time. Raw always holds
// the line exactly as it appeared (trimmed).
type Action struct {
	Raw  string
	Line int
	Kind ActionKind

	// Seat is the 1-based acting seat, 0 for table-level lines.
	Seat int
	// Amount is the number of chips the action commits. Blinds are resolved
	// against the session config.
	Amount int
	Cards  []string
}

// Commits reports whether the action puts chips into the pot.
func (a Action) Commits() bool {
	switch a.Kind {
	case ActionSmallBlind, ActionBigBlind, ActionCall, ActionRaise, ActionAllIn:
		return true
	}
	return false
}

var (
	errNegativeAmount = errors.New("negative amount")
	errEmptyAmount    = errors.New("missing amount")
)

// parseAmount parses a non-negative decimal chip count.
func parseAmount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyAmount
	}
	if s[0] == '-' {
		return 0, errNegativeAmount
	}
	if s[0] == '+' {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

// decodeMove decodes the part of a player line after "p<seat>:". ok is false
// when the move has no known shape; err is set when it has a known shape but
// a bad payload.
func decodeMove(move string, cfg SessionConfig) (kind ActionKind, amount int, cards []string, ok bool, err error) {
	switch move {
	case "sb":
		return ActionSmallBlind, cfg.SmallBlind, nil, true, nil
	case "bb":
		return ActionBigBlind, cfg.BigBlind, nil, true, nil
	case "F":
		return ActionFold, 0, nil, true, nil
	}

	for _, bet := range []struct {
		prefix string
		kind   ActionKind
	}{
		{"c-", ActionCall},
		{"r-", ActionRaise},
		{"a-", ActionAllIn},
	} {
		if rest, found := strings.CutPrefix(move, bet.prefix); found {
			n, err := parseAmount(rest)
			if err != nil {
				return bet.kind, 0, nil, true, err
			}
			return bet.kind, n, nil, true, nil
		}
	}

	if isCardCode(move) {
		return ActionCardReveal, 0, []string{move}, true, nil
	}
	return ActionUnknown, 0, nil, false, nil
}

// isCardCode matches the short rank-suit codes the table reads from card tags.
func isCardCode(s string) bool {
	if len(s) > 4 || strings.Count(s, "-") != 1 {
		return false
	}
	rank, suit, _ := strings.Cut(s, "-")
	return rank != "" && suit != ""
}
