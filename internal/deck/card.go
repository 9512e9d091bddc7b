// Package deck reads the card codes written by the table's NFC reader.
package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned for codes that do not name a card.
var ErrInvalidCard = errors.New("invalid card code")

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the lower-case suit letter used by PHH.
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single-character rank, T for ten.
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string("23456789TJQKA"[r-Two])
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// String returns the card with its suit symbol (e.g. "T♥").
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// PHH returns the card in PHH notation (e.g. "Th").
func (c Card) PHH() string {
	return c.Rank.String() + c.Suit.Letter()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// ParseCode reads a table code of the form <rank>-<suit>: "10-H", "A-s", "T-d".
func ParseCode(code string) (Card, error) {
	rankText, suitText, found := strings.Cut(strings.TrimSpace(code), "-")
	if !found {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, code)
	}

	rank, ok := parseRank(strings.ToUpper(rankText))
	if !ok {
		return Card{}, fmt.Errorf("%w: rank %q", ErrInvalidCard, rankText)
	}
	suit, ok := parseSuit(strings.ToUpper(suitText))
	if !ok {
		return Card{}, fmt.Errorf("%w: suit %q", ErrInvalidCard, suitText)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

func parseRank(s string) (Rank, bool) {
	switch s {
	case "10", "T":
		return Ten, true
	case "J":
		return Jack, true
	case "Q":
		return Queen, true
	case "K":
		return King, true
	case "A":
		return Ace, true
	}
	if len(s) == 1 && s[0] >= '2' && s[0] <= '9' {
		return Rank(s[0] - '0'), true
	}
	return 0, false
}

func parseSuit(s string) (Suit, bool) {
	switch s {
	case "S":
		return Spades, true
	case "H":
		return Hearts, true
	case "D":
		return Diamonds, true
	case "C":
		return Clubs, true
	}
	return 0, false
}
