package deck

import (
	"errors"
	"testing"
)

func TestParseCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Card
		wantErr  bool
	}{
		{name: "ten of hearts", input: "10-H", expected: Card{Suit: Hearts, Rank: Ten}},
		{name: "ten as T", input: "T-h", expected: Card{Suit: Hearts, Rank: Ten}},
		{name: "ace of spades", input: "A-S", expected: Card{Suit: Spades, Rank: Ace}},
		{name: "lower case", input: "q-d", expected: Card{Suit: Diamonds, Rank: Queen}},
		{name: "two of clubs", input: " 2-C ", expected: Card{Suit: Clubs, Rank: Two}},
		{name: "no separator", input: "AS", wantErr: true},
		{name: "bad rank", input: "1-S", wantErr: true},
		{name: "eleven", input: "11-S", wantErr: true},
		{name: "bad suit", input: "A-X", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := ParseCode(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCard) {
					t.Fatalf("ParseCode(%q) error = %v, want ErrInvalidCard", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCode(%q) unexpected error: %v", tt.input, err)
			}
			if card != tt.expected {
				t.Fatalf("ParseCode(%q) = %+v, want %+v", tt.input, card, tt.expected)
			}
		})
	}
}

func TestCardFormatting(t *testing.T) {
	tests := []struct {
		card   Card
		phh    string
		symbol string
		red    bool
	}{
		{Card{Suit: Hearts, Rank: Ten}, "Th", "T♥", true},
		{Card{Suit: Spades, Rank: Ace}, "As", "A♠", false},
		{Card{Suit: Diamonds, Rank: Two}, "2d", "2♦", true},
		{Card{Suit: Clubs, Rank: King}, "Kc", "K♣", false},
	}

	for _, tt := range tests {
		if got := tt.card.PHH(); got != tt.phh {
			t.Errorf("PHH() = %q, want %q", got, tt.phh)
		}
		if got := tt.card.String(); got != tt.symbol {
			t.Errorf("String() = %q, want %q", got, tt.symbol)
		}
		if got := tt.card.IsRed(); got != tt.red {
			t.Errorf("IsRed() = %v, want %v", got, tt.red)
		}
	}

	if got := Rank(1).String(); got != "?" {
		t.Errorf("Rank(1).String() = %q, want ?", got)
	}
}
