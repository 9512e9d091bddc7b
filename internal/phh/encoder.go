package phh

import (
	"fmt"
	"io"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	// Use tabs for arrays to match human expectations
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeSession writes hands as a PHHS session: one numbered table per hand.
// Each hand is encoded under its own key so nested metadata stays inside it.
func EncodeSession(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if hand == nil {
			return fmt.Errorf("phh: hand %d is nil", i+1)
		}
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		enc := toml.NewEncoder(w)
		enc.Indent = ""
		section := map[string]*HandHistory{strconv.Itoa(i + 1): hand}
		if err := enc.Encode(section); err != nil {
			return fmt.Errorf("phh: encode %s: %w", hand.HandID, err)
		}
	}
	return nil
}

// DecodeSession reads a PHHS session written by EncodeSession, ordered by section number.
func DecodeSession(r io.Reader) ([]HandHistory, error) {
	sections := make(map[string]HandHistory)
	if _, err := toml.NewDecoder(r).Decode(&sections); err != nil {
		return nil, fmt.Errorf("phh: decode session: %w", err)
	}
	hands := make([]HandHistory, 0, len(sections))
	for i := 1; ; i++ {
		hand, ok := sections[strconv.Itoa(i)]
		if !ok {
			break
		}
		hands = append(hands, hand)
	}
	if len(hands) != len(sections) {
		return nil, fmt.Errorf("phh: decode session: sections are not numbered 1..%d", len(sections))
	}
	return hands, nil
}
