package phh

import (
	"strings"

	"github.com/nfcpoker/nfcpoker/internal/deck"
)

const unknownCard = "??"

// NormalizeCard converts a table card code (e.g. 10-H, A-s) to PHH notation (Th, As).
// Codes it cannot read become "??".
func NormalizeCard(card string) string {
	c, err := deck.ParseCode(card)
	if err != nil {
		return unknownCard
	}
	return c.PHH()
}

// NormalizeCards normalizes and concatenates cards the way PHH actions expect.
func NormalizeCards(cards []string) string {
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(NormalizeCard(c))
	}
	return sb.String()
}
