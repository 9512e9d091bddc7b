package handlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	prefixPlayers     = "players:"
	prefixPot         = "pot:"
	prefixSmallBlind  = "sb:"
	prefixBigBlind    = "bb:"
	prefixHand        = "hand:"
	prefixDealer      = "dealer:"
	prefixStacks      = "Stacks:"
	prefixHandWinner  = "W-p"
	prefixFinalWinner = "Winner:p"
	prefixCommunity   = "com:"

	sessionStartMarker = "Game Start"
)

// Option configures a Parser.
type Option func(*Parser)

// WithDefaults overrides the config assumed for fields a log never sets.
func WithDefaults(cfg SessionConfig) Option {
	return func(p *Parser) {
		p.defaults = cfg
	}
}

// Parser turns device logs into Sessions. It holds no per-log state and is
// safe for concurrent use.
type Parser struct {
	logger   zerolog.Logger
	defaults SessionConfig
}

// NewParser creates a parser that reports line diagnostics to logger.
func NewParser(logger zerolog.Logger, opts ...Option) *Parser {
	p := &Parser{
		logger:   logger,
		defaults: DefaultSessionConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a complete log with default settings and no logging.
func Parse(text string) *Session {
	return NewParser(zerolog.Nop()).Parse(text)
}

// Parse parses the full text of one log. It never fails: lines it cannot use
// are recorded in Session.Diagnostics.
func (p *Parser) Parse(text string) *Session {
	b := p.newBuilder()
	for i, line := range strings.Split(text, "\n") {
		b.line(i+1, line)
	}
	return b.finish()
}

// ParseReader parses a log read line by line from r. Lines of any length are
// accepted; only read errors are returned.
func (p *Parser) ParseReader(r io.Reader) (*Session, error) {
	b := p.newBuilder()
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if line != "" {
			b.line(n, line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("handlog: read line %d: %w", n, err)
		}
	}
	return b.finish(), nil
}

type builder struct {
	logger  zerolog.Logger
	session *Session
	current *Hand
	started bool
}

func (p *Parser) newBuilder() *builder {
	return &builder{
		logger:  p.logger,
		session: &Session{Config: p.defaults},
	}
}

func (b *builder) finish() *Session {
	b.seal()
	return b.session
}

// seal appends the open hand to the session.
func (b *builder) seal() {
	if b.current == nil {
		return
	}
	b.session.Hands = append(b.session.Hands, *b.current)
	b.current = nil
}

func (b *builder) line(n int, raw string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return
	}

	switch {
	case text == sessionStartMarker:
	case strings.HasPrefix(text, prefixPlayers):
		b.config(n, text, prefixPlayers, &b.session.Config.Players)
	case strings.HasPrefix(text, prefixPot):
		b.config(n, text, prefixPot, &b.session.Config.StartingPot)
	case strings.HasPrefix(text, prefixSmallBlind):
		b.config(n, text, prefixSmallBlind, &b.session.Config.SmallBlind)
	case strings.HasPrefix(text, prefixBigBlind):
		b.config(n, text, prefixBigBlind, &b.session.Config.BigBlind)
	case strings.HasPrefix(text, prefixHand):
		b.hand(n, text)
	case strings.HasPrefix(text, prefixDealer):
		b.dealer(n, text)
	case strings.HasPrefix(text, prefixStacks):
		b.stacks(n, text)
	case strings.HasPrefix(text, prefixHandWinner):
		b.handWinner(n, text)
	case strings.HasPrefix(text, prefixFinalWinner):
		b.finalWinner(n, text)
	case strings.HasPrefix(text, prefixCommunity):
		b.community(n, text)
	case strings.HasPrefix(text, "p") && strings.Contains(text, ":"):
		b.player(n, text)
	default:
		b.unrecognized(n, text, "no known prefix")
	}
}

func (b *builder) config(n int, text, prefix string, field *int) {
	if b.started {
		b.unrecognized(n, text, "config line after first hand")
		return
	}
	v, err := parseAmount(strings.TrimPrefix(text, prefix))
	if err != nil {
		b.malformed(n, text, err)
		return
	}
	*field = v
}

func (b *builder) hand(n int, text string) {
	number, err := parseAmount(strings.TrimPrefix(text, prefixHand))

	// The marker still starts a hand when its number is unreadable, so the
	// lines after it are not charged to the previous hand.
	b.seal()
	b.started = true
	b.current = &Hand{
		Number: number,
		Bets:   make(map[int]int),
	}
	if err != nil {
		b.current.Number = 0
		b.current.Unnumbered = true
		b.malformed(n, text, err)
	}
}

func (b *builder) dealer(n int, text string) {
	if !b.requireHand(n, text) {
		return
	}
	idx, err := parseAmount(strings.TrimPrefix(text, prefixDealer))
	if err != nil {
		b.malformed(n, text, err)
		return
	}
	b.current.Dealer = idx
	b.current.HasDealer = true
}

func (b *builder) stacks(n int, text string) {
	if !b.requireHand(n, text) {
		return
	}
	payload := strings.TrimSpace(strings.TrimPrefix(text, prefixStacks))
	if !strings.HasPrefix(payload, "[") || !strings.HasSuffix(payload, "]") {
		b.malformed(n, text, fmt.Errorf("unbalanced brackets"))
		return
	}
	inner := strings.TrimSpace(payload[1 : len(payload)-1])
	stacks := []int{}
	if inner != "" {
		for i, field := range strings.Split(inner, ",") {
			v, err := parseAmount(field)
			if err != nil {
				b.malformed(n, text, fmt.Errorf("stack %d: %w", i+1, err))
				return
			}
			stacks = append(stacks, v)
		}
	}
	b.current.Stacks = stacks
}

func (b *builder) handWinner(n int, text string) {
	if !b.requireHand(n, text) {
		return
	}
	seatText, amountText, found := strings.Cut(strings.TrimPrefix(text, prefixHandWinner), ":")
	if !found {
		b.malformed(n, text, fmt.Errorf("missing amount"))
		return
	}
	seat, err := parseSeat(seatText)
	if err != nil {
		b.malformed(n, text, err)
		return
	}
	amount, err := parseAmount(amountText)
	if err != nil {
		b.malformed(n, text, err)
		return
	}
	b.current.Winners = append(b.current.Winners, Winner{Seat: seat, Amount: amount, Line: n})
}

func (b *builder) finalWinner(n int, text string) {
	seatText, chipsText, found := strings.Cut(strings.TrimPrefix(text, prefixFinalWinner), "-")
	if !found {
		b.malformed(n, text, fmt.Errorf("missing chip count"))
		return
	}
	seat, err := parseSeat(seatText)
	if err != nil {
		b.malformed(n, text, err)
		return
	}
	chips, err := parseAmount(chipsText)
	if err != nil {
		b.malformed(n, text, err)
		return
	}
	b.session.FinalWinner = &FinalWinner{Seat: seat, FinalChips: chips}
	if b.session.FinalChips == nil {
		b.session.FinalChips = make(map[int]int)
	}
	b.session.FinalChips[seat] = chips
}

func (b *builder) community(n int, text string) {
	if !b.requireHand(n, text) {
		return
	}
	var cards []string
	for _, card := range strings.Split(strings.TrimPrefix(text, prefixCommunity), ",") {
		if card = strings.TrimSpace(card); card != "" {
			cards = append(cards, card)
		}
	}
	if len(cards) == 0 {
		b.malformed(n, text, fmt.Errorf("no cards"))
		return
	}
	b.current.Board = append(b.current.Board, cards...)
	b.current.Actions = append(b.current.Actions, Action{
		Raw:   text,
		Line:  n,
		Kind:  ActionCommunity,
		Cards: cards,
	})
}

func (b *builder) player(n int, text string) {
	if !b.requireHand(n, text) {
		return
	}
	seatText, move, _ := strings.Cut(strings.TrimPrefix(text, "p"), ":")
	seat, err := parseSeat(seatText)
	if err != nil {
		b.malformed(n, text, err)
		return
	}
	if _, ok := b.current.Bets[seat]; !ok {
		b.current.Bets[seat] = 0
	}

	kind, amount, cards, ok, err := decodeMove(strings.TrimSpace(move), b.session.Config)
	switch {
	case err != nil:
		b.malformed(n, text, fmt.Errorf("%s amount: %w", kind, err))
		return
	case !ok:
		b.unrecognized(n, text, "unknown move")
		return
	}

	b.current.Bets[seat] += amount
	b.current.Actions = append(b.current.Actions, Action{
		Raw:    text,
		Line:   n,
		Kind:   kind,
		Seat:   seat,
		Amount: amount,
		Cards:  cards,
	})
}

// requireHand records a diagnostic and reports false when no hand is open.
func (b *builder) requireHand(n int, text string) bool {
	if b.current != nil {
		return true
	}
	b.diagnose(n, text, ErrUnrecognizedLine, "no open hand")
	return false
}

func (b *builder) malformed(n int, text string, cause error) {
	b.diagnose(n, text, ErrMalformedLine, cause.Error())
	b.retain(n, text)
}

func (b *builder) unrecognized(n int, text, reason string) {
	b.diagnose(n, text, ErrUnrecognizedLine, reason)
	b.retain(n, text)
}

// retain keeps an undecoded line in the open hand for display.
func (b *builder) retain(n int, text string) {
	if b.current == nil {
		return
	}
	seat := 0
	if rest, ok := strings.CutPrefix(text, "p"); ok {
		if seatText, _, found := strings.Cut(rest, ":"); found {
			if s, err := parseSeat(seatText); err == nil {
				seat = s
			}
		}
	}
	b.current.Actions = append(b.current.Actions, Action{
		Raw:  text,
		Line: n,
		Kind: ActionUnknown,
		Seat: seat,
	})
}

func (b *builder) diagnose(n int, text string, kind error, reason string) {
	diag := &LineError{Line: n, Text: text, Reason: reason, Err: kind}
	b.session.Diagnostics = append(b.session.Diagnostics, diag)

	event := b.logger.Debug()
	if diag.Malformed() {
		event = b.logger.Warn()
	}
	event.Int("line", n).Str("text", text).Str("reason", reason).Msg(kind.Error())
}

func parseSeat(s string) (int, error) {
	seat, err := parseAmount(s)
	if err != nil {
		return 0, err
	}
	if seat < 1 {
		return 0, fmt.Errorf("seat %d out of range", seat)
	}
	return seat, nil
}
