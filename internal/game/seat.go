package game

import (
	"fmt"

	"github.com/hotwired/blackjack/internal/deck"
)

// MaxHands is the maximum number of hands a seat may hold via splitting.
const MaxHands = 3

// SeatConfig describes one participant at session creation. The player ID is
// an opaque identity supplied by the host; bankroll and stake share the
// host's virtual currency unit.
type SeatConfig struct {
	PlayerID string
	Bankroll int
	Stake    int
}

// Seat is one participant in a session: identity, bankroll, the ordered list
// of hands the player controls, and the cursor of the hand currently
// accepting input. Hands before the cursor have already acted.
type Seat struct {
	PlayerID string
	Bankroll int
	Hands    []*Hand

	// Bankroll at entry; the sum of all stakes never exceeds it.
	entry  int
	acting int
}

func newSeat(cfg SeatConfig) (*Seat, error) {
	if cfg.PlayerID == "" {
		return nil, fmt.Errorf("seat requires a player ID")
	}
	if cfg.Bankroll < 0 {
		return nil, fmt.Errorf("player %s: bankroll must be non-negative", cfg.PlayerID)
	}
	if cfg.Stake <= 0 {
		return nil, fmt.Errorf("player %s: stake must be positive", cfg.PlayerID)
	}
	if cfg.Stake > cfg.Bankroll {
		return nil, fmt.Errorf("player %s: stake %d exceeds bankroll %d", cfg.PlayerID, cfg.Stake, cfg.Bankroll)
	}

	// The stake is deducted at bet time; settlement pays it back on win/push.
	return &Seat{
		PlayerID: cfg.PlayerID,
		Bankroll: cfg.Bankroll - cfg.Stake,
		Hands:    []*Hand{NewHand(cfg.Stake)},
		entry:    cfg.Bankroll,
	}, nil
}

// ActingHand returns the hand currently accepting input, or nil once every
// hand of this seat has acted.
func (s *Seat) ActingHand() *Hand {
	if s.acting < 0 || s.acting >= len(s.Hands) {
		return nil
	}
	return s.Hands[s.acting]
}

// ActingIndex returns the cursor position within the seat's hands.
func (s *Seat) ActingIndex() int {
	return s.acting
}

func (s *Seat) staked() int {
	total := 0
	for _, h := range s.Hands {
		total += h.Stake
	}
	return total
}

// canAfford reports whether adding extra stake keeps the seat within its
// bankroll at entry.
func (s *Seat) canAfford(extra int) bool {
	return s.staked()+extra <= s.entry
}

// skipSettled moves the cursor past hands that need no input: resolved hands
// and naturals, which are settled directly against the dealer.
func (s *Seat) skipSettled() {
	for s.acting < len(s.Hands) {
		h := s.Hands[s.acting]
		if h.Outcome.Terminal() || h.IsNatural() {
			s.acting++
			continue
		}
		return
	}
}

// split separates the acting hand's two cards into two hands, deals one card
// to each, and stakes the new hand at the original amount. The caller has
// already validated eligibility and affordability.
func (s *Seat) split(d *deck.Deck) {
	orig := s.Hands[s.acting]

	first := NewHand(orig.Stake, orig.Cards[0])
	second := NewHand(orig.Stake, orig.Cards[1])
	first.Add(d.Draw())
	second.Add(d.Draw())

	s.Bankroll -= orig.Stake

	hands := make([]*Hand, 0, len(s.Hands)+1)
	hands = append(hands, s.Hands[:s.acting]...)
	hands = append(hands, first, second)
	hands = append(hands, s.Hands[s.acting+1:]...)
	s.Hands = hands
}
