package game

import (
	"github.com/hotwired/blackjack/internal/deck"
)

// Outcome is the terminal result tag of a hand. Once a hand's outcome is
// non-pending it is never mutated again.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeWin
	OutcomeLose
	OutcomePush
	OutcomeBlackjack
	OutcomeBusted
	OutcomeSurrendered
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomePush:
		return "push"
	case OutcomeBlackjack:
		return "blackjack"
	case OutcomeBusted:
		return "busted"
	case OutcomeSurrendered:
		return "surrendered"
	default:
		return "unknown"
	}
}

// Terminal returns true once the hand has been resolved.
func (o Outcome) Terminal() bool {
	return o != OutcomePending
}

// Hand is one player-controlled sequence of cards plus its stake and
// settlement outcome. The dealer hand is a Hand with stake zero.
type Hand struct {
	Cards   []deck.Card
	Stake   int
	Outcome Outcome
}

// NewHand creates a hand with the given stake and any initial cards.
func NewHand(stake int, cards ...deck.Card) *Hand {
	h := &Hand{Stake: stake}
	h.Cards = append(h.Cards, cards...)
	return h
}

// Add appends a drawn card to the hand.
func (h *Hand) Add(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

// Value evaluates the hand. Aces initially count 11; while the total exceeds
// 21 and an Ace is still counted as 11, one Ace is demoted to 1. The hand is
// soft while an Ace still counts as 11. Order of cards never affects the
// result.
func (h *Hand) Value() (total int, soft bool) {
	aces := 0
	for _, c := range h.Cards {
		total += c.PipValue()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// IsBust returns true when the hand total exceeds 21.
func (h *Hand) IsBust() bool {
	total, _ := h.Value()
	return total > 21
}

// IsNatural returns true for a two-card 21, which beats a non-natural 21 at
// settlement.
func (h *Hand) IsNatural() bool {
	if len(h.Cards) != 2 {
		return false
	}
	total, _ := h.Value()
	return total == 21
}

// CanSplitPair returns true when the hand is exactly two cards of equal
// blackjack value. The owning seat separately enforces the hand limit and
// the bankroll check.
func (h *Hand) CanSplitPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].PipValue() == h.Cards[1].PipValue()
}

// resolve tags the hand with its terminal outcome. Resolved hands are never
// re-resolved.
func (h *Hand) resolve(o Outcome) {
	if h.Outcome == OutcomePending {
		h.Outcome = o
	}
}
