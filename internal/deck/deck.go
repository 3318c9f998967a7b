package deck

import (
	rand "math/rand/v2"
	"time"

	"github.com/hotwired/blackjack/internal/randutil"
)

// Deck is a shuffled deck of playing cards owned by a single game session.
// Drawing from an exhausted deck transparently replaces it with a fresh
// shuffled 52-card set, so Draw never fails. A discard pile is not modeled.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a shuffled 52-card deck. A nil rng seeds from the wall clock.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	d := &Deck{rng: rng}
	d.refill()
	return d
}

// NewStacked creates a deck that deals the given cards in order before
// falling back to fresh shuffled decks. For deterministic tests.
func NewStacked(cards ...Card) *Deck {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Deck{cards: stacked, rng: randutil.New(0)}
}

func (d *Deck) refill() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	d.shuffle()
}

func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card, replenishing from a fresh shuffled
// deck first if no cards remain.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		d.refill()
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// Remaining returns the number of cards left before the next replenish.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
