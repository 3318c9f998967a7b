package game

import (
	"testing"

	"github.com/hotwired/blackjack/internal/deck"
)

func handOf(t *testing.T, cards string) *Hand {
	t.Helper()
	return NewHand(10, deck.MustParseCards(cards)...)
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		cards string
		total int
		soft  bool
	}{
		{"2s3h", 5, false},
		{"Ts9h", 19, false},
		{"AsKh", 21, true},
		{"As9h", 20, true},
		{"As9hKd", 20, false}, // ace demoted
		{"AsAh", 12, true},    // one ace demoted, one still 11
		{"AsAhAd", 13, true},
		{"AsAh9dKc", 21, false}, // both aces demoted
		{"Ts9h5d", 24, false},   // bust
		{"KsQhJd", 30, false},
	}

	for _, tt := range tests {
		total, soft := handOf(t, tt.cards).Value()
		if total != tt.total || soft != tt.soft {
			t.Errorf("Value(%s) = (%d, %v), want (%d, %v)", tt.cards, total, soft, tt.total, tt.soft)
		}
	}
}

func TestHandValueOrderIndependent(t *testing.T) {
	perms := []string{"AsKh9d", "As9dKh", "Kh9dAs", "KhAs9d", "9dAsKh", "9dKhAs"}
	for _, p := range perms {
		total, soft := handOf(t, p).Value()
		if total != 20 || soft {
			t.Errorf("Value(%s) = (%d, %v), want (20, false)", p, total, soft)
		}
	}
}

func TestIsBust(t *testing.T) {
	if handOf(t, "Ts9h2d").IsBust() {
		t.Error("21 is not a bust")
	}
	if !handOf(t, "Ts9h5d").IsBust() {
		t.Error("24 is a bust")
	}
	if handOf(t, "AsAh9dKc").IsBust() {
		t.Error("Ace demotion should rescue the hand")
	}
}

func TestIsNatural(t *testing.T) {
	tests := []struct {
		cards   string
		natural bool
	}{
		{"AsKh", true},
		{"AsTh", true},
		{"KhAs", true},
		{"As9h", false},   // 20
		{"Ts5h6d", false}, // 21 in three cards
		{"AsKhQd", false}, // three cards
		{"TsTh", false},   // 20
	}

	for _, tt := range tests {
		if got := handOf(t, tt.cards).IsNatural(); got != tt.natural {
			t.Errorf("IsNatural(%s) = %v, want %v", tt.cards, got, tt.natural)
		}
	}
}

func TestCanSplitPair(t *testing.T) {
	tests := []struct {
		cards string
		can   bool
	}{
		{"8s8h", true},
		{"AsAh", true},
		{"TsKh", true}, // equal blackjack value, not equal rank
		{"JsQh", true},
		{"8s9h", false},
		{"As9h", false},
		{"8s8h8d", false}, // three cards
	}

	for _, tt := range tests {
		if got := handOf(t, tt.cards).CanSplitPair(); got != tt.can {
			t.Errorf("CanSplitPair(%s) = %v, want %v", tt.cards, got, tt.can)
		}
	}
}

func TestResolveOnce(t *testing.T) {
	h := handOf(t, "Ts9h")
	h.resolve(OutcomeWin)
	h.resolve(OutcomeLose)
	if h.Outcome != OutcomeWin {
		t.Errorf("Outcome overwritten to %s", h.Outcome)
	}
}
