package deck

import "testing"

func TestPipValue(t *testing.T) {
	tests := []struct {
		card  string
		value int
	}{
		{"2s", 2},
		{"7h", 7},
		{"9d", 9},
		{"Tc", 10},
		{"Js", 10},
		{"Qh", 10},
		{"Kd", 10},
		{"As", 11},
	}

	for _, tt := range tests {
		card, err := ParseCard(tt.card)
		if err != nil {
			t.Fatalf("ParseCard(%q) failed: %v", tt.card, err)
		}
		if got := card.PipValue(); got != tt.value {
			t.Errorf("PipValue(%s) = %d, want %d", tt.card, got, tt.value)
		}
	}
}

func TestIsTenValue(t *testing.T) {
	for _, s := range []string{"Ts", "Jh", "Qd", "Kc"} {
		card, _ := ParseCard(s)
		if !card.IsTenValue() {
			t.Errorf("%s should be ten-valued", s)
		}
	}
	for _, s := range []string{"9s", "As", "2h"} {
		card, _ := ParseCard(s)
		if card.IsTenValue() {
			t.Errorf("%s should not be ten-valued", s)
		}
	}
}

func TestParseCard(t *testing.T) {
	card, err := ParseCard("As")
	if err != nil {
		t.Fatalf("ParseCard failed: %v", err)
	}
	if card.Rank != Ace || card.Suit != Spades {
		t.Errorf("Expected A♠, got %s", card)
	}

	// Mixed case is accepted
	card, err = ParseCard("tH")
	if err != nil {
		t.Fatalf("ParseCard failed: %v", err)
	}
	if card.Rank != Ten || card.Suit != Hearts {
		t.Errorf("Expected T♥, got %s", card)
	}

	for _, bad := range []string{"", "A", "1s", "Ax", "10s"} {
		if _, err := ParseCard(bad); err == nil {
			t.Errorf("ParseCard(%q) should fail", bad)
		}
	}
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("AsKhQd")
	if err != nil {
		t.Fatalf("ParseCards failed: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(cards))
	}
	if cards[0].Rank != Ace || cards[1].Rank != King || cards[2].Rank != Queen {
		t.Errorf("Cards parsed out of order: %v", cards)
	}

	if _, err := ParseCards("AsK"); err == nil {
		t.Error("Odd-length string should fail")
	}
}
