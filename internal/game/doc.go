// Package game implements the core blackjack session engine.
//
// The main type is Session, which manages one game instance: the deck, the
// dealer hand, and an ordered list of seats, each holding one to three hands
// (splits). Sessions are advanced by short non-blocking Step calls from a
// shared periodic scheduler rather than by direct function calls, so many
// sessions can progress independently without one slow player stalling the
// rest.
//
// # Basic Usage
//
// Create a session and drive it with Step:
//
//	s, err := game.NewSession([]game.SeatConfig{
//	    {PlayerID: "alice", Bankroll: 100, Stake: 5},
//	})
//	// On each scheduler tick:
//	s.Step()
//	// When the host receives a player's choice:
//	err = s.Submit("alice", 0, game.ActionHit)
//
// # Deterministic Testing
//
// Provide a stacked deck for complete control over the deal:
//
//	d := deck.NewStacked(deck.MustParseCards("TsTh9s9h")...)
//	s, _ := game.NewSession(seats, game.WithDeck(d))
//
// # Architecture
//
// Session delegates to specialized components:
//   - Hand: card evaluation (soft/hard ace, bust, natural) and outcome tags
//   - Seat: per-player bankroll, split management, and the acting cursor
//   - deck.Deck: shuffled cards with transparent replenishment
//   - EventBus: lifecycle and play events for the host to forward
//
// Input arrives through Submit, which validates synchronously and records
// the latest choice without blocking; the next Step consumes it. A per-hand
// deadline forces a stand when no input arrives in time.
package game
