package game

import (
	"time"

	"github.com/hotwired/blackjack/internal/deck"
)

// EventType represents a session event type with type safety
type EventType string

// EventType constants for session lifecycle and play events
const (
	EventTypeSessionStart EventType = "session_start"
	EventTypePlayerAction EventType = "player_action"
	EventTypeTurnTimeout  EventType = "turn_timeout"
	EventTypeHandSettled  EventType = "hand_settled"
	EventTypeSessionEnd   EventType = "session_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// SessionEvent represents any event published by a session
type SessionEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// SessionStartEvent is published once the initial deal completes.
type SessionStartEvent struct {
	SessionID    string
	Players      []string
	DealerUpCard deck.Card
	timestamp    time.Time
}

func (e SessionStartEvent) EventType() EventType { return EventTypeSessionStart }
func (e SessionStartEvent) Timestamp() time.Time { return e.timestamp }

// NewSessionStartEvent creates a new session start event
func NewSessionStartEvent(sessionID string, players []string, upCard deck.Card) SessionStartEvent {
	return SessionStartEvent{
		SessionID:    sessionID,
		Players:      players,
		DealerUpCard: upCard,
		timestamp:    time.Now(),
	}
}

// PlayerActionEvent is published when an action is applied to the acting
// hand, whether submitted by the player or forced by a timeout.
type PlayerActionEvent struct {
	SessionID string
	PlayerID  string
	HandIndex int
	Action    Action
	Forced    bool
	Busted    bool
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(sessionID, playerID string, handIndex int, action Action, forced, busted bool) PlayerActionEvent {
	return PlayerActionEvent{
		SessionID: sessionID,
		PlayerID:  playerID,
		HandIndex: handIndex,
		Action:    action,
		Forced:    forced,
		Busted:    busted,
		timestamp: time.Now(),
	}
}

// TurnTimeoutEvent is published when a hand's deadline passes with no input
// and the engine forces a stand. Informational only, never an error.
type TurnTimeoutEvent struct {
	SessionID string
	PlayerID  string
	HandIndex int
	timestamp time.Time
}

func (e TurnTimeoutEvent) EventType() EventType { return EventTypeTurnTimeout }
func (e TurnTimeoutEvent) Timestamp() time.Time { return e.timestamp }

// NewTurnTimeoutEvent creates a new turn timeout event
func NewTurnTimeoutEvent(sessionID, playerID string, handIndex int) TurnTimeoutEvent {
	return TurnTimeoutEvent{
		SessionID: sessionID,
		PlayerID:  playerID,
		HandIndex: handIndex,
		timestamp: time.Now(),
	}
}

// HandSettledEvent is published during settlement for every hand the dealer
// was compared against. Payout is the amount credited back to the bankroll
// (stake plus winnings; zero on a loss).
type HandSettledEvent struct {
	SessionID string
	PlayerID  string
	HandIndex int
	Outcome   Outcome
	Stake     int
	Payout    int
	timestamp time.Time
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }
func (e HandSettledEvent) Timestamp() time.Time { return e.timestamp }

// NewHandSettledEvent creates a new hand settled event
func NewHandSettledEvent(sessionID, playerID string, handIndex int, outcome Outcome, stake, payout int) HandSettledEvent {
	return HandSettledEvent{
		SessionID: sessionID,
		PlayerID:  playerID,
		HandIndex: handIndex,
		Outcome:   outcome,
		Stake:     stake,
		Payout:    payout,
		timestamp: time.Now(),
	}
}

// SessionEndEvent is published exactly once when the session reaches the
// finished phase, whether through settlement or out-of-band cancellation.
type SessionEndEvent struct {
	SessionID string
	Reason    string
	Bankrolls map[string]int
	timestamp time.Time
}

func (e SessionEndEvent) EventType() EventType { return EventTypeSessionEnd }
func (e SessionEndEvent) Timestamp() time.Time { return e.timestamp }

// NewSessionEndEvent creates a new session end event
func NewSessionEndEvent(sessionID, reason string, bankrolls map[string]int) SessionEndEvent {
	return SessionEndEvent{
		SessionID: sessionID,
		Reason:    reason,
		Bankrolls: bankrolls,
		timestamp: time.Now(),
	}
}

// EventSubscriber can subscribe to session events
type EventSubscriber interface {
	OnEvent(event SessionEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event SessionEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Subscribers
// are registered before the session is scheduled; delivery is synchronous.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event SessionEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
