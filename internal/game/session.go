package game

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/hotwired/blackjack/internal/deck"
	"github.com/hotwired/blackjack/internal/gameid"
)

// Phase is the session's global state. Transitions only move forward:
// dealing → player-turns → dealer-turn → settlement → finished, with
// dealing allowed to skip straight to settlement when every hand resolves
// on the deal.
type Phase int

const (
	PhaseDealing Phase = iota
	PhasePlayerTurns
	PhaseDealerTurn
	PhaseSettlement
	PhaseFinished
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhasePlayerTurns:
		return "player-turns"
	case PhaseDealerTurn:
		return "dealer-turn"
	case PhaseSettlement:
		return "settlement"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// The dealer draws to any total below this and stands at or above it,
// regardless of softness.
const dealerStandTotal = 17

// DefaultTurnTimeoutTicks is how many scheduler ticks an acting hand waits
// for input before the engine forces a stand.
const DefaultTurnTimeoutTicks = 6

// SessionOption configures a Session during creation.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	deck         *deck.Deck
	logger       *log.Logger
	bus          EventBus
	timeoutTicks int
}

// WithDeck provides a pre-built deck, typically a stacked one for
// deterministic tests.
func WithDeck(d *deck.Deck) SessionOption {
	return func(cfg *sessionConfig) { cfg.deck = d }
}

// WithLogger sets the session logger.
func WithLogger(logger *log.Logger) SessionOption {
	return func(cfg *sessionConfig) { cfg.logger = logger }
}

// WithEventBus sets the bus session events are published to.
func WithEventBus(bus EventBus) SessionOption {
	return func(cfg *sessionConfig) { cfg.bus = bus }
}

// WithTurnTimeout overrides the per-hand input deadline, in ticks.
func WithTurnTimeout(ticks int) SessionOption {
	return func(cfg *sessionConfig) { cfg.timeoutTicks = ticks }
}

// Session is one blackjack game instance: a deck, a dealer hand, an ordered
// list of seats, and a state machine advanced one short step per scheduler
// tick. A session owns all of its state exclusively; distinct sessions share
// nothing and may be advanced in parallel.
//
// Step never blocks. A tick that finds no input for the acting hand leaves
// the session unchanged apart from the tick counter, and the per-hand
// deadline eventually forces a stand so absent players can never stall the
// table.
type Session struct {
	mu sync.Mutex

	id     string
	logger *log.Logger
	bus    EventBus

	deck   *deck.Deck
	dealer *Hand
	seats  []*Seat

	phase      Phase
	tick       uint64
	actingSeat int
	deadline   uint64

	timeoutTicks int

	pending    Action
	hasPending bool
}

// NewSession creates a session in the dealing phase. Stakes are validated
// against and deducted from each seat's bankroll immediately; cards are not
// dealt until the first Step.
func NewSession(seatConfigs []SeatConfig, opts ...SessionOption) (*Session, error) {
	if len(seatConfigs) == 0 {
		return nil, fmt.Errorf("session requires at least one seat")
	}

	cfg := &sessionConfig{
		timeoutTicks: DefaultTurnTimeoutTicks,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.deck == nil {
		cfg.deck = deck.New(nil)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.timeoutTicks <= 0 {
		cfg.timeoutTicks = DefaultTurnTimeoutTicks
	}

	seats := make([]*Seat, 0, len(seatConfigs))
	for _, sc := range seatConfigs {
		seat, err := newSeat(sc)
		if err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	id := gameid.Generate()
	return &Session{
		id:           id,
		logger:       cfg.logger.With("session", id),
		bus:          cfg.bus,
		deck:         cfg.deck,
		dealer:       NewHand(0),
		seats:        seats,
		phase:        PhaseDealing,
		timeoutTicks: cfg.timeoutTicks,
	}, nil
}

// ID returns the session's opaque identifier.
func (s *Session) ID() string {
	return s.id
}

// Finished reports whether the session has reached its terminal phase.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseFinished
}

// Step advances the session by one short, non-blocking increment. The
// scheduler calls it once per tick until the session reports finished.
func (s *Session) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseFinished {
		return
	}
	s.tick++

	switch s.phase {
	case PhaseDealing:
		s.deal()
	case PhasePlayerTurns:
		s.playerTurn()
	case PhaseDealerTurn:
		s.dealerTurn()
	case PhaseSettlement:
		s.settle()
	}
}

// Submit records a player's choice for the acting hand. It validates the
// move synchronously and returns an *InvalidMoveError when the named hand is
// not acting, the action is outside the legal set, or a split/double would
// exceed the bankroll. A valid submission replaces any earlier one that has
// not yet been consumed; the next tick applies it.
func (s *Session) Submit(playerID string, handIndex int, action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePlayerTurns {
		return invalidMove("no hand is awaiting input in phase %s", s.phase)
	}

	seat := s.seats[s.actingSeat]
	if seat.PlayerID != playerID || seat.ActingIndex() != handIndex {
		return invalidMove("hand %d of player %s is not acting", handIndex, playerID)
	}

	hand := seat.ActingHand()
	switch action {
	case ActionHit, ActionStand, ActionSurrender:
	case ActionDouble:
		if len(hand.Cards) != 2 {
			return invalidMove("double is only allowed on a two-card hand")
		}
		if !seat.canAfford(hand.Stake) {
			return invalidMove("insufficient bankroll to double")
		}
	case ActionSplit:
		if !hand.CanSplitPair() {
			return invalidMove("hand cannot be split")
		}
		if len(seat.Hands) >= MaxHands {
			return invalidMove("seat already holds %d hands", MaxHands)
		}
		if !seat.canAfford(hand.Stake) {
			return invalidMove("insufficient bankroll to split")
		}
	default:
		return invalidMove("unknown action")
	}

	s.pending = action
	s.hasPending = true
	return nil
}

// Cancel terminates the session out-of-band: every still-pending hand is
// marked surrendered, stakes already wagered are not refunded, and no
// artificial loss is applied.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish("canceled")
}

// ForceFinish terminates a faulted session. Used by the scheduler when a
// step panics, so a single bad session cannot take down the tick.
func (s *Session) ForceFinish(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish(reason)
}

func (s *Session) deal() {
	for pass := 0; pass < 2; pass++ {
		for _, seat := range s.seats {
			seat.Hands[0].Add(s.deck.Draw())
		}
		s.dealer.Add(s.deck.Draw())
	}

	players := make([]string, len(s.seats))
	for i, seat := range s.seats {
		players[i] = seat.PlayerID
	}
	s.bus.Publish(NewSessionStartEvent(s.id, players, s.dealer.Cards[0]))
	s.logger.Info("dealt initial cards", "players", len(s.seats), "upcard", s.dealer.Cards[0].String())

	s.actingSeat = 0
	if s.positionCursor() {
		s.phase = PhasePlayerTurns
		s.startTurn()
	} else {
		// Every hand resolved on the deal; the dealer keeps two cards.
		s.phase = PhaseSettlement
	}
}

func (s *Session) playerTurn() {
	if s.hasPending {
		action := s.pending
		s.hasPending = false
		s.apply(action, false)
		return
	}

	if s.tick > s.deadline {
		seat := s.seats[s.actingSeat]
		s.bus.Publish(NewTurnTimeoutEvent(s.id, seat.PlayerID, seat.ActingIndex()))
		s.logger.Info("turn timed out, forcing stand", "player", seat.PlayerID, "hand", seat.ActingIndex())
		s.apply(ActionStand, true)
	}
}

func (s *Session) apply(action Action, forced bool) {
	seat := s.seats[s.actingSeat]
	handIndex := seat.ActingIndex()
	hand := seat.ActingHand()
	busted := false

	switch action {
	case ActionHit:
		hand.Add(s.deck.Draw())
		if hand.IsBust() {
			hand.resolve(OutcomeBusted)
			busted = true
			s.advanceCursor()
		} else {
			s.deadline = s.tick + uint64(s.timeoutTicks)
		}

	case ActionStand:
		seat.acting++
		s.advanceCursor()

	case ActionDouble:
		seat.Bankroll -= hand.Stake
		hand.Stake *= 2
		hand.Add(s.deck.Draw())
		if hand.IsBust() {
			hand.resolve(OutcomeBusted)
			busted = true
		}
		seat.acting++
		s.advanceCursor()

	case ActionSplit:
		seat.split(s.deck)
		s.deadline = s.tick + uint64(s.timeoutTicks)
		// A split hand may land on 21 immediately; move past it if so.
		s.advanceCursor()

	case ActionSurrender:
		hand.resolve(OutcomeSurrendered)
		seat.acting++
		s.advanceCursor()
	}

	s.bus.Publish(NewPlayerActionEvent(s.id, seat.PlayerID, handIndex, action, forced, busted))
	s.logger.Debug("applied action",
		"player", seat.PlayerID,
		"hand", handIndex,
		"action", action.String(),
		"forced", forced,
		"busted", busted)
}

// positionCursor moves the acting cursor to the next hand that needs input,
// advancing across seats in registration order. Returns false when no hand
// remains pending.
func (s *Session) positionCursor() bool {
	for ; s.actingSeat < len(s.seats); s.actingSeat++ {
		seat := s.seats[s.actingSeat]
		seat.skipSettled()
		if seat.ActingHand() != nil {
			return true
		}
	}
	return false
}

// advanceCursor repositions after an action and transitions to the dealer
// turn once the last hand of the last seat has acted.
func (s *Session) advanceCursor() {
	if s.positionCursor() {
		s.startTurn()
		return
	}
	s.phase = PhaseDealerTurn
	s.hasPending = false
}

func (s *Session) startTurn() {
	s.deadline = s.tick + uint64(s.timeoutTicks)
	s.hasPending = false
}

func (s *Session) dealerTurn() {
	for {
		total, _ := s.dealer.Value()
		if total >= dealerStandTotal {
			break
		}
		s.dealer.Add(s.deck.Draw())
	}
	total, _ := s.dealer.Value()
	s.logger.Debug("dealer done", "total", total, "cards", len(s.dealer.Cards))
	s.phase = PhaseSettlement
}

func (s *Session) settle() {
	dealerTotal, _ := s.dealer.Value()
	dealerNatural := s.dealer.IsNatural()
	dealerBust := dealerTotal > 21

	for _, seat := range s.seats {
		for i, hand := range seat.Hands {
			if hand.Outcome.Terminal() {
				// Busts and surrenders forfeited their stake during play.
				continue
			}

			total, _ := hand.Value()
			var outcome Outcome
			var payout int
			switch {
			case hand.IsNatural() && !dealerNatural:
				outcome = OutcomeBlackjack
				payout = hand.Stake + hand.Stake*3/2
			case dealerNatural && !hand.IsNatural():
				outcome = OutcomeLose
			case dealerNatural && hand.IsNatural():
				outcome = OutcomePush
				payout = hand.Stake
			case dealerBust:
				outcome = OutcomeWin
				payout = hand.Stake * 2
			case total > dealerTotal:
				outcome = OutcomeWin
				payout = hand.Stake * 2
			case total == dealerTotal:
				outcome = OutcomePush
				payout = hand.Stake
			default:
				outcome = OutcomeLose
			}

			hand.resolve(outcome)
			seat.Bankroll += payout
			s.bus.Publish(NewHandSettledEvent(s.id, seat.PlayerID, i, outcome, hand.Stake, payout))
		}
		if seat.Bankroll < 0 {
			seat.Bankroll = 0
		}
	}

	s.finish("settled")
}

// finish is the single terminal transition. Callers hold the mutex.
func (s *Session) finish(reason string) {
	if s.phase == PhaseFinished {
		return
	}

	bankrolls := make(map[string]int, len(s.seats))
	for _, seat := range s.seats {
		for _, hand := range seat.Hands {
			hand.resolve(OutcomeSurrendered)
		}
		if seat.Bankroll < 0 {
			seat.Bankroll = 0
		}
		bankrolls[seat.PlayerID] = seat.Bankroll
	}

	s.phase = PhaseFinished
	s.hasPending = false
	s.bus.Publish(NewSessionEndEvent(s.id, reason, bankrolls))
	s.logger.Info("session finished", "reason", reason, "ticks", s.tick)
}
