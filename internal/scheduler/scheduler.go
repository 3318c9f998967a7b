// Package scheduler drives every live blackjack session from a single
// periodic tick. Sessions own their state exclusively, so the tick advances
// them in parallel; only the registry itself needs locking.
package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/hotwired/blackjack/internal/game"
)

// DefaultTickInterval matches the original updater cadence.
const DefaultTickInterval = 5 * time.Second

// Session is the subset of the game session the scheduler drives. Satisfied
// by *game.Session.
type Session interface {
	ID() string
	Step()
	Finished() bool
	Submit(playerID string, handIndex int, action game.Action) error
	Cancel()
	ForceFinish(reason string)
}

// Handle is an opaque reference to a registered session, used by the host
// for input routing and out-of-band cancellation.
type Handle struct {
	id string
}

// ID returns the underlying session ID.
func (h *Handle) ID() string {
	return h.id
}

// Scheduler owns the registry of live sessions. On each tick it advances
// every unfinished session by one step and drops the ones that report
// finished. A panic inside one session's step is isolated: the session is
// force-finished and the tick continues for the others.
type Scheduler struct {
	logger   *log.Logger
	clock    quartz.Clock
	interval time.Duration

	mu       sync.Mutex
	sessions map[string]Session
}

// New constructs an empty scheduler. A nil clock uses the real one.
func New(logger *log.Logger, clock quartz.Clock, interval time.Duration) *Scheduler {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Scheduler{
		logger:   logger.WithPrefix("scheduler"),
		clock:    clock,
		interval: interval,
		sessions: make(map[string]Session),
	}
}

// Register adds a session to the registry and returns its handle.
func (sc *Scheduler) Register(s Session) *Handle {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.sessions[s.ID()] = s
	sc.logger.Info("session registered", "session", s.ID(), "live", len(sc.sessions))
	return &Handle{id: s.ID()}
}

// Submit routes a player's choice to the session behind the handle. Returns
// a *game.InvalidMoveError for illegal moves, or an error when the session
// is no longer live.
func (sc *Scheduler) Submit(h *Handle, playerID string, handIndex int, action game.Action) error {
	sc.mu.Lock()
	s, ok := sc.sessions[h.id]
	sc.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %s is not live", h.id)
	}
	return s.Submit(playerID, handIndex, action)
}

// Cancel tears a session down out-of-band (user disconnect, moderation).
// The session is finished immediately and dropped on the next tick.
func (sc *Scheduler) Cancel(h *Handle) {
	sc.mu.Lock()
	s, ok := sc.sessions[h.id]
	sc.mu.Unlock()

	if ok {
		s.Cancel()
	}
}

// Live returns the number of registered sessions.
func (sc *Scheduler) Live() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return len(sc.sessions)
}

// Run drives the tick loop until the context is canceled.
func (sc *Scheduler) Run(ctx context.Context) error {
	ticker := sc.clock.NewTicker(sc.interval)
	defer ticker.Stop()

	sc.logger.Info("tick loop started", "interval", sc.interval)
	for {
		select {
		case <-ctx.Done():
			sc.logger.Info("tick loop stopped")
			return ctx.Err()
		case <-ticker.C:
			sc.Tick()
		}
	}
}

// Tick advances every live session once and removes the finished ones.
// Sessions share no mutable state, so they are stepped in parallel.
func (sc *Scheduler) Tick() {
	sc.mu.Lock()
	snapshot := make([]Session, 0, len(sc.sessions))
	for _, s := range sc.sessions {
		snapshot = append(snapshot, s)
	}
	sc.mu.Unlock()

	var g errgroup.Group
	for _, s := range snapshot {
		g.Go(func() error {
			sc.step(s)
			return nil
		})
	}
	_ = g.Wait()

	sc.mu.Lock()
	for id, s := range sc.sessions {
		if s.Finished() {
			delete(sc.sessions, id)
			sc.logger.Info("session removed", "session", id, "live", len(sc.sessions))
		}
	}
	sc.mu.Unlock()
}

// step advances one session, isolating panics so a single faulted session
// cannot abort the tick for the rest.
func (sc *Scheduler) step(s Session) {
	defer func() {
		if r := recover(); r != nil {
			sc.logger.Error("session step panicked",
				"session", s.ID(),
				"panic", r,
				"stack", string(debug.Stack()))
			s.ForceFinish("scheduler fault")
		}
	}()

	if !s.Finished() {
		s.Step()
	}
}
