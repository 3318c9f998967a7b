package scheduler

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotwired/blackjack/internal/deck"
	"github.com/hotwired/blackjack/internal/game"
)

// fakeSession counts steps and can be told to panic or finish.
type fakeSession struct {
	mu       sync.Mutex
	id       string
	steps    int
	finished bool
	panics   bool
	forced   string
}

func (f *fakeSession) ID() string { return f.id }

func (f *fakeSession) Step() {
	f.mu.Lock()
	f.steps++
	panics := f.panics
	f.mu.Unlock()
	if panics {
		panic("deliberate fault")
	}
}

func (f *fakeSession) Finished() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finished
}

func (f *fakeSession) Submit(playerID string, handIndex int, action game.Action) error {
	return nil
}

func (f *fakeSession) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished = true
}

func (f *fakeSession) ForceFinish(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished = true
	f.forced = reason
}

func (f *fakeSession) stepCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.steps
}

func newTestScheduler(t *testing.T) (*Scheduler, *quartz.Mock) {
	t.Helper()
	mockClock := quartz.NewMock(t)
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return New(logger, mockClock, time.Second), mockClock
}

func TestTickAdvancesAllSessions(t *testing.T) {
	sc, _ := newTestScheduler(t)

	a := &fakeSession{id: "a"}
	b := &fakeSession{id: "b"}
	sc.Register(a)
	sc.Register(b)
	require.Equal(t, 2, sc.Live())

	sc.Tick()
	sc.Tick()

	assert.Equal(t, 2, a.stepCount())
	assert.Equal(t, 2, b.stepCount())
}

func TestFinishedSessionsAreRemoved(t *testing.T) {
	sc, _ := newTestScheduler(t)

	a := &fakeSession{id: "a"}
	sc.Register(a)

	sc.Tick()
	require.Equal(t, 1, sc.Live())

	a.Cancel()
	sc.Tick()
	assert.Equal(t, 0, sc.Live())
}

func TestPanicIsolatedToOneSession(t *testing.T) {
	sc, _ := newTestScheduler(t)

	bad := &fakeSession{id: "bad", panics: true}
	good := &fakeSession{id: "good"}
	sc.Register(bad)
	sc.Register(good)

	sc.Tick()

	assert.Equal(t, 1, good.stepCount(), "healthy session still advanced")
	assert.Equal(t, "scheduler fault", bad.forced)
	assert.Equal(t, 1, sc.Live(), "faulted session dropped")
}

func TestSubmitRoutesToSession(t *testing.T) {
	sc, _ := newTestScheduler(t)

	a := &fakeSession{id: "a"}
	h := sc.Register(a)

	require.NoError(t, sc.Submit(h, "alice", 0, game.ActionStand))

	sc.Cancel(h)
	sc.Tick()

	err := sc.Submit(h, "alice", 0, game.ActionStand)
	assert.Error(t, err, "submit to a removed session fails")
}

func TestRunTicksOnClock(t *testing.T) {
	mockClock := quartz.NewMock(t)
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	sc := New(logger, mockClock, time.Second)

	a := &fakeSession{id: "a"}
	sc.Register(a)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sc.Run(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()

	// The loop's ticker is created on the Run goroutine, so advance until
	// two ticks have landed.
	require.Eventually(t, func() bool {
		mockClock.Advance(1 * time.Second).MustWait(waitCtx)
		return a.stepCount() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

// End-to-end: a real session driven by the scheduler over a stacked deck.
func TestSchedulerDrivesRealSession(t *testing.T) {
	sc, _ := newTestScheduler(t)

	session, err := game.NewSession([]game.SeatConfig{
		{PlayerID: "alice", Bankroll: 100, Stake: 10},
	}, game.WithDeck(deck.NewStacked(deck.MustParseCards("TsThQs9h")...)))
	require.NoError(t, err)

	h := sc.Register(session)

	sc.Tick() // deal
	require.NoError(t, sc.Submit(h, "alice", 0, game.ActionStand))
	sc.Tick() // apply stand
	sc.Tick() // dealer turn
	sc.Tick() // settle

	require.True(t, session.Finished())
	assert.Equal(t, 0, sc.Live())

	view := session.Render()
	assert.Equal(t, "finished", view.Phase)
	assert.Equal(t, 110, view.Seats[0].Bankroll)
}
