package server

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotwired/blackjack/internal/scheduler"
)

func newTestService(t *testing.T) (*GameService, *scheduler.Scheduler) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	sched := scheduler.New(logger, quartz.NewMock(t), time.Second)
	svc := NewGameService(DefaultServerConfig(), sched, nil, logger)
	return svc, sched
}

func TestJoinTableValidation(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.JoinTable("main", "alice", 10))

	assert.Error(t, svc.JoinTable("nope", "bob", 10), "unknown table")
	assert.Error(t, svc.JoinTable("main", "alice", 10), "double join")
	assert.Error(t, svc.JoinTable("main", "bob", 1), "bet below minimum")
	assert.Error(t, svc.JoinTable("main", "bob", 10000), "bet above maximum")

	// Zero bet falls back to the table minimum
	require.NoError(t, svc.JoinTable("main", "bob", 0))
	assert.Equal(t, 5, svc.GetTable("main").players["bob"])
}

func TestJoinTableFull(t *testing.T) {
	svc, _ := newTestService(t)

	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, svc.JoinTable("main", name, 10))
	}
	assert.Error(t, svc.JoinTable("main", "e", 10))
}

func TestDealStartsSession(t *testing.T) {
	svc, sched := newTestService(t)

	require.NoError(t, svc.JoinTable("main", "alice", 10))
	require.NoError(t, svc.JoinTable("main", "bob", 20))

	assert.Error(t, svc.Deal("main", "carol"), "only seated players can deal")

	require.NoError(t, svc.Deal("main", "alice"))
	assert.Equal(t, 1, sched.Live())
	assert.Error(t, svc.Deal("main", "bob"), "round already in progress")
	assert.Error(t, svc.JoinTable("main", "carol", 10), "no joining mid-round")

	tables := svc.ListTables()
	require.Len(t, tables, 1)
	assert.Equal(t, "playing", tables[0].Status)
}

func TestHandlePlayerChoice(t *testing.T) {
	svc, sched := newTestService(t)

	require.NoError(t, svc.JoinTable("main", "alice", 10))

	// No session yet
	err := svc.HandlePlayerChoice("alice", PlayerChoiceData{Action: "stand"})
	assert.Error(t, err)

	require.NoError(t, svc.Deal("main", "alice"))
	sched.Tick() // deal cards

	err = svc.HandlePlayerChoice("alice", PlayerChoiceData{Action: "jump"})
	assert.Error(t, err, "unknown action string")

	// A stand is either accepted or, if the deal resolved every hand
	// already, rejected as an invalid move. Both are well-formed.
	_ = svc.HandlePlayerChoice("alice", PlayerChoiceData{HandIndex: 0, Action: "stand"})
}

func TestSessionEndReturnsTableToLobby(t *testing.T) {
	svc, sched := newTestService(t)

	require.NoError(t, svc.JoinTable("main", "alice", 10))
	require.NoError(t, svc.Deal("main", "alice"))

	for i := 0; i < 20 && sched.Live() > 0; i++ {
		_ = svc.HandlePlayerChoice("alice", PlayerChoiceData{HandIndex: 0, Action: "stand"})
		sched.Tick()
	}

	require.Equal(t, 0, sched.Live(), "session did not finish")
	table := svc.GetTable("main")
	assert.Nil(t, table.session)
	assert.Nil(t, table.handle)

	tables := svc.ListTables()
	assert.Equal(t, "waiting", tables[0].Status)

	// The table is joinable again
	require.NoError(t, svc.JoinTable("main", "bob", 10))
}

func TestLeaveMidSessionCancels(t *testing.T) {
	svc, sched := newTestService(t)

	require.NoError(t, svc.JoinTable("main", "alice", 10))
	require.NoError(t, svc.Deal("main", "alice"))
	sched.Tick()

	require.NoError(t, svc.LeaveTable("main", "alice"))

	sched.Tick() // finished session is swept
	assert.Equal(t, 0, sched.Live())
	assert.Nil(t, svc.GetTable("main").session)
}
