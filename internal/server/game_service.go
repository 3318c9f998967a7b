package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/hotwired/blackjack/internal/game"
	"github.com/hotwired/blackjack/internal/scheduler"
)

// Table tracks the lobby and the live session for one configured table.
// Players join the lobby with a bet; dealing converts the lobby into a
// session, and settlement returns everyone to the lobby.
type Table struct {
	config  TableConfig
	players map[string]int // player name -> bet
	handle  *scheduler.Handle
	session *game.Session
}

// GameService bridges WebSocket connections to the session engine. It owns
// table lobbies, starts sessions on the scheduler, and forwards session
// events back out as broadcast messages.
type GameService struct {
	logger *log.Logger
	sched  *scheduler.Scheduler
	server *Server

	mu     sync.RWMutex
	tables map[string]*Table
}

// NewGameService creates the service from the configured tables.
func NewGameService(config *ServerConfig, sched *scheduler.Scheduler, server *Server, logger *log.Logger) *GameService {
	svc := &GameService{
		logger: logger.WithPrefix("game"),
		sched:  sched,
		server: server,
		tables: make(map[string]*Table),
	}

	for _, tc := range config.Tables {
		svc.tables[tc.Name] = &Table{
			config:  tc,
			players: make(map[string]int),
		}
	}

	return svc
}

// GetTable returns the table by ID, or nil
func (svc *GameService) GetTable(tableID string) *Table {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.tables[tableID]
}

// JoinTable seats a player in the table lobby with their bet
func (svc *GameService) JoinTable(tableID, playerName string, bet int) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	table, ok := svc.tables[tableID]
	if !ok {
		return fmt.Errorf("table not found: %s", tableID)
	}
	if table.session != nil {
		return fmt.Errorf("table %s has a round in progress", tableID)
	}
	if _, seated := table.players[playerName]; seated {
		return fmt.Errorf("player %s already seated at %s", playerName, tableID)
	}
	if len(table.players) >= table.config.MaxSeats {
		return fmt.Errorf("table %s is full", tableID)
	}
	if bet == 0 {
		bet = table.config.MinBet
	}
	if bet < table.config.MinBet || bet > table.config.MaxBet {
		return fmt.Errorf("bet %d outside table limits %d-%d", bet, table.config.MinBet, table.config.MaxBet)
	}

	table.players[playerName] = bet
	svc.logger.Info("player joined table", "table", tableID, "player", playerName, "bet", bet)
	return nil
}

// LeaveTable removes a player from the lobby. If a session is in progress
// the whole session is cancelled, which marks unresolved hands surrendered.
func (svc *GameService) LeaveTable(tableID, playerName string) error {
	svc.mu.Lock()

	table, ok := svc.tables[tableID]
	if !ok {
		svc.mu.Unlock()
		return fmt.Errorf("table not found: %s", tableID)
	}
	if _, seated := table.players[playerName]; !seated {
		svc.mu.Unlock()
		return fmt.Errorf("player %s not seated at %s", playerName, tableID)
	}

	delete(table.players, playerName)
	handle := table.handle

	// Cancellation publishes a session end event that re-enters the
	// service, so it runs outside the lock.
	svc.mu.Unlock()

	if handle != nil {
		svc.logger.Info("player left mid-session, cancelling", "table", tableID, "player", playerName)
		svc.sched.Cancel(handle)
	}
	return nil
}

// ListTables returns lobby info for every configured table
func (svc *GameService) ListTables() []TableInfo {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	tables := make([]TableInfo, 0, len(svc.tables))
	for id, table := range svc.tables {
		status := "waiting"
		if table.session != nil {
			status = "playing"
		}
		tables = append(tables, TableInfo{
			ID:          id,
			Name:        table.config.Name,
			PlayerCount: len(table.players),
			MaxSeats:    table.config.MaxSeats,
			Stakes:      fmt.Sprintf("%d-%d", table.config.MinBet, table.config.MaxBet),
			Status:      status,
		})
	}
	return tables
}

// Deal starts a session for everyone seated at the table. Any seated player
// may trigger the deal.
func (svc *GameService) Deal(tableID, playerName string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	table, ok := svc.tables[tableID]
	if !ok {
		return fmt.Errorf("table not found: %s", tableID)
	}
	if table.session != nil {
		return fmt.Errorf("table %s has a round in progress", tableID)
	}
	if _, seated := table.players[playerName]; !seated {
		return fmt.Errorf("player %s not seated at %s", playerName, tableID)
	}

	seats := make([]game.SeatConfig, 0, len(table.players))
	for name, bet := range table.players {
		seats = append(seats, game.SeatConfig{
			PlayerID: name,
			Bankroll: table.config.DefaultBankroll,
			Stake:    bet,
		})
	}

	bus := game.NewEventBus()
	bus.Subscribe(&eventForwarder{svc: svc, tableID: tableID})

	session, err := game.NewSession(seats,
		game.WithLogger(svc.logger),
		game.WithEventBus(bus),
		game.WithTurnTimeout(table.config.TurnTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	table.session = session
	table.handle = svc.sched.Register(session)
	svc.logger.Info("session dealt", "table", tableID, "session", session.ID(), "players", len(seats))
	return nil
}

// HandlePlayerChoice routes a choice to the player's live session. Illegal
// moves come back as typed errors with the engine's reason.
func (svc *GameService) HandlePlayerChoice(playerName string, data PlayerChoiceData) error {
	svc.mu.RLock()
	var table *Table
	for _, t := range svc.tables {
		if _, seated := t.players[playerName]; seated && t.session != nil {
			table = t
			break
		}
	}
	svc.mu.RUnlock()

	if table == nil {
		return fmt.Errorf("player %s has no session in progress", playerName)
	}

	action, err := game.ParseAction(data.Action)
	if err != nil {
		return err
	}

	err = svc.sched.Submit(table.handle, playerName, data.HandIndex, action)
	var invalid *game.InvalidMoveError
	if errors.As(err, &invalid) {
		svc.logger.Debug("invalid move", "player", playerName, "action", action, "reason", invalid.Reason)
	}
	return err
}

// sessionEnded returns the table to the lobby state once its session
// finishes. Called from the event forwarder.
func (svc *GameService) sessionEnded(tableID string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	table, ok := svc.tables[tableID]
	if !ok || table.session == nil {
		return
	}
	table.session = nil
	table.handle = nil
}

// eventForwarder relays session events to every connection at the table,
// followed by a fresh state projection so clients never need to derive
// state from the event stream.
type eventForwarder struct {
	svc     *GameService
	tableID string
}

func (f *eventForwarder) OnEvent(event game.SessionEvent) {
	msg, err := NewMessage(MessageType(event.EventType().String()), event)
	if err != nil {
		f.svc.logger.Error("failed to encode session event", "type", event.EventType(), "error", err)
		return
	}
	if f.svc.server != nil {
		// A forced-stand notice goes to the affected player alone; the rest
		// of the table sees the resulting action event.
		if te, ok := event.(game.TurnTimeoutEvent); ok {
			if err := f.svc.server.SendToPlayer(te.PlayerID, msg); err != nil {
				f.svc.logger.Debug("timeout notice undeliverable", "player", te.PlayerID, "error", err)
			}
		} else {
			f.svc.server.BroadcastToTable(f.tableID, msg)
		}
	}

	if event.EventType() == game.EventTypeSessionEnd {
		f.svc.sessionEnded(f.tableID)
		return
	}

	// Events are published while the session holds its own lock and Render
	// needs that lock, so the projection is taken once the step completes.
	go f.broadcastState()
}

func (f *eventForwarder) broadcastState() {
	table := f.svc.GetTable(f.tableID)
	if table == nil {
		return
	}
	f.svc.mu.RLock()
	session := table.session
	f.svc.mu.RUnlock()
	if session == nil || f.svc.server == nil {
		return
	}

	msg, err := NewMessage(MessageTypeSessionState, SessionStateData{State: session.Render()})
	if err != nil {
		f.svc.logger.Error("failed to encode session state", "error", err)
		return
	}
	f.svc.server.BroadcastToTable(f.tableID, msg)
}
