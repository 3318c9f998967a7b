package server

import (
	"encoding/json"
	"time"

	"github.com/hotwired/blackjack/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type AuthData struct {
	PlayerName string `json:"playerName"`
}

type JoinTableData struct {
	TableID string `json:"tableId"`
	Bet     int    `json:"bet"`
}

type LeaveTableData struct {
	TableID string `json:"tableId"`
}

// PlayerChoiceData carries the latest choice for the player's acting hand.
// Submitting a new choice before the next tick replaces the previous one.
type PlayerChoiceData struct {
	HandIndex int    `json:"handIndex"`
	Action    string `json:"action"`
}

// Server → Client Messages

type AuthResponseData struct {
	Success  bool   `json:"success"`
	PlayerID string `json:"playerId,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TableInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
	MaxSeats    int    `json:"maxSeats"`
	Stakes      string `json:"stakes"`
	Status      string `json:"status"`
}

type TableListData struct {
	Tables []TableInfo `json:"tables"`
}

type TableJoinedData struct {
	TableID string   `json:"tableId"`
	Players []string `json:"players"`
	Bet     int      `json:"bet"`
}

// SessionStateData wraps the per-tick table projection. The dealer's hole
// card stays hidden until the dealer turn begins.
type SessionStateData struct {
	State game.SessionView `json:"state"`
}
