package server

// Note: session events (session_start, hand_settled, etc.) are defined in
// internal/game/events.go and are also forwarded as WebSocket messages

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeAuth         MessageType = "auth"
	MessageTypeJoinTable    MessageType = "join_table"
	MessageTypeLeaveTable   MessageType = "leave_table"
	MessageTypeListTables   MessageType = "list_tables"
	MessageTypeDeal         MessageType = "deal"
	MessageTypePlayerChoice MessageType = "player_choice"

	// Server to client messages
	MessageTypeAuthResponse MessageType = "auth_response"
	MessageTypeError        MessageType = "error"
	MessageTypeTableJoined  MessageType = "table_joined"
	MessageTypeTableLeft    MessageType = "table_left"
	MessageTypeTableList    MessageType = "table_list"
	MessageTypeSessionState MessageType = "session_state"
	MessageTypeSessionStart MessageType = "session_start"
	MessageTypePlayerAction MessageType = "player_action"
	MessageTypeTurnTimeout  MessageType = "turn_timeout"
	MessageTypeHandSettled  MessageType = "hand_settled"
	MessageTypeSessionEnd   MessageType = "session_end"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
