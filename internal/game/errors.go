package game

import "fmt"

// InvalidMoveError is returned when a submitted action is not legal for the
// current acting hand: wrong hand, action outside the legal set, or a
// split/double the bankroll cannot cover. Session state is left unchanged so
// the host can re-prompt the player.
type InvalidMoveError struct {
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return "invalid move: " + e.Reason
}

func invalidMove(format string, args ...any) error {
	return &InvalidMoveError{Reason: fmt.Sprintf(format, args...)}
}
