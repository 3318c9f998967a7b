package game

import "fmt"

// Action represents a player decision for the acting hand.
type Action int

const (
	ActionHit Action = iota
	ActionStand
	ActionDouble
	ActionSplit
	ActionSurrender
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case ActionHit:
		return "hit"
	case ActionStand:
		return "stand"
	case ActionDouble:
		return "double"
	case ActionSplit:
		return "split"
	case ActionSurrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// ParseAction converts a wire action string into an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "hit":
		return ActionHit, nil
	case "stand":
		return ActionStand, nil
	case "double":
		return ActionDouble, nil
	case "split":
		return ActionSplit, nil
	case "surrender", "quit":
		return ActionSurrender, nil
	default:
		return 0, fmt.Errorf("invalid action: %s", s)
	}
}
