package types

import "fmt"

// ActionType represents how a resolved action is executed: by opening an
// external URL or by running a named in-app flow.
type ActionType string

const (
	ActionTypeExternalLink ActionType = "GO_TO"
	ActionTypeInAppFlow    ActionType = "IN_APP"
)

// AllActionTypes returns all valid action types
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionTypeExternalLink,
		ActionTypeInAppFlow,
	}
}

// IsValid checks if the action type is valid
func (t ActionType) IsValid() bool {
	switch t {
	case ActionTypeExternalLink, ActionTypeInAppFlow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action type
func (t ActionType) String() string {
	return string(t)
}

// ParseActionType parses a string into an ActionType
func ParseActionType(s string) (ActionType, error) {
	t := ActionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid action type: %s", s)
	}
	return t, nil
}
