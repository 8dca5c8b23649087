package types

import "fmt"

// EndBehaviorType represents how a compound action flow terminates.
type EndBehaviorType string

const (
	EndBehaviorEmailComposer      EndBehaviorType = "EMAIL_COMPOSER"
	EndBehaviorDismissWithSuccess EndBehaviorType = "DISMISS_WITH_SUCCESS"
	EndBehaviorReturnToApp        EndBehaviorType = "RETURN_TO_APP"
)

// AllEndBehaviorTypes returns all valid end behavior types
func AllEndBehaviorTypes() []EndBehaviorType {
	return []EndBehaviorType{
		EndBehaviorEmailComposer,
		EndBehaviorDismissWithSuccess,
		EndBehaviorReturnToApp,
	}
}

// IsValid checks if the end behavior type is valid
func (t EndBehaviorType) IsValid() bool {
	switch t {
	case EndBehaviorEmailComposer,
		EndBehaviorDismissWithSuccess,
		EndBehaviorReturnToApp:
		return true
	default:
		return false
	}
}

// RequiresResponse reports whether compound actions ending with this
// behavior compose a reply to the original sender.
func (t EndBehaviorType) RequiresResponse() bool {
	return t == EndBehaviorEmailComposer
}

// String returns the string representation of the end behavior type
func (t EndBehaviorType) String() string {
	return string(t)
}

// ParseEndBehaviorType parses a string into an EndBehaviorType
func ParseEndBehaviorType(s string) (EndBehaviorType, error) {
	t := EndBehaviorType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid end behavior type: %s", s)
	}
	return t, nil
}
