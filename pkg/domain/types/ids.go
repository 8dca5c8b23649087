package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ActionID identifies an action definition. The value is stable across
// releases and is used as a wire contract key.
type ActionID string

// Validate checks that the action ID is a non-empty lowercase snake_case key
func (x ActionID) Validate() error {
	if x == "" {
		return goerr.New("action ID must not be empty")
	}
	for _, r := range x {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return goerr.New("action ID must be lowercase snake_case",
				goerr.V("action_id", string(x)))
		}
	}
	return nil
}

// String returns the string representation of the action ID
func (x ActionID) String() string {
	return string(x)
}

// EmailID identifies a single email as seen by the mail client
type EmailID string

// Validate checks that the email ID is non-empty
func (x EmailID) Validate() error {
	if strings.TrimSpace(string(x)) == "" {
		return goerr.New("email ID must not be empty")
	}
	return nil
}

// String returns the string representation of the email ID
func (x EmailID) String() string {
	return string(x)
}

// UserID identifies an account owner
type UserID string

// Validate checks that the user ID is non-empty
func (x UserID) Validate() error {
	if strings.TrimSpace(string(x)) == "" {
		return goerr.New("user ID must not be empty")
	}
	return nil
}

// String returns the string representation of the user ID
func (x UserID) String() string {
	return string(x)
}
