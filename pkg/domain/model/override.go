package model

import (
	"time"

	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// Override is a durable per-email swap: the user replaced the suggested
// action for this email, and the choice survives across sessions.
type Override struct {
	UserID    types.UserID   `json:"userId" firestore:"user_id"`
	EmailID   types.EmailID  `json:"emailId" firestore:"email_id"`
	ActionID  types.ActionID `json:"actionId" firestore:"action_id"`
	CreatedAt time.Time      `json:"createdAt" firestore:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" firestore:"updated_at"`
}

// Selection is a one-time pick from the action chooser. It applies to a
// single resolution pass for the email it was made for and is consumed
// exactly once.
type Selection struct {
	UserID    types.UserID   `json:"userId" firestore:"user_id"`
	EmailID   types.EmailID  `json:"emailId" firestore:"email_id"`
	ActionID  types.ActionID `json:"actionId" firestore:"action_id"`
	CreatedAt time.Time      `json:"createdAt" firestore:"created_at"`
}
