package interfaces

import (
	"context"

	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// SelectionRepository holds the one-time action-chooser pick for a user.
// The slot is consumed exactly once: Take is an atomic read-and-clear, and
// a slot keyed to a different email ID than the one being resolved is left
// untouched so a stale pick can never leak into a later resolution.
type SelectionRepository interface {
	// Put stores the one-time selection for the user, replacing any
	// previous one
	Put(ctx context.Context, selection *model.Selection) error

	// Take atomically removes and returns the selection for the user iff
	// it was made for the given email ID. It returns (nil, nil) when no
	// selection exists or the stored selection targets another email.
	Take(ctx context.Context, userID types.UserID, emailID types.EmailID) (*model.Selection, error)

	// Clear removes any selection for the user
	Clear(ctx context.Context, userID types.UserID) error
}
