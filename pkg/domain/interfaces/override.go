package interfaces

import (
	"context"

	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// OverrideRepository stores durable per-email action swaps. Concurrent
// writes for the same email ID converge on a single decision: last write
// wins.
type OverrideRepository interface {
	// Put stores or replaces the override for (userID, emailID)
	Put(ctx context.Context, override *model.Override) error

	// Get returns the override for (userID, emailID), or ErrNotFound
	Get(ctx context.Context, userID types.UserID, emailID types.EmailID) (*model.Override, error)

	// Delete removes the override for (userID, emailID). Deleting a
	// missing override is not an error.
	Delete(ctx context.Context, userID types.UserID, emailID types.EmailID) error

	// ListByUser returns every override stored for the user
	ListByUser(ctx context.Context, userID types.UserID) ([]*model.Override, error)
}
