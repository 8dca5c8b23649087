package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mailcrest/mailcrest/pkg/domain/interfaces"
	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

type overrideRepository struct {
	mu        sync.RWMutex
	overrides map[types.UserID]map[types.EmailID]*model.Override
}

func newOverrideRepository() *overrideRepository {
	return &overrideRepository{
		overrides: make(map[types.UserID]map[types.EmailID]*model.Override),
	}
}

// copyOverride creates a copy so callers cannot mutate stored state
func copyOverride(o *model.Override) *model.Override {
	copied := *o
	return &copied
}

func (r *overrideRepository) Put(ctx context.Context, override *model.Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.overrides[override.UserID]; !ok {
		r.overrides[override.UserID] = make(map[types.EmailID]*model.Override)
	}

	stored := copyOverride(override)
	stored.UpdatedAt = time.Now().UTC()
	if existing, ok := r.overrides[override.UserID][override.EmailID]; ok {
		stored.CreatedAt = existing.CreatedAt
	}

	// Last write wins: concurrent swaps for the same email converge on a
	// single decision.
	r.overrides[override.UserID][override.EmailID] = stored
	return nil
}

func (r *overrideRepository) Get(ctx context.Context, userID types.UserID, emailID types.EmailID) (*model.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byEmail, ok := r.overrides[userID]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "override not found",
			goerr.V("user_id", userID),
			goerr.V("email_id", emailID))
	}
	override, ok := byEmail[emailID]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "override not found",
			goerr.V("user_id", userID),
			goerr.V("email_id", emailID))
	}

	return copyOverride(override), nil
}

func (r *overrideRepository) Delete(ctx context.Context, userID types.UserID, emailID types.EmailID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if byEmail, ok := r.overrides[userID]; ok {
		delete(byEmail, emailID)
	}
	return nil
}

func (r *overrideRepository) ListByUser(ctx context.Context, userID types.UserID) ([]*model.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byEmail, ok := r.overrides[userID]
	if !ok {
		return []*model.Override{}, nil
	}

	overrides := make([]*model.Override, 0, len(byEmail))
	for _, o := range byEmail {
		overrides = append(overrides, copyOverride(o))
	}
	return overrides, nil
}
