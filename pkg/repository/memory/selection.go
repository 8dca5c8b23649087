package memory

import (
	"context"
	"sync"

	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
	"github.com/mailcrest/mailcrest/pkg/utils/logging"
)

type selectionRepository struct {
	mu         sync.Mutex
	selections map[types.UserID]*model.Selection
}

func newSelectionRepository() *selectionRepository {
	return &selectionRepository{
		selections: make(map[types.UserID]*model.Selection),
	}
}

func copySelection(s *model.Selection) *model.Selection {
	copied := *s
	return &copied
}

func (r *selectionRepository) Put(ctx context.Context, selection *model.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.selections[selection.UserID] = copySelection(selection)
	return nil
}

// Take is the atomic read-and-clear: the slot is consumed only when it
// was made for the given email. A slot for another email is left in place
// and never applied to this pass.
func (r *selectionRepository) Take(ctx context.Context, userID types.UserID, emailID types.EmailID) (*model.Selection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.selections[userID]
	if !ok {
		return nil, nil
	}
	if stored.EmailID != emailID {
		logging.From(ctx).Debug("one-time selection belongs to another email, leaving it",
			"user_id", userID.String(),
			"selection_email_id", stored.EmailID.String(),
			"email_id", emailID.String(),
		)
		return nil, nil
	}

	delete(r.selections, userID)
	return copySelection(stored), nil
}

func (r *selectionRepository) Clear(ctx context.Context, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.selections, userID)
	return nil
}
