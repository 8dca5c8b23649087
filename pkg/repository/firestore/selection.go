package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

type selectionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSelectionRepository(client *firestore.Client) *selectionRepository {
	return &selectionRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *selectionRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_one_time_selections"
	}
	return "one_time_selections"
}

func (r *selectionRepository) Put(ctx context.Context, selection *model.Selection) error {
	_, err := r.client.Collection(r.collection()).Doc(string(selection.UserID)).Set(ctx, selection)
	if err != nil {
		return goerr.Wrap(err, "failed to put selection",
			goerr.V("user_id", selection.UserID))
	}
	return nil
}

// Take runs in a transaction so read-and-clear is atomic with respect to
// the resolution pass that consumes the slot. A slot stored for another
// email is left untouched.
func (r *selectionRepository) Take(ctx context.Context, userID types.UserID, emailID types.EmailID) (*model.Selection, error) {
	docRef := r.client.Collection(r.collection()).Doc(string(userID))

	var taken *model.Selection
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil
			}
			return goerr.Wrap(err, "failed to get selection")
		}

		var selection model.Selection
		if err := docSnap.DataTo(&selection); err != nil {
			return goerr.Wrap(err, "failed to decode selection")
		}
		if selection.EmailID != emailID {
			return nil
		}

		if err := tx.Delete(docRef); err != nil {
			return goerr.Wrap(err, "failed to clear selection")
		}
		taken = &selection
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to take selection",
			goerr.V("user_id", userID),
			goerr.V("email_id", emailID))
	}

	return taken, nil
}

func (r *selectionRepository) Clear(ctx context.Context, userID types.UserID) error {
	_, err := r.client.Collection(r.collection()).Doc(string(userID)).Delete(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to clear selection",
			goerr.V("user_id", userID))
	}
	return nil
}
