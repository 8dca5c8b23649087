package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mailcrest/mailcrest/pkg/domain/interfaces"
	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

type overrideRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newOverrideRepository(client *firestore.Client) *overrideRepository {
	return &overrideRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *overrideRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_action_overrides"
	}
	return "action_overrides"
}

// docID keys one override per (user, email). Firestore document IDs must
// not contain '/', so the parts are joined with a double underscore.
func (r *overrideRepository) docID(userID types.UserID, emailID types.EmailID) string {
	return fmt.Sprintf("%s__%s", userID, emailID)
}

func (r *overrideRepository) Put(ctx context.Context, override *model.Override) error {
	stored := *override
	stored.UpdatedAt = time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = stored.UpdatedAt
	}

	// Set replaces the whole document: last write wins.
	_, err := r.client.Collection(r.collection()).Doc(r.docID(override.UserID, override.EmailID)).Set(ctx, &stored)
	if err != nil {
		return goerr.Wrap(err, "failed to put override",
			goerr.V("user_id", override.UserID),
			goerr.V("email_id", override.EmailID))
	}
	return nil
}

func (r *overrideRepository) Get(ctx context.Context, userID types.UserID, emailID types.EmailID) (*model.Override, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(r.docID(userID, emailID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "override not found",
				goerr.V("user_id", userID),
				goerr.V("email_id", emailID))
		}
		return nil, goerr.Wrap(err, "failed to get override",
			goerr.V("user_id", userID),
			goerr.V("email_id", emailID))
	}

	var override model.Override
	if err := docSnap.DataTo(&override); err != nil {
		return nil, goerr.Wrap(err, "failed to decode override",
			goerr.V("user_id", userID),
			goerr.V("email_id", emailID))
	}
	return &override, nil
}

func (r *overrideRepository) Delete(ctx context.Context, userID types.UserID, emailID types.EmailID) error {
	// Delete is idempotent: removing a missing document is not an error.
	_, err := r.client.Collection(r.collection()).Doc(r.docID(userID, emailID)).Delete(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to delete override",
			goerr.V("user_id", userID),
			goerr.V("email_id", emailID))
	}
	return nil
}

func (r *overrideRepository) ListByUser(ctx context.Context, userID types.UserID) ([]*model.Override, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", string(userID)).
		OrderBy("updated_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var overrides []*model.Override
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate overrides",
				goerr.V("user_id", userID))
		}

		var override model.Override
		if err := docSnap.DataTo(&override); err != nil {
			return nil, goerr.Wrap(err, "failed to decode override",
				goerr.V("user_id", userID),
				goerr.V("doc_id", docSnap.Ref.ID))
		}
		overrides = append(overrides, &override)
	}

	if overrides == nil {
		overrides = []*model.Override{}
	}
	return overrides, nil
}
