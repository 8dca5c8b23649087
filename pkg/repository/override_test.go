package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/mailcrest/mailcrest/pkg/domain/interfaces"
	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
	"github.com/mailcrest/mailcrest/pkg/repository/firestore"
	"github.com/mailcrest/mailcrest/pkg/repository/memory"
)

func runOverrideRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	const userID = types.UserID("user-1")
	const emailID = types.EmailID("email-1")

	t.Run("Put and Get round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		err := repo.Override().Put(ctx, &model.Override{
			UserID:    userID,
			EmailID:   emailID,
			ActionID:  "track_package",
			CreatedAt: now,
			UpdatedAt: now,
		})
		gt.NoError(t, err).Required()

		got, err := repo.Override().Get(ctx, userID, emailID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.UserID).Equal(userID)
		gt.Value(t, got.EmailID).Equal(emailID)
		gt.Value(t, got.ActionID).Equal(types.ActionID("track_package"))
	})

	t.Run("Get unknown returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Override().Get(ctx, userID, "no-such-email")
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("Put is last-write-wins per (user, email)", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		err := repo.Override().Put(ctx, &model.Override{
			UserID:    userID,
			EmailID:   emailID,
			ActionID:  "track_package",
			CreatedAt: now,
			UpdatedAt: now,
		})
		gt.NoError(t, err).Required()

		err = repo.Override().Put(ctx, &model.Override{
			UserID:    userID,
			EmailID:   emailID,
			ActionID:  "add_to_calendar",
			CreatedAt: now,
			UpdatedAt: now.Add(time.Minute),
		})
		gt.NoError(t, err).Required()

		got, err := repo.Override().Get(ctx, userID, emailID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ActionID).Equal(types.ActionID("add_to_calendar"))
	})

	t.Run("Overrides are scoped per user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		err := repo.Override().Put(ctx, &model.Override{
			UserID:    userID,
			EmailID:   emailID,
			ActionID:  "pay_invoice",
			CreatedAt: now,
			UpdatedAt: now,
		})
		gt.NoError(t, err).Required()

		_, err = repo.Override().Get(ctx, "user-2", emailID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("Delete removes and is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		err := repo.Override().Put(ctx, &model.Override{
			UserID:    userID,
			EmailID:   emailID,
			ActionID:  "sign_form",
			CreatedAt: now,
			UpdatedAt: now,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Override().Delete(ctx, userID, emailID))

		_, err = repo.Override().Get(ctx, userID, emailID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)

		// Deleting again must not fail
		gt.NoError(t, repo.Override().Delete(ctx, userID, emailID))
	})

	t.Run("ListByUser returns only that user's overrides", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		for i, eid := range []types.EmailID{"e1", "e2", "e3"} {
			err := repo.Override().Put(ctx, &model.Override{
				UserID:    userID,
				EmailID:   eid,
				ActionID:  "view_details",
				CreatedAt: now,
				UpdatedAt: now.Add(time.Duration(i) * time.Minute),
			})
			gt.NoError(t, err).Required()
		}
		err := repo.Override().Put(ctx, &model.Override{
			UserID:    "user-2",
			EmailID:   "e9",
			ActionID:  "view_details",
			CreatedAt: now,
			UpdatedAt: now,
		})
		gt.NoError(t, err).Required()

		overrides, err := repo.Override().ListByUser(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, overrides).Length(3)
		for _, o := range overrides {
			gt.Value(t, o.UserID).Equal(userID)
		}
	})

	t.Run("Stored overrides are isolated from caller mutation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		in := &model.Override{
			UserID:    userID,
			EmailID:   emailID,
			ActionID:  "check_in",
			CreatedAt: now,
			UpdatedAt: now,
		}
		gt.NoError(t, repo.Override().Put(ctx, in)).Required()

		in.ActionID = "mutated_after_put"

		got, err := repo.Override().Get(ctx, userID, emailID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ActionID).Equal(types.ActionID("check_in"))
	})
}

func TestOverrideRepository_Memory(t *testing.T) {
	runOverrideRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestOverrideRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runOverrideRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
