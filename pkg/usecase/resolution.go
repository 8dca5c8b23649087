package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mailcrest/mailcrest/pkg/domain/interfaces"
	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
	"github.com/mailcrest/mailcrest/pkg/utils/errutil"
	"github.com/mailcrest/mailcrest/pkg/utils/logging"
)

// ResolveEmailInput is one full resolution request for one email
type ResolveEmailInput struct {
	UserID          types.UserID
	EmailID         types.EmailID
	Classification  model.Classification
	PrimaryActionID types.ActionID
}

// Resolution is the full outcome of a resolution pass. Dispatch is nil
// when dispatching failed recoverably; DispatchError then carries the
// error state for the UI.
type Resolution struct {
	Resolved      *model.ResolvedAction     `json:"resolved"`
	Action        *model.ActionDefinition   `json:"action"`
	Compound      *model.CompoundSuggestion `json:"compound,omitempty"`
	Dispatch      *model.DispatchDescriptor `json:"dispatch,omitempty"`
	DispatchError string                    `json:"dispatchError,omitempty"`
}

// ResolveEmail runs the whole pipeline for one email: candidate query,
// entity validation, compound detection, override-aware resolution and
// dispatch. It is synchronous pure computation over immutable catalogs
// plus two repository reads, and always returns something renderable as
// long as the catalog carries a generic fallback action.
func (uc *UseCases) ResolveEmail(ctx context.Context, in ResolveEmailInput) (*Resolution, error) {
	if err := in.UserID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid resolve request")
	}
	if err := in.EmailID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid resolve request")
	}
	if err := in.Classification.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid resolve request")
	}

	intent := in.Classification.Intent
	entities := in.Classification.EntityBagOrEmpty()

	candidates := uc.actions.CandidatesForIntent(intent)
	eligible := uc.validator.Eligible(candidates, entities)

	override, err := uc.repo.Override().Get(ctx, in.UserID, in.EmailID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to load persisted override",
			goerr.V(UserIDKey, in.UserID.String()),
			goerr.V(EmailIDKey, in.EmailID.String()))
	}

	// Atomic read-and-clear: the slot is consumed by this pass only if it
	// was made for this email.
	selection, err := uc.repo.Selection().Take(ctx, in.UserID, in.EmailID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to take one-time selection",
			goerr.V(UserIDKey, in.UserID.String()),
			goerr.V(EmailIDKey, in.EmailID.String()))
	}

	resolved, err := uc.resolver.Resolve(ctx, ResolveInput{
		EmailID:         in.EmailID,
		Candidates:      eligible,
		Override:        override,
		Selection:       selection,
		PrimaryActionID: in.PrimaryActionID,
	})
	if err != nil {
		if !errors.Is(err, ErrNoEligibleCandidates) {
			return nil, err
		}

		// Every candidate failed entity validation. Fall back to the
		// generic view-details action instead of failing the render.
		fallback := uc.actions.Lookup(FallbackActionID)
		if fallback == nil {
			return nil, goerr.Wrap(err, "no fallback action in catalog",
				goerr.V(IntentKey, intent.String()))
		}
		logging.From(ctx).Info("no eligible candidates, using fallback action",
			IntentKey, intent.String(),
			EmailIDKey, in.EmailID.String(),
			ActionIDKey, FallbackActionID.String(),
		)
		resolved = &model.ResolvedAction{
			ActionID:      FallbackActionID,
			WasUserDriven: false,
			Source:        types.SourceCatalogFallback,
		}
	}

	result := &Resolution{
		Resolved: resolved,
		Action:   uc.actions.Lookup(resolved.ActionID),
	}

	if compoundID := uc.detector.Detect(intent, entities); compoundID != "" {
		if def := uc.compounds.Get(compoundID); def != nil {
			result.Compound = &model.CompoundSuggestion{
				ActionID:   compoundID,
				Definition: def,
			}
		} else {
			errutil.Handle(ctx, goerr.New("detected compound action missing from catalog",
				goerr.V(ActionIDKey, compoundID.String()),
				goerr.V(IntentKey, intent.String())),
				"failed to attach compound suggestion")
		}
	}

	dispatch, err := uc.router.Dispatch(ctx, resolved, entities)
	if err != nil {
		// Recoverable per-request failure: surface the error state, keep
		// the resolution renderable. Attempted keys are in the error
		// values for diagnosis.
		errutil.Handle(ctx, err, "failed to build dispatch descriptor")
		result.DispatchError = err.Error()
	} else {
		result.Dispatch = dispatch
	}

	return result, nil
}

// RecordOverride durably stores a per-email action swap. The swapped-to
// action must exist in the catalog.
func (uc *UseCases) RecordOverride(ctx context.Context, userID types.UserID, emailID types.EmailID, actionID types.ActionID) error {
	if err := userID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid override request")
	}
	if err := emailID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid override request")
	}
	if uc.actions.Lookup(actionID) == nil {
		return goerr.Wrap(ErrUnknownAction, "cannot override to an unknown action",
			goerr.V(ActionIDKey, actionID.String()))
	}

	now := time.Now().UTC()
	if err := uc.repo.Override().Put(ctx, &model.Override{
		UserID:    userID,
		EmailID:   emailID,
		ActionID:  actionID,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return err
	}

	// Overrides feed the registry artifact, so cached copies are stale now.
	uc.registry.invalidate(userID)
	return nil
}

// ClearOverride removes a stored swap so the catalog suggestion applies
// again
func (uc *UseCases) ClearOverride(ctx context.Context, userID types.UserID, emailID types.EmailID) error {
	if err := uc.repo.Override().Delete(ctx, userID, emailID); err != nil {
		return err
	}

	uc.registry.invalidate(userID)
	return nil
}

// RecordSelection stores a one-time action-chooser pick for the next
// resolution pass of the given email.
func (uc *UseCases) RecordSelection(ctx context.Context, userID types.UserID, emailID types.EmailID, actionID types.ActionID) error {
	if err := userID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid selection request")
	}
	if err := emailID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid selection request")
	}
	if uc.actions.Lookup(actionID) == nil {
		return goerr.Wrap(ErrUnknownAction, "cannot select an unknown action",
			goerr.V(ActionIDKey, actionID.String()))
	}

	return uc.repo.Selection().Put(ctx, &model.Selection{
		UserID:    userID,
		EmailID:   emailID,
		ActionID:  actionID,
		CreatedAt: time.Now().UTC(),
	})
}
