package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
	"github.com/mailcrest/mailcrest/pkg/utils/logging"
)

// FallbackActionID is the generic action substituted by callers when
// resolution fails with ErrNoEligibleCandidates.
const FallbackActionID types.ActionID = "view_details"

// ResolveInput carries the candidate set and the three optional override
// signals for one resolution pass. Candidates must already be filtered by
// the entity validator and sorted by (priority, action ID).
type ResolveInput struct {
	EmailID         types.EmailID
	Candidates      []*model.ActionDefinition
	Override        *model.Override
	Selection       *model.Selection
	PrimaryActionID types.ActionID
}

// ActionResolver picks exactly one action to execute from a candidate set.
// Precedence, highest first: persisted override, one-time selection,
// backend-declared primary, catalog fallback. Each layer short-circuits.
type ActionResolver struct{}

// Resolve never returns nil for a non-empty candidate list. An empty list
// fails with ErrNoEligibleCandidates; the caller substitutes the generic
// fallback action rather than failing the render.
func (ActionResolver) Resolve(ctx context.Context, in ResolveInput) (*model.ResolvedAction, error) {
	if len(in.Candidates) == 0 {
		return nil, goerr.Wrap(ErrNoEligibleCandidates, "empty candidate list",
			goerr.V(EmailIDKey, in.EmailID.String()))
	}

	if in.Override != nil && candidateSet(in.Candidates)[in.Override.ActionID] {
		return &model.ResolvedAction{
			ActionID:      in.Override.ActionID,
			WasUserDriven: true,
			Source:        types.SourcePersistedOverride,
		}, nil
	}

	if in.Selection != nil {
		if in.Selection.EmailID != in.EmailID {
			// Race: the slot was filled for another email. Never apply it.
			logging.From(ctx).Warn("ignoring one-time selection for another email",
				"error", ErrStaleOneTimeSelection.Error(),
				"selection_email_id", in.Selection.EmailID.String(),
				EmailIDKey, in.EmailID.String(),
			)
		} else if candidateSet(in.Candidates)[in.Selection.ActionID] {
			return &model.ResolvedAction{
				ActionID:      in.Selection.ActionID,
				WasUserDriven: true,
				Source:        types.SourceOneTimeSelection,
			}, nil
		}
	}

	if in.PrimaryActionID != "" && candidateSet(in.Candidates)[in.PrimaryActionID] {
		return &model.ResolvedAction{
			ActionID:      in.PrimaryActionID,
			WasUserDriven: false,
			Source:        types.SourceBackendPrimary,
		}, nil
	}

	// Candidates are already sorted by priority then ID, so the first one
	// is the deterministic catalog choice.
	return &model.ResolvedAction{
		ActionID:      in.Candidates[0].ID,
		WasUserDriven: false,
		Source:        types.SourceCatalogFallback,
	}, nil
}

func candidateSet(candidates []*model.ActionDefinition) map[types.ActionID]bool {
	set := make(map[types.ActionID]bool, len(candidates))
	for _, c := range candidates {
		set[c.ID] = true
	}
	return set
}
