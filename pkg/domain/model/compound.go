package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// Reserved pseudo-steps. They terminate a compound flow natively and are
// not required to exist in the action catalog.
const (
	StepEmailComposer types.ActionID = "email_composer"
	StepAddReminder   types.ActionID = "add_reminder"
)

// IsPseudoStep reports whether the step ID is one of the reserved
// pseudo-steps
func IsPseudoStep(id types.ActionID) bool {
	return id == StepEmailComposer || id == StepAddReminder
}

// EmailTemplate describes the composed reply of an EMAIL_COMPOSER end
// behavior
type EmailTemplate struct {
	SubjectPrefix         string `json:"subjectPrefix" toml:"subject_prefix"`
	BodyTemplate          string `json:"bodyTemplate" toml:"body_template"`
	IncludeOriginalSender bool   `json:"includeOriginalSender" toml:"include_original_sender"`
}

// EndBehavior is a tagged union describing how a compound flow terminates.
// Template is set iff Type is EMAIL_COMPOSER.
type EndBehavior struct {
	Type     types.EndBehaviorType `json:"type" toml:"type"`
	Template *EmailTemplate        `json:"template,omitempty" toml:"template"`
}

// CompoundActionDefinition describes a multi-step flow that supersedes a
// single action. Steps are ordered and reference action catalog entries,
// except for the reserved pseudo-steps.
type CompoundActionDefinition struct {
	ID               types.ActionID   `json:"actionId" toml:"id"`
	DisplayName      string           `json:"displayName" toml:"display_name"`
	Steps            []types.ActionID `json:"steps" toml:"steps"`
	EndBehavior      EndBehavior      `json:"endBehavior" toml:"end_behavior"`
	RequiresResponse bool             `json:"requiresResponse" toml:"requires_response"`
	IsPremium        bool             `json:"isPremium" toml:"is_premium"`
}

// Validate checks all load-time invariants of the definition
func (x *CompoundActionDefinition) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid compound action ID")
	}
	if err := ValidateDisplayName(x.DisplayName); err != nil {
		return goerr.Wrap(err, "invalid compound action display name", goerr.V("action_id", x.ID))
	}
	if len(x.Steps) < 2 {
		return goerr.Wrap(ErrInvalidSteps, "compound action needs at least two steps",
			goerr.V("action_id", x.ID),
			goerr.V("steps", len(x.Steps)))
	}
	for _, step := range x.Steps {
		if err := step.Validate(); err != nil {
			return goerr.Wrap(err, "invalid step ID", goerr.V("action_id", x.ID))
		}
	}
	if !x.EndBehavior.Type.IsValid() {
		return goerr.New("invalid end behavior type",
			goerr.V("action_id", x.ID),
			goerr.V("type", string(x.EndBehavior.Type)))
	}

	// The requiresResponse flag is redundant on the wire but must stay
	// consistent with the end behavior.
	if x.RequiresResponse != x.EndBehavior.Type.RequiresResponse() {
		return goerr.Wrap(ErrEndBehaviorMismatch, "requiresResponse must equal (endBehavior == EMAIL_COMPOSER)",
			goerr.V("action_id", x.ID),
			goerr.V("requires_response", x.RequiresResponse),
			goerr.V("end_behavior", x.EndBehavior.Type.String()))
	}
	if x.EndBehavior.Type == types.EndBehaviorEmailComposer && x.EndBehavior.Template == nil {
		return goerr.Wrap(ErrMissingEmailTemplate, "missing email template",
			goerr.V("action_id", x.ID))
	}

	return nil
}
