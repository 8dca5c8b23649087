package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// ActionDefinition describes a single user-facing action: open an external
// link or run a named in-app flow. Definitions are loaded once at process
// start and never mutated.
type ActionDefinition struct {
	ID               types.ActionID   `json:"actionId" toml:"id"`
	DisplayName      string           `json:"displayName" toml:"display_name"`
	Type             types.ActionType `json:"actionType" toml:"type"`
	RequiredEntities []string         `json:"requiredEntities" toml:"required_entities"`
	OptionalEntities []string         `json:"optionalEntities,omitempty" toml:"optional_entities"`
	ValidIntents     []types.Intent   `json:"validIntents" toml:"valid_intents"`
	Priority         types.Priority   `json:"priority" toml:"priority"`
	URLTemplate      string           `json:"urlTemplate,omitempty" toml:"url_template"`
}

// AppliesTo reports whether the action is a candidate for the intent.
// An empty ValidIntents set means the action applies to every intent.
func (x *ActionDefinition) AppliesTo(intent types.Intent) bool {
	if len(x.ValidIntents) == 0 {
		return true
	}
	for _, v := range x.ValidIntents {
		if v == intent {
			return true
		}
	}
	return false
}

// IsGeneric reports whether the action applies to every intent
func (x *ActionDefinition) IsGeneric() bool {
	return len(x.ValidIntents) == 0
}

// Validate checks all load-time invariants of the definition
func (x *ActionDefinition) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid action ID")
	}
	if err := ValidateDisplayName(x.DisplayName); err != nil {
		return goerr.Wrap(err, "invalid action display name", goerr.V("action_id", x.ID))
	}
	if !x.Type.IsValid() {
		return goerr.New("invalid action type",
			goerr.V("action_id", x.ID),
			goerr.V("type", string(x.Type)))
	}
	if err := x.Priority.Validate(); err != nil {
		return goerr.Wrap(err, "invalid action priority", goerr.V("action_id", x.ID))
	}
	for _, intent := range x.ValidIntents {
		if err := intent.Validate(); err != nil {
			return goerr.Wrap(err, "invalid intent in action definition", goerr.V("action_id", x.ID))
		}
	}

	// URL template is the wire contract for link actions with required
	// entities: without one there is nothing to open.
	if x.Type == types.ActionTypeExternalLink && len(x.RequiredEntities) > 0 && x.URLTemplate == "" {
		return goerr.Wrap(ErrInvalidURLTemplate, "GO_TO action with required entities needs a URL template",
			goerr.V("action_id", x.ID))
	}
	if x.Type == types.ActionTypeInAppFlow && x.URLTemplate != "" {
		return goerr.Wrap(ErrInvalidURLTemplate, "IN_APP action must not carry a URL template",
			goerr.V("action_id", x.ID))
	}

	return nil
}
