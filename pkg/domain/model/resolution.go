package model

import (
	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// ResolvedAction is the output of the resolver: exactly one action to
// execute and the precedence layer that picked it.
type ResolvedAction struct {
	ActionID      types.ActionID         `json:"actionId"`
	WasUserDriven bool                   `json:"wasUserDriven"`
	Source        types.ResolutionSource `json:"source"`
}

// DispatchDescriptor is the concrete instruction handed to the
// presentation layer. For ExternalLink it carries the fully resolved and
// validated URL; for InAppFlow it carries the flow ID and the entity bag
// context for the flow to interpret.
type DispatchDescriptor struct {
	Kind    types.ActionType `json:"kind"`
	URL     string           `json:"url,omitempty"`
	FlowID  types.ActionID   `json:"flowId,omitempty"`
	Context *EntityBag       `json:"context,omitempty"`
}

// CompoundSuggestion is emitted when the detector elevates an email to a
// multi-step flow.
type CompoundSuggestion struct {
	ActionID   types.ActionID            `json:"actionId"`
	Definition *CompoundActionDefinition `json:"definition,omitempty"`
}
