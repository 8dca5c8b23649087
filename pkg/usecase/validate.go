package usecase

import (
	"github.com/mailcrest/mailcrest/pkg/domain/model"
)

// EntityValidator checks whether an entity bag satisfies an action's
// required-entity set. It has no state and is trivially idempotent.
type EntityValidator struct{}

// IsSatisfied returns true iff the action's required entities are all
// present and non-null in the bag. Presence is the only check performed;
// type correctness is the producer's responsibility.
func (EntityValidator) IsSatisfied(action *model.ActionDefinition, entities *model.EntityBag) bool {
	for _, key := range action.RequiredEntities {
		if !entities.Has(key) {
			return false
		}
	}
	return true
}

// Eligible filters the candidate list down to actions whose required
// entities are satisfied, preserving order.
func (v EntityValidator) Eligible(candidates []*model.ActionDefinition, entities *model.EntityBag) []*model.ActionDefinition {
	var eligible []*model.ActionDefinition
	for _, action := range candidates {
		if v.IsSatisfied(action, entities) {
			eligible = append(eligible, action)
		}
	}
	return eligible
}
