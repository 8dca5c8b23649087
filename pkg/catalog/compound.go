package catalog

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// IntentRoute maps an intent to the compound actions that may be suggested
// for it. The mapping is explicit configuration, never inferred.
type IntentRoute struct {
	Intent    types.Intent     `toml:"intent"`
	Compounds []types.ActionID `toml:"compounds"`
}

// StepValidation is the result of checking one compound action's steps
// against the action catalog.
type StepValidation struct {
	Valid          bool
	MissingStepIDs []types.ActionID
}

// CompoundCatalog is the static registry of compound action definitions
// plus the intent routing table. Immutable after construction.
type CompoundCatalog struct {
	compounds map[types.ActionID]*model.CompoundActionDefinition
	ordered   []*model.CompoundActionDefinition
	routes    map[types.Intent][]types.ActionID
}

// NewCompoundCatalog builds the catalog from definitions and routes.
// Duplicate IDs and routes referencing unknown compound IDs are fatal.
func NewCompoundCatalog(defs []*model.CompoundActionDefinition, routes []IntentRoute) (*CompoundCatalog, error) {
	c := &CompoundCatalog{
		compounds: make(map[types.ActionID]*model.CompoundActionDefinition, len(defs)),
		ordered:   make([]*model.CompoundActionDefinition, 0, len(defs)),
		routes:    make(map[types.Intent][]types.ActionID, len(routes)),
	}

	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, goerr.Wrap(err, "malformed compound action definition")
		}
		if _, exists := c.compounds[def.ID]; exists {
			return nil, goerr.New("duplicate compound action ID", goerr.V("action_id", def.ID))
		}
		c.compounds[def.ID] = def
		c.ordered = append(c.ordered, def)
	}

	sort.SliceStable(c.ordered, func(i, j int) bool {
		return c.ordered[i].ID < c.ordered[j].ID
	})

	for _, route := range routes {
		if err := route.Intent.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid intent in route")
		}
		if _, exists := c.routes[route.Intent]; exists {
			return nil, goerr.New("duplicate intent route", goerr.V("intent", route.Intent.String()))
		}
		for _, id := range route.Compounds {
			if _, ok := c.compounds[id]; !ok {
				return nil, goerr.New("route references unknown compound action",
					goerr.V("intent", route.Intent.String()),
					goerr.V("action_id", id))
			}
		}
		c.routes[route.Intent] = route.Compounds
	}

	return c, nil
}

// Get returns the definition for the compound action ID, or nil
func (c *CompoundCatalog) Get(id types.ActionID) *model.CompoundActionDefinition {
	return c.compounds[id]
}

// All returns every compound definition sorted by ID
func (c *CompoundCatalog) All() []*model.CompoundActionDefinition {
	out := make([]*model.CompoundActionDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// ForIntent returns the compound definitions routed to the intent via the
// explicit mapping table, in route order.
func (c *CompoundCatalog) ForIntent(intent types.Intent) []*model.CompoundActionDefinition {
	ids, ok := c.routes[intent]
	if !ok {
		return nil
	}
	defs := make([]*model.CompoundActionDefinition, 0, len(ids))
	for _, id := range ids {
		defs = append(defs, c.compounds[id])
	}
	return defs
}

// RoutedIntents returns every intent with an explicit route, sorted
func (c *CompoundCatalog) RoutedIntents() []types.Intent {
	intents := make([]types.Intent, 0, len(c.routes))
	for intent := range c.routes {
		intents = append(intents, intent)
	}
	sort.Slice(intents, func(i, j int) bool { return intents[i] < intents[j] })
	return intents
}

// ValidateSteps checks that every step of the compound action resolves in
// the action catalog, except for the reserved pseudo-steps.
func (c *CompoundCatalog) ValidateSteps(id types.ActionID, actions *ActionCatalog) StepValidation {
	def, ok := c.compounds[id]
	if !ok {
		return StepValidation{Valid: false, MissingStepIDs: []types.ActionID{id}}
	}

	var missing []types.ActionID
	for _, step := range def.Steps {
		if model.IsPseudoStep(step) {
			continue
		}
		if actions.Lookup(step) == nil {
			missing = append(missing, step)
		}
	}

	return StepValidation{Valid: len(missing) == 0, MissingStepIDs: missing}
}

// ValidateAll runs ValidateSteps for every compound action. Any missing
// step is a fatal configuration error; this runs at load time, never per
// request.
func (c *CompoundCatalog) ValidateAll(actions *ActionCatalog) error {
	for _, def := range c.ordered {
		result := c.ValidateSteps(def.ID, actions)
		if !result.Valid {
			return goerr.New("compound action references unknown steps",
				goerr.V("action_id", def.ID),
				goerr.V("missing_steps", result.MissingStepIDs))
		}
	}
	return nil
}
