package catalog

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// ActionCatalog is the static registry of action definitions. It is built
// once at process start and read-only afterwards, so it may be shared
// across concurrent resolution calls without locking.
type ActionCatalog struct {
	actions map[types.ActionID]*model.ActionDefinition
	ordered []*model.ActionDefinition
}

// NewActionCatalog builds a catalog from the given definitions. Every
// definition is validated and duplicate action IDs are a fatal error.
func NewActionCatalog(defs []*model.ActionDefinition) (*ActionCatalog, error) {
	c := &ActionCatalog{
		actions: make(map[types.ActionID]*model.ActionDefinition, len(defs)),
		ordered: make([]*model.ActionDefinition, 0, len(defs)),
	}

	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, goerr.Wrap(err, "malformed action definition")
		}
		if _, exists := c.actions[def.ID]; exists {
			return nil, goerr.New("duplicate action ID", goerr.V("action_id", def.ID))
		}
		c.actions[def.ID] = def
		c.ordered = append(c.ordered, def)
	}

	// Deterministic candidate ordering: priority ascending, then action ID
	// ascending for ties.
	sort.SliceStable(c.ordered, func(i, j int) bool {
		if c.ordered[i].Priority != c.ordered[j].Priority {
			return c.ordered[i].Priority < c.ordered[j].Priority
		}
		return c.ordered[i].ID < c.ordered[j].ID
	})

	return c, nil
}

// Lookup returns the definition for the action ID, or nil when not found.
// Not-found is not an error at this layer.
func (c *ActionCatalog) Lookup(id types.ActionID) *model.ActionDefinition {
	return c.actions[id]
}

// CandidatesForIntent returns every definition whose valid intent set
// contains the intent or is empty, sorted by priority then action ID.
func (c *ActionCatalog) CandidatesForIntent(intent types.Intent) []*model.ActionDefinition {
	var candidates []*model.ActionDefinition
	for _, def := range c.ordered {
		if def.AppliesTo(intent) {
			candidates = append(candidates, def)
		}
	}
	return candidates
}

// AllActionIDs returns every action ID in the catalog, sorted
func (c *ActionCatalog) AllActionIDs() []types.ActionID {
	ids := make([]types.ActionID, 0, len(c.actions))
	for id := range c.actions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// All returns every definition sorted by priority then action ID
func (c *ActionCatalog) All() []*model.ActionDefinition {
	out := make([]*model.ActionDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of definitions in the catalog
func (c *ActionCatalog) Len() int {
	return len(c.actions)
}
