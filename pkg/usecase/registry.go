package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// RegistryEntry summarizes what is resolvable for one intent: the ranked
// candidate actions, their entity requirements, and the compound flows
// routed to the intent.
type RegistryEntry struct {
	Intent           types.Intent                `json:"intent"`
	ActionIDs        []types.ActionID            `json:"actionIds"`
	RequiredEntities map[types.ActionID][]string `json:"requiredEntities"`
	CompoundIDs      []types.ActionID            `json:"compoundIds,omitempty"`
}

// ActionRegistry is the derived per-user artifact consumed by clients to
// know, ahead of any single resolution, which intents resolve to what.
// Building it walks the full catalog and the user's stored overrides,
// which is why the result is cached.
type ActionRegistry struct {
	UserID        types.UserID    `json:"userId"`
	Mode          string          `json:"mode"`
	WindowDays    int             `json:"windowDays"`
	GeneratedAt   time.Time       `json:"generatedAt"`
	Entries       []RegistryEntry `json:"entries"`
	OverrideCount int             `json:"overrideCount"`
}

// Registry returns the cached registry for (userID, mode, windowDays),
// building it on a miss. Concurrent misses for the same key are collapsed
// into a single build.
func (uc *UseCases) Registry(ctx context.Context, userID types.UserID, mode string, windowDays int) (*ActionRegistry, error) {
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID for registry")
	}

	key := registryKey{UserID: userID, Mode: mode, WindowDays: windowDays}
	if cached, ok := uc.registry.get(key); ok {
		return cached, nil
	}

	built, err := uc.registry.build(key, func() (*ActionRegistry, error) {
		return uc.buildRegistry(ctx, userID, mode, windowDays)
	})
	if err != nil {
		return nil, err
	}
	return built, nil
}

// InvalidateRegistry removes every cached registry for the user, e.g. on
// account re-link or a settings change. Other users' entries are left
// untouched.
func (uc *UseCases) InvalidateRegistry(userID types.UserID) {
	uc.registry.invalidate(userID)
}

// buildRegistry constructs the registry artifact from the catalogs and
// the user's stored overrides.
func (uc *UseCases) buildRegistry(ctx context.Context, userID types.UserID, mode string, windowDays int) (*ActionRegistry, error) {
	overrides, err := uc.repo.Override().ListByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list overrides for registry",
			goerr.V(UserIDKey, userID.String()))
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays)
	overrideCount := 0
	for _, o := range overrides {
		if windowDays <= 0 || o.UpdatedAt.After(cutoff) {
			overrideCount++
		}
	}

	registry := &ActionRegistry{
		UserID:        userID,
		Mode:          mode,
		WindowDays:    windowDays,
		GeneratedAt:   time.Now().UTC(),
		OverrideCount: overrideCount,
	}

	for _, intent := range uc.knownIntents() {
		entry := RegistryEntry{
			Intent:           intent,
			RequiredEntities: map[types.ActionID][]string{},
		}
		for _, def := range uc.actions.CandidatesForIntent(intent) {
			entry.ActionIDs = append(entry.ActionIDs, def.ID)
			entry.RequiredEntities[def.ID] = def.RequiredEntities
		}
		for _, compound := range uc.compounds.ForIntent(intent) {
			entry.CompoundIDs = append(entry.CompoundIDs, compound.ID)
		}
		registry.Entries = append(registry.Entries, entry)
	}

	return registry, nil
}

// knownIntents returns the union of every intent named by an action
// definition or an intent route, sorted.
func (uc *UseCases) knownIntents() []types.Intent {
	seen := map[types.Intent]bool{}
	for _, def := range uc.actions.All() {
		for _, intent := range def.ValidIntents {
			seen[intent] = true
		}
	}
	for _, intent := range uc.compounds.RoutedIntents() {
		seen[intent] = true
	}

	intents := make([]types.Intent, 0, len(seen))
	for intent := range seen {
		intents = append(intents, intent)
	}
	sort.Slice(intents, func(i, j int) bool { return intents[i] < intents[j] })
	return intents
}
