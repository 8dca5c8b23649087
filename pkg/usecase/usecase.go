package usecase

import (
	"time"

	"github.com/mailcrest/mailcrest/pkg/catalog"
	"github.com/mailcrest/mailcrest/pkg/domain/interfaces"
)

// UseCases wires the catalogs, the repositories and the resolution
// components together. Construct one per process; every method is safe
// for concurrent use.
type UseCases struct {
	repo      interfaces.Repository
	actions   *catalog.ActionCatalog
	compounds *catalog.CompoundCatalog

	validator EntityValidator
	resolver  ActionResolver
	detector  *CompoundActionDetector
	router    *DispatchRouter
	registry  *registryCache

	registryTTL   time.Duration
	sweepInterval time.Duration
}

type Option func(*UseCases)

// WithRegistryTTL overrides the registry cache entry lifetime
func WithRegistryTTL(ttl time.Duration) Option {
	return func(uc *UseCases) {
		uc.registryTTL = ttl
	}
}

// WithRegistrySweepInterval overrides the cache sweep interval
func WithRegistrySweepInterval(interval time.Duration) Option {
	return func(uc *UseCases) {
		uc.sweepInterval = interval
	}
}

func New(repo interfaces.Repository, actions *catalog.ActionCatalog, compounds *catalog.CompoundCatalog, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:      repo,
		actions:   actions,
		compounds: compounds,
		detector:  NewCompoundActionDetector(),
		router:    NewDispatchRouter(actions),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.registry = newRegistryCache(uc.registryTTL, uc.sweepInterval)

	return uc
}

// Actions exposes the action catalog to controllers
func (uc *UseCases) Actions() *catalog.ActionCatalog {
	return uc.actions
}

// Compounds exposes the compound action catalog to controllers
func (uc *UseCases) Compounds() *catalog.CompoundCatalog {
	return uc.compounds
}

// Close stops the registry cache sweeper
func (uc *UseCases) Close() {
	uc.registry.close()
}
