package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mailcrest/mailcrest/pkg/domain/types"
	"github.com/mailcrest/mailcrest/pkg/utils/async"
)

const (
	defaultRegistryTTL   = 15 * time.Minute
	defaultSweepInterval = time.Minute
)

type registryKey struct {
	UserID     types.UserID
	Mode       string
	WindowDays int
}

func (k registryKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.UserID, k.Mode, k.WindowDays)
}

type registryCacheEntry struct {
	registry  *ActionRegistry
	expiresAt time.Time
}

// registryCache holds built registry artifacts with an explicit expiry.
// Readers may observe a stale-but-not-expired entry without locking the
// writer out; writers replace entries atomically (last write wins, which
// is safe because registry construction is idempotent and side-effect
// free). A background sweep reclaims expired entries on a fixed interval.
type registryCache struct {
	mu      sync.RWMutex
	entries map[registryKey]*registryCacheEntry
	ttl     time.Duration
	group   singleflight.Group
	stop    chan struct{}
	done    chan struct{}
}

func newRegistryCache(ttl, sweepInterval time.Duration) *registryCache {
	if ttl <= 0 {
		ttl = defaultRegistryTTL
	}
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}

	c := &registryCache{
		entries: make(map[registryKey]*registryCacheEntry),
		ttl:     ttl,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	// A panic in the sweeper must not take the process down.
	async.Dispatch(context.Background(), func(context.Context) error {
		c.sweepLoop(sweepInterval)
		return nil
	})

	return c
}

func (c *registryCache) get(key registryKey) (*ActionRegistry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.registry, true
}

func (c *registryCache) set(key registryKey, registry *ActionRegistry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &registryCacheEntry{
		registry:  registry,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// build collapses concurrent misses for the same key into one builder
// call, then stores the result.
func (c *registryCache) build(key registryKey, builder func() (*ActionRegistry, error)) (*ActionRegistry, error) {
	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		registry, err := builder()
		if err != nil {
			return nil, err
		}
		c.set(key, registry)
		return registry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ActionRegistry), nil
}

// invalidate removes every entry whose key belongs to the user
func (c *registryCache) invalidate(userID types.UserID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.UserID == userID {
			delete(c.entries, key)
		}
	}
}

func (c *registryCache) sweepLoop(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *registryCache) sweep() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *registryCache) close() {
	close(c.stop)
	<-c.done
}
