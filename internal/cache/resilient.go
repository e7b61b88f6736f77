// Package cache implements the read-through/write-back cache policy
// shared by route, vehicle and place lookups: an authoritative fetch in
// front, a key-value store behind, and a guarantee that previously
// known-good data is never replaced by an empty or failed read.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the injected key-value boundary. Implementations must treat a
// missing key as (nil, false, nil), not as an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// FetchFunc reads the authoritative result set for one owner.
type FetchFunc[T any] func(ctx context.Context, ownerID uuid.UUID) ([]T, error)

// entry wraps cached data with the time it was written.
type entry[T any] struct {
	Data     []T       `json:"data"`
	CachedAt time.Time `json:"cachedAt"`
}

// Resilient is the generic cache policy, instantiated once per entity
// kind. Writes are idempotent whole-value replacements, so concurrent
// refreshes settle on last-write-wins without locking.
type Resilient[T any] struct {
	kind   string
	store  Store
	fetch  FetchFunc[T]
	logger *zap.Logger
	now    func() time.Time
}

// NewResilient builds a cache for one entity kind backed by the given
// store and authoritative fetch function.
func NewResilient[T any](kind string, store Store, fetch FetchFunc[T], logger *zap.Logger) *Resilient[T] {
	return &Resilient[T]{
		kind:   kind,
		store:  store,
		fetch:  fetch,
		logger: logger,
		now:    time.Now,
	}
}

func (c *Resilient[T]) key(ownerID uuid.UUID) string {
	return c.kind + "_cache_" + ownerID.String()
}

// Read returns the owner's result set.
//
// Online: the authoritative source is called. A non-empty result
// overwrites the cache. An empty result while a non-empty cache exists is
// treated as a suspect partial read and the cached value is returned
// unchanged. A failed fetch falls back to the cache when present,
// otherwise the fetch error propagates.
//
// Offline: the source is never called; the cached value is returned, or
// an offline-no-cache error when there is none.
func (c *Resilient[T]) Read(ctx context.Context, ownerID uuid.UUID, online bool) ([]T, error) {
	cached, hasCache := c.load(ctx, ownerID, !online)

	if !online {
		if hasCache {
			return cached, nil
		}
		return nil, apperr.NewOfflineNoCache()
	}

	fresh, err := c.fetch(ctx, ownerID)
	if err != nil {
		if hasCache {
			return cached, nil
		}
		return nil, err
	}

	if len(fresh) == 0 && hasCache && len(cached) > 0 {
		return cached, nil
	}

	c.write(ctx, ownerID, fresh)
	return fresh, nil
}

// Refresh re-reads the authoritative source and overwrites the cache
// after a mutation. Best-effort: skipped offline, failures are logged
// and swallowed because the mutation itself already settled.
func (c *Resilient[T]) Refresh(ctx context.Context, ownerID uuid.UUID, online bool) {
	if !online {
		return
	}
	fresh, err := c.fetch(ctx, ownerID)
	if err != nil {
		c.logger.Warn("cache refresh fetch failed",
			zap.String("kind", c.kind),
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return
	}
	c.write(ctx, ownerID, fresh)
}

// load reads and decodes the cache entry. Store errors are swallowed
// unless the cache is the primary read path (offline), where they are
// logged and treated as a miss so the offline guard fires.
func (c *Resilient[T]) load(ctx context.Context, ownerID uuid.UUID, primary bool) ([]T, bool) {
	raw, ok, err := c.store.Get(ctx, c.key(ownerID))
	if err != nil {
		level := c.logger.Debug
		if primary {
			level = c.logger.Warn
		}
		level("cache read failed",
			zap.String("kind", c.kind),
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var e entry[T]
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.Warn("discarding undecodable cache entry",
			zap.String("kind", c.kind),
			zap.Error(err),
		)
		return nil, false
	}
	return e.Data, true
}

func (c *Resilient[T]) write(ctx context.Context, ownerID uuid.UUID, data []T) {
	raw, err := json.Marshal(entry[T]{Data: data, CachedAt: c.now()})
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("kind", c.kind), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, c.key(ownerID), raw); err != nil {
		c.logger.Warn("cache write failed",
			zap.String("kind", c.kind),
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
	}
}
