// Package cache provides the in-memory match cache: a bounded LRU store of
// pairwise results keyed by unordered pair and taxonomy version, with
// per-user invalidation and compute coalescing.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"kindred/config"
	"kindred/internal/domain/entity"
	"kindred/internal/domain/repository"
	"kindred/internal/errors"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
)

const defaultCapacity = 100_000

// Params defines the dependencies for the match cache.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// matchCache implements repository.MatchCache.
//
// Entries live in a bounded LRU keyed by "pair@version". A secondary index
// maps each user to their live keys so Invalidate(userID) runs without a
// full scan. The index has its own mutex and is never held across LRU calls,
// because LRU eviction callbacks re-enter the index.
type matchCache struct {
	store  *lru.Cache[string, *entity.Match]
	group  singleflight.Group
	logger *slog.Logger

	idxMu sync.Mutex
	byUser map[uuid.UUID]map[string]struct{}
}

// New builds the match cache with the configured capacity.
func New(params Params) (repository.MatchCache, error) {
	capacity := defaultCapacity
	if params.Config.Matching != nil && params.Config.Matching.CacheCapacity > 0 {
		capacity = params.Config.Matching.CacheCapacity
	}

	c := &matchCache{
		logger: params.Logger,
		byUser: make(map[uuid.UUID]map[string]struct{}),
	}

	store, err := lru.NewWithEvict[string, *entity.Match](capacity, c.onEvict)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create match cache store")
	}
	c.store = store

	return c, nil
}

func cacheKey(pairKey entity.PairKey, taxonomyVersion int64) string {
	return pairKey.String() + "@" + strconv.FormatInt(taxonomyVersion, 10)
}

// Get returns the cached match for the pair at the given taxonomy version.
func (c *matchCache) Get(pairKey entity.PairKey, taxonomyVersion int64) (*entity.Match, bool) {
	return c.store.Get(cacheKey(pairKey, taxonomyVersion))
}

// Put stores a computed match under the pair and version.
func (c *matchCache) Put(pairKey entity.PairKey, taxonomyVersion int64, match *entity.Match) {
	key := cacheKey(pairKey, taxonomyVersion)
	c.store.Add(key, match)
	c.index(pairKey, key)
}

// GetOrCompute returns the cached match or computes it exactly once per
// (pair, taxonomy version) under concurrent access. The computation runs on
// a context detached from the caller: a cancelled request stops waiting but
// lets the population finish, since its result stays valid for future
// requests.
func (c *matchCache) GetOrCompute(ctx context.Context, pairKey entity.PairKey, taxonomyVersion int64,
	compute func(ctx context.Context) (*entity.Match, error)) (*entity.Match, error) {
	key := cacheKey(pairKey, taxonomyVersion)

	if match, ok := c.store.Get(key); ok {
		return match, nil
	}

	resultCh := c.group.DoChan(key, func() (any, error) {
		// Re-check under the flight: a concurrent Put may have landed.
		if match, ok := c.store.Get(key); ok {
			return match, nil
		}

		match, err := compute(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.store.Add(key, match)
		c.index(pairKey, key)

		return match, nil
	})

	select {
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	case result := <-resultCh:
		if result.Err != nil {
			return nil, result.Err
		}

		return result.Val.(*entity.Match), nil
	}
}

// Invalidate removes every cached entry involving the user.
func (c *matchCache) Invalidate(userID uuid.UUID) {
	c.idxMu.Lock()
	keys := make([]string, 0, len(c.byUser[userID]))
	for key := range c.byUser[userID] {
		keys = append(keys, key)
	}
	c.idxMu.Unlock()

	// Remove triggers onEvict, which cleans the index for both users.
	for _, key := range keys {
		c.store.Remove(key)
	}

	c.logger.Debug("Match cache invalidated",
		slog.String("user_id", userID.String()),
		slog.Int("entries", len(keys)),
	)
}

// Len reports the number of live entries.
func (c *matchCache) Len() int {
	return c.store.Len()
}

func (c *matchCache) index(pairKey entity.PairKey, key string) {
	c.idxMu.Lock()
	defer c.idxMu.Unlock()

	for _, userID := range [2]uuid.UUID{pairKey.Lo, pairKey.Hi} {
		if c.byUser[userID] == nil {
			c.byUser[userID] = make(map[string]struct{})
		}
		c.byUser[userID][key] = struct{}{}
	}
}

// onEvict keeps the user index consistent with the LRU store. It runs inside
// LRU Add/Remove calls, so it must only touch the index.
func (c *matchCache) onEvict(key string, match *entity.Match) {
	c.idxMu.Lock()
	defer c.idxMu.Unlock()

	for _, userID := range [2]uuid.UUID{match.ViewerID, match.CandidateID} {
		if keys, ok := c.byUser[userID]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byUser, userID)
			}
		}
	}
}
