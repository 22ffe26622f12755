package repository

import (
	"context"

	"kindred/internal/domain/entity"

	"github.com/google/uuid"
)

// MatchCache memoizes pairwise scoring results keyed by unordered pair and
// taxonomy version. A version mismatch is a miss, never a stale hit.
type MatchCache interface {
	// Get returns the cached match for the pair at the given taxonomy
	// version, or (nil, false) on a miss.
	Get(pairKey entity.PairKey, taxonomyVersion int64) (*entity.Match, bool)

	// Put stores a computed match under the pair and version.
	Put(pairKey entity.PairKey, taxonomyVersion int64, match *entity.Match)

	// GetOrCompute returns the cached match or runs compute exactly once,
	// coalescing concurrent callers for the same pair and version. The
	// computation must survive cancellation of any single caller, since its
	// result stays valid for future requests.
	GetOrCompute(ctx context.Context, pairKey entity.PairKey, taxonomyVersion int64,
		compute func(ctx context.Context) (*entity.Match, error)) (*entity.Match, error)

	// Invalidate removes every cached entry involving the user, across all
	// taxonomy versions.
	Invalidate(userID uuid.UUID)

	// Len reports the number of live entries, for observability.
	Len() int
}
