// Package usecase defines the application-layer interfaces and their
// input/output types. Implementations live in the impl subpackage.
package usecase

import (
	"context"

	"kindred/internal/domain/entity"

	"github.com/google/uuid"
)

// RankInput carries the viewer's request for a ranked match page.
type RankInput struct {
	Preferences *entity.Preferences `json:"preferences"`
	PageSize    int                 `json:"page_size"`
	PageToken   string              `json:"page_token"`
}

// RankedMatch pairs a match result with the candidate profile it points at,
// so the delivery layer can render display data without a second lookup.
type RankedMatch struct {
	Match     *entity.Match
	Candidate *entity.Profile
}

// RankPage is one page of ranked matches.
type RankPage struct {
	Items           []*RankedMatch
	NextPageToken   string // Empty when the listing is exhausted.
	TaxonomyVersion int64  // Snapshot version the whole page was scored against.
}

// MatchUsecase defines the compatibility engine's application operations.
type MatchUsecase interface {
	// Score computes (or serves from cache) the compatibility result between
	// the viewer and one candidate.
	Score(ctx context.Context, viewerID, candidateID uuid.UUID) (*entity.Match, error)

	// Rank returns one page of scored, ranked, filtered candidates for the
	// viewer. Individual candidate failures are dropped, never fatal.
	Rank(ctx context.Context, viewerID uuid.UUID, input *RankInput) (*RankPage, error)

	// Dismiss permanently hides a candidate from the viewer's future pages.
	Dismiss(ctx context.Context, viewerID, candidateID uuid.UUID) error

	// Invalidate drops all cached results involving the user and broadcasts
	// the invalidation to peer instances.
	Invalidate(ctx context.Context, userID uuid.UUID, reason string) error

	// ApplyInvalidation drops cached results locally without re-publishing.
	// The worker calls this when consuming a broadcast event.
	ApplyInvalidation(userID uuid.UUID)
}
