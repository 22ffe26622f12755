package repository

import (
	"context"

	"github.com/google/uuid"
)

// SurfacedPairRepository is the external "has this pair been shown before"
// collaborator. The engine queries it to derive Match.IsNew and reports
// freshly surfaced pairs back after a page is returned; it never owns the
// state itself, which keeps scoring side-effect-free.
type SurfacedPairRepository interface {
	// SeenSet returns the subset of candidateIDs the viewer has already been
	// shown, as a membership set.
	SeenSet(ctx context.Context, viewerID uuid.UUID, candidateIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)

	// MarkSeen records that the viewer has now been shown these candidates.
	// Re-marking an already seen pair is a no-op.
	MarkSeen(ctx context.Context, viewerID uuid.UUID, candidateIDs []uuid.UUID) error
}
