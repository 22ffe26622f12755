package repository

import (
	"context"

	"kindred/internal/errors"

	"github.com/google/uuid"
)

// ErrAlreadyDismissed is returned when a dismissal already exists for the pair.
var ErrAlreadyDismissed = errors.New("candidate already dismissed")

// DismissalRepository stores permanent "never show me this person again"
// decisions. The candidate filter consumes these as an opaque exclusion set.
type DismissalRepository interface {
	// DismissedIDs returns every candidate the viewer has dismissed.
	DismissedIDs(ctx context.Context, viewerID uuid.UUID) ([]uuid.UUID, error)

	// Dismiss records a dismissal. Duplicate dismissals are ignored.
	Dismiss(ctx context.Context, viewerID, candidateID uuid.UUID) error
}
