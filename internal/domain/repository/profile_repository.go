// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"kindred/internal/domain/entity"
	"kindred/internal/errors"

	"github.com/google/uuid"
)

// ErrProfileNotFound is a domain-specific error returned when a profile is not found.
var ErrProfileNotFound = errors.New("profile not found")

// CandidateQuery narrows the candidate pool on the database side before the
// in-memory filter runs. Only coarse, indexable constraints belong here;
// fine-grained preference checks stay in the matching package.
type CandidateQuery struct {
	ExcludeUserID uuid.UUID // The viewer, always excluded.
	Region        *string   // Optional region pre-filter.
	Limit         int       // Upper bound on the raw pool size.
}

// ProfileRepository defines read access to profiles and purpose profiles.
// The matching engine never writes profiles; mutation belongs to the
// profile-edit flows elsewhere in the product.
type ProfileRepository interface {
	// FindByID retrieves a single profile, including its purpose profile when present.
	FindByID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// FindPurposeProfile retrieves just the purpose axes for a user.
	FindPurposeProfile(ctx context.Context, userID uuid.UUID) (*entity.PurposeProfile, error)

	// FindCandidates returns the raw candidate pool for a viewer: active,
	// non-deleted profiles with a purpose profile, minus the viewer.
	FindCandidates(ctx context.Context, query CandidateQuery) ([]*entity.Profile, error)
}
