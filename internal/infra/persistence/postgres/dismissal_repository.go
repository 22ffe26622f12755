package postgres

import (
	"context"

	"kindred/internal/domain/repository"
	"kindred/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dismissalRepository implements repository.DismissalRepository using GORM.
type dismissalRepository struct {
	db *gorm.DB
}

// NewDismissalRepository is the constructor for dismissalRepository.
func NewDismissalRepository(db *gorm.DB) repository.DismissalRepository {
	return &dismissalRepository{db: db}
}

// DismissedIDs returns every candidate the viewer has dismissed.
func (repo *dismissalRepository) DismissedIDs(ctx context.Context, viewerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := repo.db.WithContext(ctx).
		Model(&model.DismissalModel{}).
		Where("viewer_id = ?", viewerID).
		Pluck("candidate_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dismissed candidates")
	}

	return ids, nil
}

// Dismiss records a dismissal. The pair is the primary key, so a duplicate
// dismissal is absorbed by ON CONFLICT DO NOTHING instead of failing.
func (repo *dismissalRepository) Dismiss(ctx context.Context, viewerID, candidateID uuid.UUID) error {
	dismissalM := &model.DismissalModel{
		ViewerID:    viewerID,
		CandidateID: candidateID,
	}

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(dismissalM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to record dismissal")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAlreadyDismissed
	}

	return nil
}
