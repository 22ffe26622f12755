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

// surfacedRepository implements repository.SurfacedPairRepository using GORM.
type surfacedRepository struct {
	db *gorm.DB
}

// NewSurfacedRepository is the constructor for surfacedRepository.
func NewSurfacedRepository(db *gorm.DB) repository.SurfacedPairRepository {
	return &surfacedRepository{db: db}
}

// SeenSet returns the subset of candidateIDs the viewer has already been shown.
func (repo *surfacedRepository) SeenSet(ctx context.Context, viewerID uuid.UUID, candidateIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	if len(candidateIDs) == 0 {
		return map[uuid.UUID]struct{}{}, nil
	}

	var seen []uuid.UUID
	err := repo.db.WithContext(ctx).
		Model(&model.SurfacedPairModel{}).
		Where("viewer_id = ? AND candidate_id IN ?", viewerID, candidateIDs).
		Pluck("candidate_id", &seen).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load surfaced pairs")
	}

	seenSet := make(map[uuid.UUID]struct{}, len(seen))
	for _, id := range seen {
		seenSet[id] = struct{}{}
	}

	return seenSet, nil
}

// MarkSeen records that the viewer has now been shown these candidates.
// Already seen pairs conflict on the primary key and are skipped.
func (repo *surfacedRepository) MarkSeen(ctx context.Context, viewerID uuid.UUID, candidateIDs []uuid.UUID) error {
	if len(candidateIDs) == 0 {
		return nil
	}

	pairMs := make([]*model.SurfacedPairModel, 0, len(candidateIDs))
	for _, candidateID := range candidateIDs {
		pairMs = append(pairMs, &model.SurfacedPairModel{
			ViewerID:    viewerID,
			CandidateID: candidateID,
		})
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(pairMs).Error
	if err != nil {
		return errors.Wrap(err, "failed to mark pairs as surfaced")
	}

	return nil
}
