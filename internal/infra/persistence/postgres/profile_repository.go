// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"kindred/internal/domain/entity"
	"kindred/internal/domain/repository"
	"kindred/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultCandidateLimit = 500

// profileRepository implements repository.ProfileRepository using GORM.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// FindByID retrieves a single profile by user ID, preloading the purpose profile.
func (repo *profileRepository) FindByID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel
	err := repo.db.WithContext(ctx).
		Preload("PurposeProfile").
		Where("user_id = ?", userID).
		First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by id")
	}

	return toProfileDomain(&profileM), nil
}

// FindPurposeProfile retrieves just the purpose axes for a user.
func (repo *profileRepository) FindPurposeProfile(ctx context.Context, userID uuid.UUID) (*entity.PurposeProfile, error) {
	var purposeM model.PurposeProfileModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&purposeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find purpose profile")
	}

	return toPurposeProfileDomain(&purposeM), nil
}

// FindCandidates returns the raw candidate pool: active, non-deleted profiles
// that have completed purpose onboarding, minus the viewer. Only coarse,
// indexable constraints run here; the in-memory filter applies the rest.
func (repo *profileRepository) FindCandidates(ctx context.Context, query repository.CandidateQuery) ([]*entity.Profile, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultCandidateLimit
	}

	tx := repo.db.WithContext(ctx).
		Preload("PurposeProfile").
		Where("user_id <> ?", query.ExcludeUserID).
		Where("is_active = ? AND is_deleted = ?", true, false).
		Where("EXISTS (SELECT 1 FROM purpose_profiles pp WHERE pp.user_id = profiles.user_id)")

	if query.Region != nil {
		tx = tx.Where("region = ?", *query.Region)
	}

	var profileMs []*model.ProfileModel
	if err := tx.Limit(limit).Find(&profileMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query candidate pool")
	}

	profiles := make([]*entity.Profile, 0, len(profileMs))
	for _, profileM := range profileMs {
		profiles = append(profiles, toProfileDomain(profileM))
	}

	return profiles, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	return &entity.Profile{
		UserID:      data.UserID,
		DisplayName: data.DisplayName,
		BirthDate:   data.BirthDate,
		Gender:      data.Gender,
		Region:      data.Region,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		Religion:    data.Religion,
		Lifestyle:   data.Lifestyle,
		Purpose:     toPurposeProfileDomain(data.PurposeProfile),
		IsVerified:  data.IsVerified,
		IsActive:    data.IsActive,
		IsDeleted:   data.IsDeleted,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// toPurposeProfileDomain converts a GORM PurposeProfileModel to a domain PurposeProfile entity.
func toPurposeProfileDomain(data *model.PurposeProfileModel) *entity.PurposeProfile {
	if data == nil {
		return nil
	}

	return &entity.PurposeProfile{
		UserID:    data.UserID,
		Domain:    data.Domain,
		Archetype: data.Archetype,
		Modality:  data.Modality,
		Narrative: data.Narrative,
		UpdatedAt: data.UpdatedAt,
	}
}
