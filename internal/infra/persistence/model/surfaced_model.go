package model

import (
	"time"

	"github.com/google/uuid"
)

// SurfacedPairModel mirrors the 'surfaced_pairs' table. A row records that the
// viewer has been shown the candidate at least once; it is directed, so each
// side of a pair tracks its own first sighting.
type SurfacedPairModel struct {
	ViewerID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CandidateID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SurfacedPairModel) TableName() string {
	return "surfaced_pairs"
}
