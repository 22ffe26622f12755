package model

import (
	"time"

	"github.com/google/uuid"
)

// DismissalModel mirrors the 'dismissals' table. A row means the viewer never
// wants to see the candidate again; the pair is the primary key, so a repeat
// dismissal conflicts instead of duplicating.
type DismissalModel struct {
	ViewerID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CandidateID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (DismissalModel) TableName() string {
	return "dismissals"
}
