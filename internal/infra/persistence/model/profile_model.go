package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel mirrors the 'profiles' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type ProfileModel struct {
	UserID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DisplayName string    `gorm:"type:varchar(100);not null"`
	BirthDate   time.Time `gorm:"type:date;not null"`
	Gender      string    `gorm:"type:varchar(50)"`
	Region      string    `gorm:"type:varchar(100);index"`
	Latitude    *float64
	Longitude   *float64
	Religion    string `gorm:"type:varchar(100)"`
	Lifestyle   string `gorm:"type:varchar(100)"`
	IsVerified  bool   `gorm:"not null;default:false"`
	IsActive    bool   `gorm:"not null;default:true;index"`
	IsDeleted   bool   `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	PurposeProfile *PurposeProfileModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// PurposeProfileModel mirrors the 'purpose_profiles' table. UserID references profiles.user_id.
type PurposeProfileModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Domain    string    `gorm:"type:varchar(100);not null"`
	Archetype string    `gorm:"type:varchar(100);not null"`
	Modality  string    `gorm:"type:varchar(100);not null"`
	Narrative string    `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PurposeProfileModel) TableName() string {
	return "purpose_profiles"
}
