// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the full user record as seen by the matching engine. It is
// owned and mutated by the profile-edit flows elsewhere in the product;
// the engine treats it as read-only input.
type Profile struct {
	UserID      uuid.UUID       // The user this profile belongs to.
	DisplayName string          // Public display name.
	BirthDate   time.Time       // Used to derive age for preference filtering.
	Gender      string          // Self-declared gender, free text.
	Region      string          // Coarse location label, e.g. "Taipei".
	Latitude    *float64        // Optional precise coordinates for radius filtering.
	Longitude   *float64        //
	Religion    string          // Optional; empty when undeclared.
	Lifestyle   string          // Optional lifestyle tag, e.g. "vegetarian".
	Purpose     *PurposeProfile // Nil until the user completes purpose onboarding.
	IsVerified  bool            // Identity verification flag.
	IsActive    bool            // Inactive profiles are never surfaced.
	IsDeleted   bool            // Soft-delete flag; deleted profiles are never surfaced.
	CreatedAt   time.Time       // Account creation time, used as the ranking tie-break.
	UpdatedAt   time.Time
}

// Age returns the profile's age in whole years at the given instant.
func (p *Profile) Age(now time.Time) int {
	years := now.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}

	return years
}

// Eligible reports whether the profile may appear in any candidate pool at all.
func (p *Profile) Eligible() bool {
	return p.IsActive && !p.IsDeleted
}

// PurposeProfile holds the declared purpose axes of a user. It is immutable
// except through explicit re-onboarding; every change must invalidate the
// user's cached matches.
type PurposeProfile struct {
	UserID    uuid.UUID
	Domain    string    // Life domain, e.g. "Educational". Must be a registered taxonomy value.
	Archetype string    // e.g. "Builder". Must be a registered taxonomy value.
	Modality  string    // e.g. "Collaborative". Must be a registered taxonomy value.
	Narrative string    // Free-text self description. Advisory only, never scored.
	UpdatedAt time.Time
}

// Complete reports whether all three axes are declared. Scoring requires a
// complete purpose profile on both sides.
func (pp *PurposeProfile) Complete() bool {
	return pp != nil && pp.Domain != "" && pp.Archetype != "" && pp.Modality != ""
}
