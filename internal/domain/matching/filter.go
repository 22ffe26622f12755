package matching

import (
	"strings"
	"time"

	"kindred/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// FilterInput carries everything the candidate filter needs. The exclusion
// set is opaque to the engine; the caller assembles it from whatever
// dismissed/blocked relations exist upstream.
type FilterInput struct {
	Viewer      *entity.Profile
	Preferences *entity.Preferences
	Pool        []*entity.Profile
	Excluded    map[uuid.UUID]struct{}
	Now         time.Time // Reference instant for age computation; injectable for determinism.
}

// FilterCandidates applies every hard eligibility constraint and returns the
// surviving subset of the pool in its original order. It is the sole
// authority on eligibility: the viewer themself, inactive, soft-deleted, and
// excluded candidates never pass, and each set preference must be satisfied.
// It runs before any scoring so the scorers' workload stays bounded.
func FilterCandidates(in FilterInput) []*entity.Profile {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	eligible := make([]*entity.Profile, 0, len(in.Pool))
	for _, candidate := range in.Pool {
		if candidate == nil || candidate.UserID == in.Viewer.UserID {
			continue
		}
		if !candidate.Eligible() {
			continue
		}
		if _, excluded := in.Excluded[candidate.UserID]; excluded {
			continue
		}
		if !satisfiesPreferences(in.Viewer, in.Preferences, candidate, now) {
			continue
		}

		eligible = append(eligible, candidate)
	}

	return eligible
}

// satisfiesPreferences checks each set constraint; an unset field constrains
// nothing. A constraint that needs data the candidate lacks (e.g. a radius
// constraint against a profile without coordinates) counts as unsatisfied.
func satisfiesPreferences(viewer *entity.Profile, prefs *entity.Preferences, candidate *entity.Profile, now time.Time) bool {
	if prefs.Unconstrained() {
		return true
	}

	if prefs.AgeMin != nil || prefs.AgeMax != nil {
		age := candidate.Age(now)
		if prefs.AgeMin != nil && age < *prefs.AgeMin {
			return false
		}
		if prefs.AgeMax != nil && age > *prefs.AgeMax {
			return false
		}
	}

	if prefs.Region != nil && !strings.EqualFold(candidate.Region, *prefs.Region) {
		return false
	}

	if prefs.MaxDistanceKm != nil && !withinDistance(viewer, candidate, *prefs.MaxDistanceKm) {
		return false
	}

	if prefs.Religion != nil && !strings.EqualFold(candidate.Religion, *prefs.Religion) {
		return false
	}

	if prefs.Lifestyle != nil && !strings.EqualFold(candidate.Lifestyle, *prefs.Lifestyle) {
		return false
	}

	return true
}

func withinDistance(viewer, candidate *entity.Profile, maxKm float64) bool {
	if viewer.Latitude == nil || viewer.Longitude == nil ||
		candidate.Latitude == nil || candidate.Longitude == nil {
		return false
	}

	meters := geo.Distance(
		orb.Point{*viewer.Longitude, *viewer.Latitude},
		orb.Point{*candidate.Longitude, *candidate.Latitude},
	)

	return meters <= maxKm*1000
}
