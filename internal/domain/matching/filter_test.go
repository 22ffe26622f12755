package matching

import (
	"testing"
	"time"

	"kindred/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func activeProfile(birthYears int, region string, now time.Time) *entity.Profile {
	return &entity.Profile{
		UserID:    uuid.New(),
		BirthDate: now.AddDate(-birthYears, 0, -1),
		Region:    region,
		IsActive:  true,
	}
}

func TestFilterCandidates(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	viewer := activeProfile(30, "Taipei", now)

	t.Run("viewer never passes", func(t *testing.T) {
		t.Parallel()

		got := FilterCandidates(FilterInput{
			Viewer: viewer,
			Pool:   []*entity.Profile{viewer},
			Now:    now,
		})
		assert.Empty(t, got)
	})

	t.Run("inactive and deleted candidates are dropped", func(t *testing.T) {
		t.Parallel()

		inactive := activeProfile(28, "Taipei", now)
		inactive.IsActive = false
		deleted := activeProfile(28, "Taipei", now)
		deleted.IsDeleted = true
		ok := activeProfile(28, "Taipei", now)

		got := FilterCandidates(FilterInput{
			Viewer: viewer,
			Pool:   []*entity.Profile{inactive, deleted, ok},
			Now:    now,
		})
		assert.Equal(t, []*entity.Profile{ok}, got)
	})

	t.Run("excluded candidates are dropped", func(t *testing.T) {
		t.Parallel()

		dismissed := activeProfile(28, "Taipei", now)
		kept := activeProfile(28, "Taipei", now)

		got := FilterCandidates(FilterInput{
			Viewer:   viewer,
			Pool:     []*entity.Profile{dismissed, kept},
			Excluded: map[uuid.UUID]struct{}{dismissed.UserID: {}},
			Now:      now,
		})
		assert.Equal(t, []*entity.Profile{kept}, got)
	})

	t.Run("age bounds are inclusive", func(t *testing.T) {
		t.Parallel()

		tooYoung := activeProfile(24, "Taipei", now)
		atMin := activeProfile(25, "Taipei", now)
		atMax := activeProfile(35, "Taipei", now)
		tooOld := activeProfile(36, "Taipei", now)

		got := FilterCandidates(FilterInput{
			Viewer:      viewer,
			Preferences: &entity.Preferences{AgeMin: ptr(25), AgeMax: ptr(35)},
			Pool:        []*entity.Profile{tooYoung, atMin, atMax, tooOld},
			Now:         now,
		})
		assert.Equal(t, []*entity.Profile{atMin, atMax}, got)
	})

	t.Run("region match is case insensitive", func(t *testing.T) {
		t.Parallel()

		match := activeProfile(30, "TAIPEI", now)
		other := activeProfile(30, "Kaohsiung", now)

		got := FilterCandidates(FilterInput{
			Viewer:      viewer,
			Preferences: &entity.Preferences{Region: ptr("taipei")},
			Pool:        []*entity.Profile{match, other},
			Now:         now,
		})
		assert.Equal(t, []*entity.Profile{match}, got)
	})

	t.Run("distance constraint", func(t *testing.T) {
		t.Parallel()

		located := activeProfile(30, "Taipei", now)
		located.Latitude = ptr(25.0330)
		located.Longitude = ptr(121.5654)

		// Roughly 12km away from the viewer below.
		near := activeProfile(30, "Taipei", now)
		near.Latitude = ptr(25.1330)
		near.Longitude = ptr(121.6200)

		// Several hundred km away.
		far := activeProfile(30, "Kaohsiung", now)
		far.Latitude = ptr(22.6273)
		far.Longitude = ptr(120.3014)

		// No coordinates at all: the radius constraint cannot be verified.
		unknown := activeProfile(30, "Taipei", now)

		got := FilterCandidates(FilterInput{
			Viewer:      located,
			Preferences: &entity.Preferences{MaxDistanceKm: ptr(50.0)},
			Pool:        []*entity.Profile{near, far, unknown},
			Now:         now,
		})
		assert.Equal(t, []*entity.Profile{near}, got)
	})

	t.Run("religion and lifestyle constraints", func(t *testing.T) {
		t.Parallel()

		match := activeProfile(30, "Taipei", now)
		match.Religion = "Buddhist"
		match.Lifestyle = "Vegetarian"

		wrongReligion := activeProfile(30, "Taipei", now)
		wrongReligion.Religion = "Catholic"
		wrongReligion.Lifestyle = "Vegetarian"

		wrongLifestyle := activeProfile(30, "Taipei", now)
		wrongLifestyle.Religion = "Buddhist"

		got := FilterCandidates(FilterInput{
			Viewer:      viewer,
			Preferences: &entity.Preferences{Religion: ptr("buddhist"), Lifestyle: ptr("vegetarian")},
			Pool:        []*entity.Profile{match, wrongReligion, wrongLifestyle},
			Now:         now,
		})
		assert.Equal(t, []*entity.Profile{match}, got)
	})

	t.Run("nil preferences constrain nothing", func(t *testing.T) {
		t.Parallel()

		a := activeProfile(20, "Kaohsiung", now)
		b := activeProfile(60, "Taichung", now)

		got := FilterCandidates(FilterInput{
			Viewer: viewer,
			Pool:   []*entity.Profile{a, b},
			Now:    now,
		})
		assert.Equal(t, []*entity.Profile{a, b}, got)
	})

	t.Run("pool order is preserved", func(t *testing.T) {
		t.Parallel()

		a := activeProfile(30, "Taipei", now)
		b := activeProfile(31, "Taipei", now)
		c := activeProfile(32, "Taipei", now)

		got := FilterCandidates(FilterInput{
			Viewer: viewer,
			Pool:   []*entity.Profile{c, a, b},
			Now:    now,
		})
		assert.Equal(t, []*entity.Profile{c, a, b}, got)
	})
}
