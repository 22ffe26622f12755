package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDefinition returns a small but fully featured taxonomy used across the
// package tests: three domains, three archetypes, two modalities, with the
// production weight split of 0.5/0.3/0.2.
func testDefinition() *Definition {
	return &Definition{
		Domain: AxisDefinition{
			Values: []string{"Educational", "Creative", "Social"},
			Weight: 0.5,
			Similarity: map[string]map[string]float64{
				"Educational": {"Creative": 0.6, "Social": 0.3},
				"Creative":    {"Social": 0.4},
			},
		},
		Archetype: AxisDefinition{
			Values: []string{"Builder", "Mentor", "Explorer"},
			Weight: 0.3,
			Similarity: map[string]map[string]float64{
				"Builder": {"Mentor": 0.5, "Explorer": 0.7},
			},
		},
		Modality: AxisDefinition{
			Values: []string{"Collaborative", "Independent"},
			Weight: 0.2,
			Similarity: map[string]map[string]float64{
				"Collaborative": {"Independent": 0.2},
			},
		},
	}
}

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	snap, err := NewSnapshot(1, "test-checksum", testDefinition())
	require.NoError(t, err)

	return snap
}

func TestNewSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("valid definition", func(t *testing.T) {
		t.Parallel()

		snap := testSnapshot(t)
		assert.Equal(t, int64(1), snap.Version())
		assert.Equal(t, "test-checksum", snap.Checksum())
		assert.Equal(t, []string{"Educational", "Creative", "Social"}, snap.Values(AxisDomain))
		assert.InDelta(t, 0.5, snap.AxisWeight(AxisDomain), 1e-9)
		assert.InDelta(t, 0.3, snap.AxisWeight(AxisArchetype), 1e-9)
		assert.InDelta(t, 0.2, snap.AxisWeight(AxisModality), 1e-9)
	})

	t.Run("rejects empty value set", func(t *testing.T) {
		t.Parallel()

		def := testDefinition()
		def.Modality.Values = nil

		_, err := NewSnapshot(1, "", def)
		require.ErrorIs(t, err, ErrInvalidTaxonomy)
	})

	t.Run("rejects duplicate value", func(t *testing.T) {
		t.Parallel()

		def := testDefinition()
		def.Domain.Values = append(def.Domain.Values, "Creative")

		_, err := NewSnapshot(1, "", def)
		require.ErrorIs(t, err, ErrInvalidTaxonomy)
	})

	t.Run("rejects similarity outside unit interval", func(t *testing.T) {
		t.Parallel()

		def := testDefinition()
		def.Domain.Similarity["Educational"]["Creative"] = 1.2

		_, err := NewSnapshot(1, "", def)
		require.ErrorIs(t, err, ErrInvalidTaxonomy)
	})

	t.Run("rejects similarity against unregistered value", func(t *testing.T) {
		t.Parallel()

		def := testDefinition()
		def.Archetype.Similarity["Builder"]["Wanderer"] = 0.4

		_, err := NewSnapshot(1, "", def)
		require.ErrorIs(t, err, ErrInvalidTaxonomy)
	})

	t.Run("rejects contradictory asymmetric pair", func(t *testing.T) {
		t.Parallel()

		def := testDefinition()
		def.Domain.Similarity["Creative"] = map[string]float64{"Educational": 0.9}

		_, err := NewSnapshot(1, "", def)
		require.ErrorIs(t, err, ErrInvalidTaxonomy)
	})

	t.Run("rejects non unit self similarity", func(t *testing.T) {
		t.Parallel()

		def := testDefinition()
		def.Domain.Similarity["Social"] = map[string]float64{"Social": 0.5}

		_, err := NewSnapshot(1, "", def)
		require.ErrorIs(t, err, ErrInvalidTaxonomy)
	})

	t.Run("rejects weights not summing to one", func(t *testing.T) {
		t.Parallel()

		def := testDefinition()
		def.Modality.Weight = 0.3

		_, err := NewSnapshot(1, "", def)
		require.ErrorIs(t, err, ErrInvalidTaxonomy)
	})
}

func TestSnapshotSimilarity(t *testing.T) {
	t.Parallel()

	snap := testSnapshot(t)

	t.Run("identical values score one", func(t *testing.T) {
		t.Parallel()

		sim, err := snap.Similarity(AxisDomain, "Creative", "Creative")
		require.NoError(t, err)
		assert.Equal(t, 1.0, sim)
	})

	t.Run("matrix is symmetric", func(t *testing.T) {
		t.Parallel()

		forward, err := snap.Similarity(AxisDomain, "Educational", "Creative")
		require.NoError(t, err)
		backward, err := snap.Similarity(AxisDomain, "Creative", "Educational")
		require.NoError(t, err)
		assert.Equal(t, forward, backward)
		assert.Equal(t, 0.6, forward)
	})

	t.Run("undeclared pair defaults to zero", func(t *testing.T) {
		t.Parallel()

		sim, err := snap.Similarity(AxisArchetype, "Mentor", "Explorer")
		require.NoError(t, err)
		assert.Equal(t, 0.0, sim)
	})

	t.Run("unknown value fails loudly", func(t *testing.T) {
		t.Parallel()

		_, err := snap.Similarity(AxisDomain, "Educational", "Athletic")
		require.ErrorIs(t, err, ErrUnknownTaxonomyValue)
	})

	t.Run("unknown axis fails loudly", func(t *testing.T) {
		t.Parallel()

		_, err := snap.Similarity(Axis("vibe"), "Educational", "Creative")
		require.ErrorIs(t, err, ErrUnknownAxis)
	})
}
