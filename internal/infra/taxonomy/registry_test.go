package taxonomy

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"kindred/config"
	"kindred/internal/domain/matching"
	"kindred/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTaxonomyYAML = `
domain:
  weight: 0.5
  values: [Educational, Creative]
  similarity:
    Educational:
      Creative: 0.6
archetype:
  weight: 0.3
  values: [Builder, Mentor]
  similarity:
    Builder:
      Mentor: 0.5
modality:
  weight: 0.2
  values: [Collaborative, Independent]
  similarity:
    Collaborative:
      Independent: 0.2
`

func writeTaxonomyFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newTestRegistry(t *testing.T, path string) service.TaxonomySource {
	t.Helper()

	src, err := New(Params{
		Config: &config.Config{Matching: &config.MatchingConfig{TaxonomyPath: path}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return src
}

func TestRegistryEmbeddedDefaults(t *testing.T) {
	t.Parallel()

	src := newTestRegistry(t, "")

	snap := src.Current()
	require.NotNil(t, snap)
	assert.Equal(t, int64(1), snap.Version())
	assert.Empty(t, snap.Checksum())
	assert.Len(t, snap.Values(matching.AxisDomain), 6)
	assert.Len(t, snap.Values(matching.AxisArchetype), 6)
	assert.Len(t, snap.Values(matching.AxisModality), 4)

	total := snap.AxisWeight(matching.AxisDomain) +
		snap.AxisWeight(matching.AxisArchetype) +
		snap.AxisWeight(matching.AxisModality)
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestRegistryLoadsFromFile(t *testing.T) {
	t.Parallel()

	path := writeTaxonomyFile(t, validTaxonomyYAML)
	src := newTestRegistry(t, path)

	snap := src.Current()
	assert.Equal(t, int64(1), snap.Version())
	assert.NotEmpty(t, snap.Checksum())
	assert.Equal(t, []string{"Educational", "Creative"}, snap.Values(matching.AxisDomain))

	sim, err := snap.Similarity(matching.AxisDomain, "Educational", "Creative")
	require.NoError(t, err)
	assert.Equal(t, 0.6, sim)
}

func TestRegistryStartupFailsOnBrokenFile(t *testing.T) {
	t.Parallel()

	path := writeTaxonomyFile(t, "domain:\n  weight: 0.5\n  values: []\n")

	_, err := New(Params{
		Config: &config.Config{Matching: &config.MatchingConfig{TaxonomyPath: path}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.Error(t, err)
}

func TestRegistryReload(t *testing.T) {
	t.Parallel()

	t.Run("successful reload bumps version", func(t *testing.T) {
		t.Parallel()

		path := writeTaxonomyFile(t, validTaxonomyYAML)
		src := newTestRegistry(t, path)
		first := src.Current()

		updated := validTaxonomyYAML + "\n# operator note\n"
		require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

		snap, err := src.Reload(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), snap.Version())
		assert.NotEqual(t, first.Checksum(), snap.Checksum())
		assert.Same(t, snap, src.Current())

		// The pre-reload snapshot stays usable for in-flight scoring.
		assert.Equal(t, int64(1), first.Version())
		sim, err := first.Similarity(matching.AxisDomain, "Educational", "Creative")
		require.NoError(t, err)
		assert.Equal(t, 0.6, sim)
	})

	t.Run("broken file is rejected and old version keeps serving", func(t *testing.T) {
		t.Parallel()

		path := writeTaxonomyFile(t, validTaxonomyYAML)
		src := newTestRegistry(t, path)
		before := src.Current()

		require.NoError(t, os.WriteFile(path, []byte("modality:\n  weight: 2.0\n  values: [Solo]\n"), 0o600))

		_, err := src.Reload(context.Background())
		require.Error(t, err)
		assert.Same(t, before, src.Current())

		// A later fix resumes the version sequence without gaps.
		require.NoError(t, os.WriteFile(path, []byte(validTaxonomyYAML), 0o600))
		snap, err := src.Reload(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), snap.Version())
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		t.Parallel()

		path := writeTaxonomyFile(t, validTaxonomyYAML)
		src := newTestRegistry(t, path)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := src.Reload(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
