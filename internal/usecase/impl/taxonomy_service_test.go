package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"kindred/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyServiceInfo(t *testing.T) {
	t.Parallel()

	source := &fakeTaxonomySource{snap: compatSnapshot(t)}
	svc := NewTaxonomyService(source, slog.New(slog.NewTextHandler(io.Discard, nil)))

	info, err := svc.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), info.Version)
	assert.Equal(t, []string{"Educational", "Creative", "Social"}, info.Axes["domain"])
	assert.Equal(t, []string{"Builder", "Mentor"}, info.Axes["archetype"])
	assert.Equal(t, []string{"Collaborative", "Independent"}, info.Axes["modality"])
	assert.False(t, info.LoadedAt.IsZero())
}

func TestTaxonomyServiceReload(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		source := &fakeTaxonomySource{snap: compatSnapshot(t)}
		svc := NewTaxonomyService(source, slog.New(slog.NewTextHandler(io.Discard, nil)))

		info, err := svc.Reload(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), info.Version)
	})

	t.Run("rejected reload maps to application error", func(t *testing.T) {
		t.Parallel()

		source := &fakeTaxonomySource{
			snap:      compatSnapshot(t),
			reloadErr: errors.New("axis weights sum to 1.2, want 1"),
		}
		svc := NewTaxonomyService(source, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := svc.Reload(context.Background())
		require.Error(t, err)
		assert.Equal(t, "TAXONOMY_RELOAD_FAILED", appErrorCode(t, err))
	})
}
