package impl

import (
	"context"
	"log/slog"
	"time"

	domainerrors "kindred/internal/domain/errors"
	"kindred/internal/domain/matching"
	"kindred/internal/domain/service"
	"kindred/internal/usecase"
)

type taxonomyService struct {
	source service.TaxonomySource
	logger *slog.Logger
}

// NewTaxonomyService creates the taxonomy administration service.
func NewTaxonomyService(source service.TaxonomySource, logger *slog.Logger) usecase.TaxonomyUsecase {
	return &taxonomyService{
		source: source,
		logger: logger,
	}
}

// Info reports the active snapshot's version and value sets.
func (s *taxonomyService) Info(_ context.Context) (*usecase.TaxonomyInfo, error) {
	return snapshotInfo(s.source.Current()), nil
}

// Reload re-reads the taxonomy source and reports the freshly active
// snapshot. A rejected reload keeps the previous version serving.
func (s *taxonomyService) Reload(ctx context.Context) (*usecase.TaxonomyInfo, error) {
	snap, err := s.source.Reload(ctx)
	if err != nil {
		return nil, domainerrors.ErrTaxonomyReloadFailed.WithDetails(err.Error())
	}

	return snapshotInfo(snap), nil
}

func snapshotInfo(snap *matching.Snapshot) *usecase.TaxonomyInfo {
	axes := make(map[string][]string, len(matching.Axes()))
	for _, axis := range matching.Axes() {
		axes[string(axis)] = snap.Values(axis)
	}

	return &usecase.TaxonomyInfo{
		Version:  snap.Version(),
		Checksum: snap.Checksum(),
		Axes:     axes,
		LoadedAt: time.Now(),
	}
}
