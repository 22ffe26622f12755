package usecase

import (
	"context"
	"time"
)

// TaxonomyInfo describes the currently active taxonomy snapshot.
type TaxonomyInfo struct {
	Version  int64               `json:"version"`
	Checksum string              `json:"checksum,omitempty"`
	Axes     map[string][]string `json:"axes"`
	LoadedAt time.Time           `json:"loaded_at"`
}

// TaxonomyUsecase exposes taxonomy administration operations.
type TaxonomyUsecase interface {
	// Info reports the active snapshot's version and value sets.
	Info(ctx context.Context) (*TaxonomyInfo, error)

	// Reload re-reads the taxonomy source. A rejected reload returns an error
	// and leaves the previous snapshot serving.
	Reload(ctx context.Context) (*TaxonomyInfo, error)
}
