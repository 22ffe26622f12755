// Package service declares infra-agnostic service contracts consumed by the
// application layer.
package service

import (
	"context"

	"kindred/internal/domain/matching"
)

// TaxonomySource serves immutable taxonomy snapshots and swaps in new ones.
// Current never blocks and never observes a torn reload: in-flight scoring
// keeps the snapshot it started with while a reload publishes the next one.
type TaxonomySource interface {
	// Current returns the active snapshot.
	Current() *matching.Snapshot

	// Reload re-reads the taxonomy source, validates it fully, and atomically
	// swaps it in with a new version. On any validation failure the previous
	// snapshot keeps serving and the error is returned.
	Reload(ctx context.Context) (*matching.Snapshot, error)
}
