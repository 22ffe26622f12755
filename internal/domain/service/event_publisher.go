package service

import (
	"context"
)

// InvalidationEvent announces that a user's purpose profile changed and every
// cached match involving them is stale. Peer instances consume it to drop
// their local cache entries.
type InvalidationEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	UserID    string `json:"user_id"`
	Reason    string `json:"reason,omitempty"` // e.g. "purpose_profile_updated"
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishInvalidation publishes a cache invalidation event for async fan-out.
	PublishInvalidation(ctx context.Context, event *InvalidationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
