package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserDevice is a device registered for new-match push notifications.
type UserDevice struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the device.
	UserID    uuid.UUID // The user who owns this device.
	FCMToken  string    // Firebase Cloud Messaging token.
	Platform  string    // Device platform (ios, android).
	IsActive  bool      // Inactive devices are skipped when notifying.
	CreatedAt time.Time
	UpdatedAt time.Time
}
