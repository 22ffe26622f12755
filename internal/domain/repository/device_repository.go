package repository

import (
	"context"

	"kindred/internal/domain/entity"
	"kindred/internal/errors"

	"github.com/google/uuid"
)

// ErrDeviceNotFound is returned when a device is not found.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository stores push notification device registrations.
type DeviceRepository interface {
	// RegisterDevice persists a device, replacing any prior registration with
	// the same FCM token.
	RegisterDevice(ctx context.Context, device *entity.UserDevice) error

	// FindActiveDevicesByUser retrieves all active devices for a user.
	FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// DeactivateDevice marks a device inactive, e.g. after its token is
	// reported invalid by the push provider.
	DeactivateDevice(ctx context.Context, id uuid.UUID) error
}
