package usecase

import (
	"context"

	"kindred/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterDeviceInput represents the input for registering a push device
type RegisterDeviceInput struct {
	FCMToken string `json:"fcm_token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android"`
}

// DeviceUsecase defines the interface for push device management
type DeviceUsecase interface {
	// RegisterDevice registers or refreshes a device token for the user
	RegisterDevice(ctx context.Context, userID uuid.UUID, input *RegisterDeviceInput) (*entity.UserDevice, error)

	// DeactivateDevice marks a device inactive
	DeactivateDevice(ctx context.Context, deviceID uuid.UUID) error
}
