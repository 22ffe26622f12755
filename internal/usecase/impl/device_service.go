package impl

import (
	"context"
	"time"

	domainerrors "kindred/internal/domain/errors"
	"kindred/internal/domain/entity"
	"kindred/internal/domain/repository"
	"kindred/internal/errors"
	"kindred/internal/usecase"

	"github.com/google/uuid"
)

type deviceService struct {
	deviceRepo repository.DeviceRepository
}

// NewDeviceService creates a new device service instance
func NewDeviceService(deviceRepo repository.DeviceRepository) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: deviceRepo,
	}
}

// RegisterDevice registers or refreshes a device token for the user
func (s *deviceService) RegisterDevice(ctx context.Context, userID uuid.UUID, input *usecase.RegisterDeviceInput) (*entity.UserDevice, error) {
	device := &entity.UserDevice{
		ID:        uuid.New(),
		UserID:    userID,
		FCMToken:  input.FCMToken,
		Platform:  input.Platform,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.deviceRepo.RegisterDevice(ctx, device); err != nil {
		return nil, errors.Wrap(err, "failed to register device")
	}

	return device, nil
}

// DeactivateDevice marks a device inactive
func (s *deviceService) DeactivateDevice(ctx context.Context, deviceID uuid.UUID) error {
	if err := s.deviceRepo.DeactivateDevice(ctx, deviceID); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrNotFound
		}

		return err
	}

	return nil
}
