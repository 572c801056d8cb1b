package memory

import (
	"context"
	"slices"
	"time"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type deviceRepository struct {
	store *Store
}

// NewDeviceRepository returns a DeviceRepository backed by the store.
func NewDeviceRepository(store *Store) repository.DeviceRepository {
	return &deviceRepository{store: store}
}

func (repo *deviceRepository) CreateDevice(_ context.Context, device *entity.UserDevice) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	for _, row := range repo.store.devices {
		if row.UserID == device.UserID && row.DeviceID == device.DeviceID {
			return repository.ErrDuplicateDevice
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return errors.Wrap(err, "failed to generate device id")
	}
	now := time.Now().UTC()
	device.ID = id
	device.CreatedAt = now
	device.UpdatedAt = now
	repo.store.devices[id] = *device

	return nil
}

func (repo *deviceRepository) FindDeviceByID(_ context.Context, id uuid.UUID) (*entity.UserDevice, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	row, ok := repo.store.devices[id]
	if !ok {
		return nil, repository.ErrDeviceNotFound
	}

	return &row, nil
}

func (repo *deviceRepository) FindDevicesByUser(_ context.Context, userID string) ([]*entity.UserDevice, error) {
	return repo.filter(func(d entity.UserDevice) bool { return d.UserID == userID }), nil
}

func (repo *deviceRepository) FindActiveDevicesByUser(_ context.Context, userID string) ([]*entity.UserDevice, error) {
	return repo.filter(func(d entity.UserDevice) bool { return d.UserID == userID && d.IsActive }), nil
}

func (repo *deviceRepository) filter(keep func(entity.UserDevice) bool) []*entity.UserDevice {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	devices := make([]*entity.UserDevice, 0)
	for _, row := range repo.store.devices {
		if keep(row) {
			devices = append(devices, &row)
		}
	}
	slices.SortFunc(devices, func(a, b *entity.UserDevice) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return devices
}

func (repo *deviceRepository) UpdateFCMToken(_ context.Context, deviceID uuid.UUID, fcmToken string) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	row, ok := repo.store.devices[deviceID]
	if !ok {
		return repository.ErrDeviceNotFound
	}
	row.FCMToken = fcmToken
	row.IsActive = true
	row.UpdatedAt = time.Now().UTC()
	repo.store.devices[deviceID] = row

	return nil
}

func (repo *deviceRepository) DeactivateTokens(_ context.Context, fcmTokens []string) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	for id, row := range repo.store.devices {
		if row.IsActive && slices.Contains(fcmTokens, row.FCMToken) {
			row.IsActive = false
			row.UpdatedAt = time.Now().UTC()
			repo.store.devices[id] = row
		}
	}

	return nil
}

func (repo *deviceRepository) DeleteDevice(_ context.Context, id uuid.UUID) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.devices[id]; !ok {
		return repository.ErrDeviceNotFound
	}
	delete(repo.store.devices, id)

	return nil
}
