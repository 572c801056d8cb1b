// Package persistence selects the repository backend for the process.
package persistence

import (
	"log/slog"

	"fieldops/config"
	"fieldops/internal/domain/repository"
	"fieldops/internal/errors"
	"fieldops/internal/infra/persistence/memory"
	"fieldops/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories is the full repository set handed to the use cases.
type Repositories struct {
	fx.Out

	TxManager    repository.TransactionManager
	Discount     repository.DiscountRepository
	Notification repository.NotificationRepository
	Device       repository.DeviceRepository
	Activity     repository.ActivityRepository
	Directory    repository.DirectoryRepository
}

// New connects to Postgres when it is configured and falls back to the
// in-memory store otherwise.
func New(params Params) (Repositories, error) {
	if params.Config.Postgres == nil {
		params.Logger.Warn("Postgres is not configured, using in-memory repositories")

		return NewMemory(memory.NewStore()), nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return Repositories{}, errors.Wrap(err, "failed to initialize postgres repositories")
	}

	return Repositories{
		TxManager:    postgres.NewTransactionManager(db),
		Discount:     postgres.NewDiscountRepository(db),
		Notification: postgres.NewNotificationRepository(db),
		Device:       postgres.NewDeviceRepository(db),
		Activity:     postgres.NewActivityRepository(db),
		Directory:    postgres.NewDirectoryRepository(db),
	}, nil
}

// NewMemory builds every repository over a single store.
func NewMemory(store *memory.Store) Repositories {
	return Repositories{
		TxManager:    memory.NewTransactionManager(store),
		Discount:     memory.NewDiscountRepository(store),
		Notification: memory.NewNotificationRepository(store),
		Device:       memory.NewDeviceRepository(store),
		Activity:     memory.NewActivityRepository(store),
		Directory:    memory.NewDirectoryRepository(store),
	}
}
