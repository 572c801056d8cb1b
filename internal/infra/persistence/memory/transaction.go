package memory

import (
	"context"

	"fieldops/internal/domain/repository"
)

type memoryTransactionManager struct {
	store *Store
}

// NewTransactionManager serializes transactions on the store mutex and
// restores the written tables when fn fails.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &memoryTransactionManager{store: store}
}

func (m *memoryTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	defer func() {
		if r := recover(); r != nil {
			m.store.restore(snap)
			panic(r)
		}
	}()

	if err := fn(&memoryRepositoryFactory{store: m.store}); err != nil {
		m.store.restore(snap)

		return err
	}

	return nil
}

type memoryRepositoryFactory struct {
	store *Store
}

func (f *memoryRepositoryFactory) NewDiscountRepository() repository.DiscountRepository {
	return &discountRepository{store: f.store, locked: true}
}

func (f *memoryRepositoryFactory) NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{store: f.store, locked: true}
}
