package memory

import (
	"context"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"
)

type directoryRepository struct {
	store *Store
}

// NewDirectoryRepository returns a DirectoryRepository over the seeded users and clients.
func NewDirectoryRepository(store *Store) repository.DirectoryRepository {
	return &directoryRepository{store: store}
}

func (repo *directoryRepository) FindUser(_ context.Context, id string) (*entity.UserInfo, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	user, ok := repo.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (repo *directoryRepository) FindClient(_ context.Context, id string) (*entity.ClientInfo, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	client, ok := repo.store.clients[id]
	if !ok {
		return nil, repository.ErrClientNotFound
	}

	return &client, nil
}

type activityRepository struct {
	store *Store
}

// NewActivityRepository returns an ActivityRepository over the seeded activities.
func NewActivityRepository(store *Store) repository.ActivityRepository {
	return &activityRepository{store: store}
}

func (repo *activityRepository) FindOpenActivity(_ context.Context, userID string) (*entity.ActivityContext, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	activity, ok := repo.store.activities[userID]
	if !ok {
		return nil, repository.ErrActivityNotFound
	}

	return &activity, nil
}
