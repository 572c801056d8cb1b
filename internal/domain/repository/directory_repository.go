package repository

import (
	"context"

	"fieldops/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for directory lookups.
var (
	// ErrUserNotFound is returned when a user is not in the directory.
	ErrUserNotFound = errors.New("user not found")
	// ErrClientNotFound is returned when a client is not in the directory.
	ErrClientNotFound = errors.New("client not found")
)

// DirectoryRepository reads user and client records owned by other services.
type DirectoryRepository interface {
	FindUser(ctx context.Context, id string) (*entity.UserInfo, error)
	FindClient(ctx context.Context, id string) (*entity.ClientInfo, error)
}
