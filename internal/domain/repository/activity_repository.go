package repository

import (
	"context"

	"fieldops/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrActivityNotFound is returned when the user has no open activity.
var ErrActivityNotFound = errors.New("no open activity")

// ActivityRepository resolves what a field agent is doing right now.
type ActivityRepository interface {
	// FindOpenActivity returns the agent's current activity context.
	FindOpenActivity(ctx context.Context, userID string) (*entity.ActivityContext, error)
}
