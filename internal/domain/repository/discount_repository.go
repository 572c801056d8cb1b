package repository

import (
	"context"
	"time"

	"fieldops/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for discount persistence.
var (
	// ErrDiscountRequestNotFound is returned when a discount request is not found.
	ErrDiscountRequestNotFound = errors.New("discount request not found")
	// ErrDiscountTransitionConflict is returned when the request already left REQUESTED.
	ErrDiscountTransitionConflict = errors.New("discount request is no longer pending")
	// ErrDuplicateDiscountGrant is returned when a grant already exists for the request.
	ErrDuplicateDiscountGrant = errors.New("discount grant already exists")
)

// DiscountRepository defines the interface for discount request and grant persistence.
type DiscountRepository interface {
	// CreateRequest persists a new request in REQUESTED state.
	CreateRequest(ctx context.Context, request *entity.DiscountRequest) error

	// FindRequestByID retrieves a request by its unique ID.
	FindRequestByID(ctx context.Context, id uuid.UUID) (*entity.DiscountRequest, error)

	// FindPendingRequests lists requests still in REQUESTED, oldest first.
	FindPendingRequests(ctx context.Context) ([]*entity.DiscountRequest, error)

	// TransitionRequest moves a REQUESTED row to a terminal state with a single
	// conditional write. It returns ErrDiscountTransitionConflict when the row
	// has already left REQUESTED and ErrDiscountRequestNotFound when it does not exist.
	TransitionRequest(ctx context.Context, id uuid.UUID, to entity.DiscountState, resolvedBy string, resolvedAt time.Time) error

	// CreateGrant persists a grant; one per request.
	CreateGrant(ctx context.Context, grant *entity.DiscountGrant) error

	// FindGrantsByClient lists grants issued to a client, newest first.
	FindGrantsByClient(ctx context.Context, clientID string) ([]*entity.DiscountGrant, error)
}
