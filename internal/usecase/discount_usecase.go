package usecase

import (
	"context"

	"fieldops/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitDiscountInput represents a field agent's discount request
type SubmitDiscountInput struct {
	RequesterID   string   `json:"-" validate:"required"`
	ClientID      string   `json:"clientId" validate:"required"`
	Percentage    *float64 `json:"percentage" validate:"required,gte=0,lte=100"`
	Justification string   `json:"justification" validate:"max=1000"`
}

// ApproveDiscountInput represents an administrator approving a request.
// ClientID and RequesterID, when set, must match the stored request.
type ApproveDiscountInput struct {
	RequestID   uuid.UUID `json:"-" validate:"required"`
	AdminID     string    `json:"-" validate:"required"`
	Percentage  *float64  `json:"percentage" validate:"omitempty,gte=0,lte=100"`
	ClientID    string    `json:"clientId"`
	RequesterID string    `json:"requesterId"`
}

// RejectDiscountInput represents an administrator rejecting a request
type RejectDiscountInput struct {
	RequestID   uuid.UUID `json:"-" validate:"required"`
	AdminID     string    `json:"-" validate:"required"`
	RequesterID string    `json:"requesterId"`
}

// DiscountUsecase coordinates the discount request/approval workflow
type DiscountUsecase interface {
	// SubmitRequest persists a REQUESTED discount and notifies administrators
	SubmitRequest(ctx context.Context, input *SubmitDiscountInput) (*entity.DiscountRequest, error)

	// Approve moves a request to APPROVED and issues the grant. Exactly one
	// resolution wins under concurrency; the rest get a conflict.
	Approve(ctx context.Context, input *ApproveDiscountInput) (*entity.DiscountGrant, error)

	// Reject moves a request to REJECTED
	Reject(ctx context.Context, input *RejectDiscountInput) (*entity.DiscountRequest, error)

	// ListPending lists requests still awaiting a decision
	ListPending(ctx context.Context) ([]*entity.DiscountRequest, error)

	// ListClientGrants lists discounts granted to a client
	ListClientGrants(ctx context.Context, clientID string) ([]*entity.DiscountGrant, error)
}
