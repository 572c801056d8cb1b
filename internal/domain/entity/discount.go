package entity

import (
	"time"

	"github.com/google/uuid"
)

// DiscountState is the lifecycle state of a discount request.
type DiscountState string

const (
	DiscountStateRequested DiscountState = "REQUESTED"
	DiscountStateApproved  DiscountState = "APPROVED"
	DiscountStateRejected  DiscountState = "REJECTED"
)

// IsTerminal reports whether the state can no longer change.
func (s DiscountState) IsTerminal() bool {
	return s == DiscountStateApproved || s == DiscountStateRejected
}

// DiscountRequest is an ad-hoc discount a field agent asks administrators to approve.
// It leaves REQUESTED at most once.
type DiscountRequest struct {
	ID            uuid.UUID     `json:"id"`
	Percentage    float64       `json:"percentage"`
	State         DiscountState `json:"state"`
	RequesterID   string        `json:"requesterId"`
	ClientID      string        `json:"clientId"`
	Justification string        `json:"justification"`
	CreatedAt     time.Time     `json:"createdAt"`
	ResolvedBy    string        `json:"resolvedBy,omitempty"`
	ResolvedAt    *time.Time    `json:"resolvedAt,omitempty"`

	Requester *UserInfo   `json:"requester,omitempty"`
	Client    *ClientInfo `json:"client,omitempty"`
}

// DiscountGrant records an approved discount for a client. At most one grant
// exists per request.
type DiscountGrant struct {
	ID         uuid.UUID `json:"id"`
	RequestID  uuid.UUID `json:"requestId"`
	ClientID   string    `json:"clientId"`
	Percentage float64   `json:"percentage"`
	GrantedBy  string    `json:"grantedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DiscountResolution is broadcast to administrators when a request leaves REQUESTED.
type DiscountResolution struct {
	RequestID  uuid.UUID     `json:"requestId"`
	State      DiscountState `json:"state"`
	ResolvedBy string        `json:"resolvedBy"`
	ResolvedAt time.Time     `json:"resolvedAt"`
}
