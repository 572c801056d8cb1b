package usecase

import (
	"context"
	"time"

	"fieldops/internal/domain/entity"
)

// LocationPingInput is the sendLocation payload. Coordinates are pointers so
// a missing field can be told apart from zero.
type LocationPingInput struct {
	UserID    string     `json:"userId"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// LocationUsecase relays field agent positions to administrators
type LocationUsecase interface {
	// RelayPing validates and enriches a ping from conn and fans it out to
	// every administrator connection. Rejected pings are never retried.
	RelayPing(ctx context.Context, conn entity.Connection, input *LocationPingInput) (*entity.LocationPing, error)
}
