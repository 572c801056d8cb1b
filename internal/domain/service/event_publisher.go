package service

import (
	"context"
	"encoding/json"
)

// RealtimeEvent is a realtime push routed through the message queue so every
// instance can deliver it to its own connections.
type RealtimeEvent struct {
	RequestID    string          `json:"request_id,omitempty"` // For distributed tracing
	Event        string          `json:"event"`
	TargetUserID string          `json:"target_user_id,omitempty"`
	TargetRole   string          `json:"target_role,omitempty"`
	Data         json.RawMessage `json:"data"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishRealtimeEvent publishes an event for fan-out across instances
	PublishRealtimeEvent(ctx context.Context, event *RealtimeEvent) error

	// Enabled reports whether events leave this process
	Enabled() bool

	// Close releases any resources held by the publisher
	Close() error
}
