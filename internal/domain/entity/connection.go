package entity

import (
	"time"

	"github.com/google/uuid"
)

// Connection is one live realtime session. A user may hold several at once.
type Connection struct {
	ID          uuid.UUID `json:"connectionId"` // Server-assigned connection identifier.
	UserID      string    `json:"userId"`       // Opaque identity validated upstream.
	Role        Role      `json:"role"`         // Role declared in the handshake.
	ConnectedAt time.Time `json:"connectedAt"`  // Timestamp of registration.
	LastSeenAt  time.Time `json:"lastSeenAt"`   // Last inbound frame or pong.
}

// PresenceSnapshot counts distinct connected users. It is always recomputed
// from the registry and never stored.
type PresenceSnapshot struct {
	TotalConnected   int `json:"totalConnected"`
	TotalFieldAgents int `json:"totalFieldAgents"`
	TotalAdmins      int `json:"totalAdmins"`
}
