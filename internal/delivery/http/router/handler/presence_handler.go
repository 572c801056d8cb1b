package handler

import (
	"net/http"

	"fieldops/internal/delivery/http/response"
	"fieldops/internal/realtime"

	"github.com/labstack/echo/v4"
)

// PresenceHandler exposes the presence snapshot on demand
type PresenceHandler struct {
	presence *realtime.PresenceBroadcaster
}

// NewPresenceHandler is the constructor for PresenceHandler
func NewPresenceHandler(presence *realtime.PresenceBroadcaster) *PresenceHandler {
	return &PresenceHandler{presence: presence}
}

// Snapshot returns the current distinct-user counts
func (h *PresenceHandler) Snapshot(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.presence.Snapshot(), "")
}

// HealthCheck reports liveness
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
