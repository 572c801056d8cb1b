package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/response"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/usecase"

	"github.com/labstack/echo/v4"
)

// NotificationHandler holds dependencies for notification-related handlers
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListInbox handles the viewer's fetch-on-connect inbox
func (h *NotificationHandler) ListInbox(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return domainerrors.ErrValidationFailed.WithDetails("limit must be a non-negative integer")
		}
		limit = parsed
	}

	inbox, err := h.uc.ListInbox(c.Request().Context(), viewer, limit)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, inbox, "")
}

// MarkRead handles marking one notification read for the viewer
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	notificationID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.MarkRead(c.Request().Context(), notificationID, viewer); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked as read")
}

// ClearAll handles an administrator clearing their own inbox
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	cleared, err := h.uc.ClearAll(c.Request().Context(), viewer.UserID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]int64{"cleared": cleared}, "Notifications cleared")
}
