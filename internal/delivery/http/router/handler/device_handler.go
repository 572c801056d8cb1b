package handler

import (
	"log/slog"
	"net/http"

	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/response"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DeviceHandlerParams holds dependencies for DeviceHandler, injected by Fx.
type DeviceHandlerParams struct {
	fx.In

	DeviceUC usecase.DeviceUsecase
	Logger   *slog.Logger
}

// DeviceHandler holds dependencies for device-related handlers
type DeviceHandler struct {
	deviceUC usecase.DeviceUsecase
	logger   *slog.Logger
}

// NewDeviceHandler is the constructor for DeviceHandler
func NewDeviceHandler(params DeviceHandlerParams) *DeviceHandler {
	return &DeviceHandler{
		deviceUC: params.DeviceUC,
		logger:   params.Logger,
	}
}

// UpdateFCMTokenRequest represents the request body for updating FCM token
type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcm_token" validate:"required"`
}

// RegisterDevice handles device registration
func (h *DeviceHandler) RegisterDevice(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	var req usecase.DeviceInfo
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid device input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	device, err := h.deviceUC.RegisterDevice(c.Request().Context(), viewer.UserID, &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, device, "Device registered successfully")
}

// GetUserDevices handles retrieving all user devices
func (h *DeviceHandler) GetUserDevices(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	devices, err := h.deviceUC.GetUserDevices(c.Request().Context(), viewer.UserID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, devices, "")
}

// UpdateFCMToken handles updating FCM token for a device
func (h *DeviceHandler) UpdateFCMToken(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	deviceID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateFCMTokenRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid FCM token input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.deviceUC.UpdateFCMToken(c.Request().Context(), viewer.UserID, deviceID, req.FCMToken); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "FCM token updated successfully")
}

// DeactivateDevice handles deactivating a device
func (h *DeviceHandler) DeactivateDevice(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	deviceID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.deviceUC.DeactivateDevice(c.Request().Context(), viewer.UserID, deviceID); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Device deactivated successfully")
}
