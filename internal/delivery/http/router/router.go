// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/router/handler"
	"fieldops/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DiscountHandler     *handler.DiscountHandler
	NotificationHandler *handler.NotificationHandler
	DeviceHandler       *handler.DeviceHandler
	PresenceHandler     *handler.PresenceHandler
	RealtimeHandler     *handler.RealtimeHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	discountHandler     *handler.DiscountHandler
	notificationHandler *handler.NotificationHandler
	deviceHandler       *handler.DeviceHandler
	presenceHandler     *handler.PresenceHandler
	realtimeHandler     *handler.RealtimeHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		discountHandler:     params.DiscountHandler,
		notificationHandler: params.NotificationHandler,
		deviceHandler:       params.DeviceHandler,
		presenceHandler:     params.PresenceHandler,
		realtimeHandler:     params.RealtimeHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	auth := r.authMiddleware.Authenticate

	e.GET("/ws", r.realtimeHandler.Connect, auth)

	admin := r.authMiddleware.RequireRole(entity.RoleAdmin)
	agent := r.authMiddleware.RequireRole(entity.RoleFieldAgent)

	e.GET("/presence", r.presenceHandler.Snapshot, auth, admin)

	discountsGroup := e.Group("/discounts", auth)
	{
		discountsGroup.POST("/requests", r.discountHandler.SubmitRequest, agent)
		discountsGroup.GET("/requests/pending", r.discountHandler.ListPending, admin)
		discountsGroup.POST("/requests/:id/approve", r.discountHandler.Approve, admin)
		discountsGroup.POST("/requests/:id/reject", r.discountHandler.Reject, admin)
		discountsGroup.GET("/clients/:clientId/grants", r.discountHandler.ListClientGrants)
	}

	notificationsGroup := e.Group("/notifications", auth)
	{
		notificationsGroup.GET("", r.notificationHandler.ListInbox)
		notificationsGroup.POST("/:id/read", r.notificationHandler.MarkRead)
		notificationsGroup.DELETE("", r.notificationHandler.ClearAll, admin)
	}

	devicesGroup := e.Group("/devices", auth)
	{
		devicesGroup.POST("", r.deviceHandler.RegisterDevice)
		devicesGroup.GET("", r.deviceHandler.GetUserDevices)
		devicesGroup.PUT("/:id/token", r.deviceHandler.UpdateFCMToken)
		devicesGroup.DELETE("/:id", r.deviceHandler.DeactivateDevice)
	}
}
