package handler

import (
	"log/slog"
	"net/http"
	"strings"

	deliverycontext "fieldops/internal/delivery/context"
	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/response"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DiscountHandlerParams holds dependencies for DiscountHandler, injected by Fx.
type DiscountHandlerParams struct {
	fx.In

	DiscountUC usecase.DiscountUsecase
	Logger     *slog.Logger
}

// DiscountHandler serves the discount request workflow
type DiscountHandler struct {
	discountUC usecase.DiscountUsecase
	logger     *slog.Logger
}

// NewDiscountHandler is the constructor for DiscountHandler
func NewDiscountHandler(params DiscountHandlerParams) *DiscountHandler {
	return &DiscountHandler{
		discountUC: params.DiscountUC,
		logger:     params.Logger,
	}
}

// SubmitRequest handles a field agent asking for a discount. The use case
// runs on a detached context so a dropped client cannot cancel a submission
// halfway through.
func (h *DiscountHandler) SubmitRequest(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	var req usecase.SubmitDiscountInput
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid discount request body")
	}
	req.RequesterID = viewer.UserID

	request, err := h.discountUC.SubmitRequest(deliverycontext.Detach(c.Request().Context()), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, request, "Discount request submitted")
}

// ListPending handles the administrator fetch-on-connect listing
func (h *DiscountHandler) ListPending(c echo.Context) error {
	requests, err := h.discountUC.ListPending(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, requests, "")
}

// Approve handles an administrator approving a request
func (h *DiscountHandler) Approve(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	requestID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req usecase.ApproveDiscountInput
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid approval body")
	}
	req.RequestID = requestID
	req.AdminID = viewer.UserID

	grant, err := h.discountUC.Approve(deliverycontext.Detach(c.Request().Context()), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, grant, "Discount request approved")
}

// Reject handles an administrator rejecting a request
func (h *DiscountHandler) Reject(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	requestID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req usecase.RejectDiscountInput
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid rejection body")
	}
	req.RequestID = requestID
	req.AdminID = viewer.UserID

	request, err := h.discountUC.Reject(deliverycontext.Detach(c.Request().Context()), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, request, "Discount request rejected")
}

// ListClientGrants handles listing the discounts granted to a client
func (h *DiscountHandler) ListClientGrants(c echo.Context) error {
	grants, err := h.discountUC.ListClientGrants(c.Request().Context(), strings.TrimSpace(c.Param("clientId")))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, grants, "")
}

func parseID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name)
	}

	return id, nil
}
