package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"fieldops/config"
	deliverycontext "fieldops/internal/delivery/context"
	"fieldops/internal/domain/constants"
	"fieldops/internal/domain/service"
	"fieldops/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// LocalDeliverer hands a cluster event to this instance's connections
type LocalDeliverer interface {
	DeliverLocal(msg *service.RealtimeEvent) (int, error)
}

// TokenVerifier checks the OIDC token attached to a push request
type TokenVerifier func(ctx context.Context, token, audience string) error

// PushHandler receives realtime events fanned out through Pub/Sub
type PushHandler struct {
	verifyPushAuth bool
	audience       string
	verify         TokenVerifier
	deliverer      LocalDeliverer
	logger         *slog.Logger
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Deliverer LocalDeliverer
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only Google push requests carry an OIDC token worth checking
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	audience := ""
	if params.Config.PubSub != nil {
		audience = params.Config.PubSub.PushAudience
	}

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		audience:       audience,
		verify:         verifyGoogleToken,
		deliverer:      params.Deliverer,
		logger:         params.Logger,
	}
}

// HandlePush handles incoming Pub/Sub push messages. Malformed messages are
// acknowledged with 400 and never retried; undeliverable targets are
// acknowledged with 200 since retrying cannot help.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.authorize(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.RealtimeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse realtime event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(
		slog.String("request_id", requestID),
		slog.String("message_id", pushMsg.Message.MessageID),
		slog.String("event", event.Event),
	)

	delivered, err := h.deliverer.DeliverLocal(&event)
	if err != nil {
		reqLogger.Warn("[Worker] Dropped undeliverable realtime event", slog.Any("error", err))

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Debug("[Worker] Realtime event delivered", slog.Int("delivered", delivered))

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers message attributes, then the payload, then the
// X-Request-Id of the push request itself.
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.RealtimeEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.NewString()
}

func (h *PushHandler) authorize(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}

	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	return h.verify(req.Context(), strings.TrimPrefix(authHeader, bearerPrefix), audience)
}

// verifyGoogleToken validates the push JWT against Google's keys
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyGoogleToken(ctx context.Context, token, audience string) error {
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
