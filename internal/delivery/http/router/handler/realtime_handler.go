package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"fieldops/config"
	deliverycontext "fieldops/internal/delivery/context"
	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/ws"
	"fieldops/internal/domain/constants"
	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/errors"
	"fieldops/internal/realtime"
	"fieldops/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RealtimeHandlerParams holds dependencies for RealtimeHandler, injected by Fx.
type RealtimeHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Registry   *realtime.Registry
	LocationUC usecase.LocationUsecase
}

// RealtimeHandler upgrades /ws requests and runs the read loop of each socket
type RealtimeHandler struct {
	registry   *realtime.Registry
	locationUC usecase.LocationUsecase
	upgrader   websocket.Upgrader
	opts       ws.Options
	readLimit  int64
	readIdle   time.Duration
	logger     *slog.Logger
}

// NewRealtimeHandler is the constructor for RealtimeHandler
func NewRealtimeHandler(params RealtimeHandlerParams) *RealtimeHandler {
	rc := params.Config.Realtime

	return &RealtimeHandler{
		registry:   params.Registry,
		locationUC: params.LocationUC,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(rc.AllowedOrigins),
		},
		opts: ws.Options{
			SendBuffer:   rc.SendBuffer,
			PingInterval: rc.PingInterval,
			WriteTimeout: rc.WriteTimeout,
		},
		readLimit: rc.MaxMessageBytes,
		readIdle:  rc.PingInterval + rc.GraceTimeout,
		logger:    params.Logger,
	}
}

// Connect performs the handshake. The caller must already be authenticated;
// userId and role in the query are only checked against that identity.
func (h *RealtimeHandler) Connect(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}
	if err := checkHandshake(c.Request(), viewer); err != nil {
		return err
	}
	userID, role := viewer.UserID, viewer.Role

	socket, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the HTTP error
		h.logger.Warn("Websocket upgrade failed", slog.String("user_id", userID), slog.Any("error", err))

		return nil
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).With(
		slog.String("user_id", userID),
		slog.String("role", role.String()),
	)

	conn := ws.NewConn(socket, h.opts, logger)
	registered, err := h.registry.Register(userID, role, conn)
	if err != nil {
		logger.Warn("Websocket registration refused", slog.Any("error", err))
		_ = socket.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
			time.Now().Add(time.Second),
		)
		_ = socket.Close()

		return nil
	}

	logger = logger.With(slog.String("connection_id", registered.ID.String()))
	ctx := deliverycontext.WithLogger(c.Request().Context(), logger)

	go conn.WritePump()
	h.readPump(ctx, socket, conn, registered, logger)

	return nil
}

// readPump runs until the socket fails. A close frame from the peer
// unregisters at once; any other failure leaves the connection to the
// registry's grace reaper so a brief network drop does not flap presence.
func (h *RealtimeHandler) readPump(ctx context.Context, socket *websocket.Conn, conn *ws.Conn, registered entity.Connection, logger *slog.Logger) {
	defer func() {
		_ = conn.Close()
	}()

	if h.readLimit > 0 {
		socket.SetReadLimit(h.readLimit)
	}
	h.extendDeadline(socket)
	socket.SetPongHandler(func(string) error {
		h.registry.Touch(registered.ID)
		h.extendDeadline(socket)

		return nil
	})

	for {
		_, payload, err := socket.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.registry.Unregister(registered.ID)
				logger.Info("Websocket closed by peer")

				return
			}

			logger.Info("Websocket dropped, awaiting grace timeout", slog.Any("error", err))

			return
		}

		h.registry.Touch(registered.ID)
		h.extendDeadline(socket)
		h.dispatch(ctx, conn, registered, payload, logger)
	}
}

func (h *RealtimeHandler) dispatch(ctx context.Context, conn *ws.Conn, registered entity.Connection, payload []byte, logger *slog.Logger) {
	var event realtime.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		h.reply(conn, "", domainerrors.ErrValidationFailed.WithDetails("malformed frame"), logger)

		return
	}

	switch event.Name {
	case realtime.EventSendLocation:
		var input usecase.LocationPingInput
		if err := event.Decode(&input); err != nil {
			h.reply(conn, event.Name, domainerrors.ErrValidationFailed.WithDetails("malformed sendLocation payload"), logger)

			return
		}
		if _, err := h.locationUC.RelayPing(ctx, registered, &input); err != nil {
			h.reply(conn, event.Name, err, logger)
		}

	default:
		h.reply(conn, event.Name, domainerrors.ErrValidationFailed.WithDetails("unknown event "+event.Name), logger)
	}
}

// reply sends an error event back to the offending connection only.
func (h *RealtimeHandler) reply(conn *ws.Conn, inbound string, err error, logger *slog.Logger) {
	payload := realtime.ErrorPayload{
		Code:    domainerrors.CodeInternal,
		Message: domainerrors.ErrInternalError.Message(),
		Event:   inbound,
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		payload.Code = appErr.ErrorCode()
		payload.Message = appErr.Message()
		payload.Details = appErr.Details()
	} else {
		logger.Error("Realtime event failed", slog.String("event", inbound), slog.Any("error", err))
	}

	event, buildErr := realtime.NewEvent(realtime.EventError, payload)
	if buildErr != nil {
		return
	}
	if sendErr := conn.Send(event); sendErr != nil {
		logger.Debug("Could not send error event", slog.Any("error", sendErr))
	}
}

func (h *RealtimeHandler) extendDeadline(socket *websocket.Conn) {
	if h.readIdle > 0 {
		_ = socket.SetReadDeadline(time.Now().Add(h.readIdle))
	}
}

// checkHandshake rejects query identity that disagrees with the credentials.
func checkHandshake(req *http.Request, viewer usecase.Viewer) error {
	query := req.URL.Query()

	if userID := strings.TrimSpace(query.Get(constants.QueryUserID)); userID != "" && userID != viewer.UserID {
		return domainerrors.ErrUnauthenticated.WithDetails("userId does not match credentials")
	}
	if rawRole := query.Get(constants.QueryRole); rawRole != "" {
		role, ok := entity.ParseRole(rawRole)
		if !ok {
			return domainerrors.ErrUnauthenticated.WithDetails("invalid role")
		}
		if role != viewer.Role {
			return domainerrors.ErrUnauthenticated.WithDetails("role does not match credentials")
		}
	}

	return nil
}

// checkOrigin allows every origin when none are configured.
func checkOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")

		return origin == "" || slices.Contains(allowed, origin)
	}
}
