package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"fieldops/config"
	deliverycontext "fieldops/internal/delivery/context"
	"fieldops/internal/domain/constants"
	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/service"
	"fieldops/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the caller identity. Tokens are issued upstream;
// this only reads gateway headers or validates a bearer token.
type AuthMiddleware struct {
	tokenSvc     service.TokenService
	trustGateway bool
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:     tokenSvc,
		trustGateway: cfg.Auth != nil && cfg.Auth.TrustGatewayHeaders,
	}
}

// Authenticate stores the caller's user id and role on the echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, role, err := m.resolve(c)
		if err != nil {
			return err
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyRole, role)

		ctx := c.Request().Context()
		if logger := deliverycontext.GetLogger(ctx); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("user_id", userID)))
			c.SetRequest(c.Request().WithContext(ctx))
		}

		return next(c)
	}
}

// RequireRole rejects callers without role. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			viewer, ok := GetViewer(c)
			if !ok {
				return domainerrors.ErrUnauthenticated
			}
			if viewer.Role != role {
				return domainerrors.ErrForbidden.WithDetails("requires role " + role.String())
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) resolve(c echo.Context) (string, entity.Role, error) {
	header := c.Request().Header

	if m.trustGateway {
		if userID := strings.TrimSpace(header.Get(constants.HeaderUserID)); userID != "" {
			role, ok := entity.ParseRole(header.Get(constants.HeaderUserRole))
			if !ok {
				return "", "", domainerrors.ErrUnauthenticated.WithDetails("invalid role header")
			}

			return userID, role, nil
		}
	}

	tokenString, err := bearerToken(c)
	if err != nil {
		return "", "", err
	}
	if m.tokenSvc == nil {
		return "", "", domainerrors.ErrUnauthenticated.WithDetails("bearer tokens are not accepted")
	}

	claims, err := m.tokenSvc.ValidateToken(tokenString)
	if err != nil {
		return "", "", domainerrors.ErrUnauthenticated.WithDetails("invalid or expired token")
	}

	role, ok := entity.ParseRole(claims.Role)
	if !ok {
		return "", "", domainerrors.ErrUnauthenticated.WithDetails("token carries no valid role")
	}

	return claims.UserID, role, nil
}

// bearerToken reads the Authorization header. Browsers cannot set headers on
// a websocket upgrade, so upgrades may carry the token as the token query
// parameter instead.
func bearerToken(c echo.Context) (string, error) {
	req := c.Request()
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		if isWebsocketUpgrade(req.Header) {
			if token := strings.TrimSpace(c.QueryParam(constants.QueryToken)); token != "" {
				return token, nil
			}
		}

		return "", domainerrors.ErrUnauthenticated.WithDetails("authorization header is missing")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return "", domainerrors.ErrUnauthenticated.WithDetails("must be a bearer token")
	}

	return tokenString, nil
}

func isWebsocketUpgrade(header http.Header) bool {
	return strings.EqualFold(header.Get(echo.HeaderUpgrade), "websocket")
}

// GetViewer returns the identity stored by Authenticate.
func GetViewer(c echo.Context) (usecase.Viewer, bool) {
	userID, ok := c.Get(constants.ContextKeyUserID).(string)
	if !ok || userID == "" {
		return usecase.Viewer{}, false
	}
	role, ok := c.Get(constants.ContextKeyRole).(entity.Role)
	if !ok {
		return usecase.Viewer{}, false
	}

	return usecase.Viewer{UserID: userID, Role: role}, true
}
