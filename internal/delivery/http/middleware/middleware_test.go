package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"fieldops/config"
	"fieldops/internal/delivery/http/response"
	"fieldops/internal/domain/constants"
	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/service"
	"fieldops/internal/errors"
	mockSvc "fieldops/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(method, target string, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestHandleHTTPError(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails string
	}{
		{
			name:        "wrapped domain error keeps details",
			err:         errors.Wrap(domainerrors.ErrDiscountAlreadyResolved.WithDetails("already APPROVED"), "approve"),
			wantStatus:  http.StatusConflict,
			wantCode:    domainerrors.CodeConflict,
			wantDetails: "already APPROVED",
		},
		{
			name:       "auth failure hides details",
			err:        domainerrors.ErrUnauthenticated.WithDetails("invalid or expired token"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   domainerrors.CodeUnauthenticated,
		},
		{
			name:       "echo error",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:       "unknown error",
			err:        errors.New("pq: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   domainerrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/", nil)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantDetails, resp.Error.Details)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestAuthenticate_GatewayHeaders(t *testing.T) {
	m := NewAuthMiddleware(nil, &config.Config{Auth: &config.AuthConfig{TrustGatewayHeaders: true}})

	c, _ := newTestContext(http.MethodGet, "/", map[string]string{
		constants.HeaderUserID:   "agent-1",
		constants.HeaderUserRole: "field_agent",
	})

	var called bool
	err := m.Authenticate(func(c echo.Context) error {
		called = true
		viewer, ok := GetViewer(c)
		require.True(t, ok)
		assert.Equal(t, "agent-1", viewer.UserID)
		assert.Equal(t, entity.RoleFieldAgent, viewer.Role)

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthenticate_BearerWithoutTokenService(t *testing.T) {
	m := NewAuthMiddleware(nil, &config.Config{})

	c, _ := newTestContext(http.MethodGet, "/", map[string]string{echo.HeaderAuthorization: "Bearer abc"})

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestAuthenticate_RejectsTokenWithoutRole(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken("abc").Return(&service.Claims{UserID: "u1"}, nil).Once()
	m := NewAuthMiddleware(tokenSvc, &config.Config{})

	c, _ := newTestContext(http.MethodGet, "/", map[string]string{echo.HeaderAuthorization: "Bearer abc"})

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestRequireRole(t *testing.T) {
	m := NewAuthMiddleware(nil, &config.Config{})
	next := func(echo.Context) error { return nil }

	c, _ := newTestContext(http.MethodGet, "/", nil)
	assert.ErrorIs(t, m.RequireRole(entity.RoleAdmin)(next)(c), domainerrors.ErrUnauthenticated)

	c.Set(constants.ContextKeyUserID, "agent-1")
	c.Set(constants.ContextKeyRole, entity.RoleFieldAgent)
	assert.ErrorIs(t, m.RequireRole(entity.RoleAdmin)(next)(c), domainerrors.ErrForbidden)
	assert.NoError(t, m.RequireRole(entity.RoleFieldAgent)(next)(c))
}

func TestAuthenticate_QueryTokenOnlyOnUpgrade(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken("abc").Return(&service.Claims{UserID: "u1", Role: "ADMIN"}, nil).Once()
	m := NewAuthMiddleware(tokenSvc, &config.Config{})

	c, _ := newTestContext(http.MethodGet, "/ws?token=abc", map[string]string{
		echo.HeaderUpgrade:    "websocket",
		echo.HeaderConnection: "Upgrade",
	})
	var viewerOK bool
	err := m.Authenticate(func(c echo.Context) error {
		viewer, ok := GetViewer(c)
		viewerOK = ok && viewer.UserID == "u1" && viewer.Role == entity.RoleAdmin

		return nil
	})(c)
	require.NoError(t, err)
	assert.True(t, viewerOK)

	c, _ = newTestContext(http.MethodGet, "/notifications?token=abc", nil)
	err = m.Authenticate(func(echo.Context) error { return nil })(c)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}
