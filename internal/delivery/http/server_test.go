package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fieldops/config"
	deliverycontext "fieldops/internal/delivery/context"
	httpmiddleware "fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/response"
	"fieldops/internal/delivery/http/router"
	"fieldops/internal/delivery/http/router/handler"
	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/service"
	mockSvc "fieldops/internal/mocks/service"
	mockUC "fieldops/internal/mocks/usecase"
	"fieldops/internal/realtime"
	"fieldops/internal/realtime/realtimetest"
	"fieldops/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serverFixtures struct {
	echo           *echo.Echo
	discountUC     *mockUC.MockDiscountUsecase
	notificationUC *mockUC.MockNotificationUsecase
	deviceUC       *mockUC.MockDeviceUsecase
	locationUC     *mockUC.MockLocationUsecase
	tokenSvc       *mockSvc.MockTokenService
	registry       *realtime.Registry
}

type envelope struct {
	Success   bool
	Code      int
	Message   string
	Data      json.RawMessage
	Error     *response.ErrorInfo
	RequestID string
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(trustGateway bool) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TrustGatewayHeaders: trustGateway},
		Realtime: &config.RealtimeConfig{
			GraceTimeout:     200 * time.Millisecond,
			PresenceDebounce: 10 * time.Millisecond,
			PingInterval:     time.Minute,
			WriteTimeout:     time.Second,
			SendBuffer:       16,
			MaxMessageBytes:  4096,
		},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"

	return cfg
}

func createTestServer(t *testing.T, cfg *config.Config) serverFixtures {
	logger := testLogger()
	registry := realtime.NewRegistry(cfg.Realtime.GraceTimeout, logger)
	presence := realtime.NewPresenceBroadcaster(registry, cfg.Realtime.PresenceDebounce, logger)
	t.Cleanup(presence.Stop)

	fx := serverFixtures{
		discountUC:     mockUC.NewMockDiscountUsecase(t),
		notificationUC: mockUC.NewMockNotificationUsecase(t),
		deviceUC:       mockUC.NewMockDeviceUsecase(t),
		locationUC:     mockUC.NewMockLocationUsecase(t),
		tokenSvc:       mockSvc.NewMockTokenService(t),
		registry:       registry,
	}

	fx.echo = NewEcho(HTTPParams{
		Config:          cfg,
		Logger:          logger,
		Registry:        registry,
		ErrorMiddleware: httpmiddleware.NewErrorMiddleware(logger),
		RouterParams: router.RouterParams{
			DiscountHandler:     handler.NewDiscountHandler(handler.DiscountHandlerParams{DiscountUC: fx.discountUC, Logger: logger}),
			NotificationHandler: handler.NewNotificationHandler(fx.notificationUC, logger),
			DeviceHandler:       handler.NewDeviceHandler(handler.DeviceHandlerParams{DeviceUC: fx.deviceUC, Logger: logger}),
			PresenceHandler:     handler.NewPresenceHandler(presence),
			RealtimeHandler: handler.NewRealtimeHandler(handler.RealtimeHandlerParams{
				Config:     cfg,
				Logger:     logger,
				Registry:   registry,
				LocationUC: fx.locationUC,
			}),
			AuthMiddleware: httpmiddleware.NewAuthMiddleware(fx.tokenSvc, cfg),
		},
	})

	return fx
}

func (fx serverFixtures) do(t *testing.T, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}

	return rec, env
}

func asAdmin(id string) map[string]string {
	return map[string]string{"X-User-Id": id, "X-User-Role": "ADMIN"}
}

func asAgent(id string) map[string]string {
	return map[string]string{"X-User-Id": id, "X-User-Role": "FIELD_AGENT"}
}

func TestHealth(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	rec, env := fx.do(t, http.MethodGet, "/health", "", map[string]string{deliverycontext.HeaderXRequestID: "req-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "req-1", env.RequestID)
	assert.Equal(t, "req-1", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestSubmitDiscount(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	requestID := uuid.New()
	fx.discountUC.EXPECT().
		SubmitRequest(mock.Anything, mock.MatchedBy(func(in *usecase.SubmitDiscountInput) bool {
			return in.RequesterID == "7" && in.ClientID == "42" && in.Percentage != nil && *in.Percentage == 12.5
		})).
		Run(func(ctx context.Context, _ *usecase.SubmitDiscountInput) {
			assert.Nil(t, ctx.Done())
		}).
		Return(&entity.DiscountRequest{ID: requestID, State: entity.DiscountStateRequested}, nil).
		Once()

	rec, env := fx.do(t, http.MethodPost, "/discounts/requests", `{"clientId":"42","percentage":12.5,"justification":"bulk order"}`, asAgent("7"))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var got entity.DiscountRequest
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, requestID, got.ID)
}

func TestSubmitDiscount_AdminForbidden(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	rec, env := fx.do(t, http.MethodPost, "/discounts/requests", `{"clientId":"42","percentage":5}`, asAdmin("1"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.CodeForbidden, env.Error.Code)
	assert.Empty(t, env.Error.Details)
}

func TestSubmitDiscount_ValidationError(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	fx.discountUC.EXPECT().
		SubmitRequest(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrValidationFailed.WithDetails("percentage must be within [0,100]")).
		Once()

	rec, env := fx.do(t, http.MethodPost, "/discounts/requests", `{"clientId":"42","percentage":120}`, asAgent("7"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.CodeValidation, env.Error.Code)
	assert.Contains(t, env.Error.Details, "percentage")
}

func TestMissingIdentity(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	rec, env := fx.do(t, http.MethodGet, "/discounts/requests/pending", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.CodeUnauthenticated, env.Error.Code)
}

func TestInvalidRoleHeader(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	rec, _ := fx.do(t, http.MethodGet, "/discounts/requests/pending", "", map[string]string{"X-User-Id": "1", "X-User-Role": "OWNER"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	fx := createTestServer(t, testConfig(false))

	fx.tokenSvc.EXPECT().ValidateToken("good").Return(&service.Claims{UserID: "a1", Role: "ADMIN"}, nil).Once()
	fx.tokenSvc.EXPECT().ValidateToken("bad").Return(nil, errors.New("expired")).Once()
	fx.discountUC.EXPECT().ListPending(mock.Anything).Return([]*entity.DiscountRequest{}, nil).Once()

	rec, _ := fx.do(t, http.MethodGet, "/discounts/requests/pending", "", map[string]string{"Authorization": "Bearer good"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = fx.do(t, http.MethodGet, "/discounts/requests/pending", "", map[string]string{"Authorization": "Bearer bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// gateway headers are ignored unless trusted
	rec, _ = fx.do(t, http.MethodGet, "/discounts/requests/pending", "", asAdmin("1"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApproveDiscount(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	requestID := uuid.New()
	grant := &entity.DiscountGrant{ID: uuid.New(), RequestID: requestID, ClientID: "42", Percentage: 10, GrantedBy: "admin-1"}

	fx.discountUC.EXPECT().
		Approve(mock.Anything, mock.MatchedBy(func(in *usecase.ApproveDiscountInput) bool {
			return in.RequestID == requestID && in.AdminID == "admin-1" && in.Percentage != nil && *in.Percentage == 10
		})).
		Return(grant, nil).
		Once()

	rec, env := fx.do(t, http.MethodPost, "/discounts/requests/"+requestID.String()+"/approve", `{"percentage":10}`, asAdmin("admin-1"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got entity.DiscountGrant
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, grant.ID, got.ID)
}

func TestApproveDiscount_Conflict(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	fx.discountUC.EXPECT().
		Approve(mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrDiscountAlreadyResolved, "approve")).
		Once()

	rec, env := fx.do(t, http.MethodPost, "/discounts/requests/"+uuid.NewString()+"/approve", "", asAdmin("admin-1"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.CodeConflict, env.Error.Code)
}

func TestRejectDiscount_InvalidID(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	rec, env := fx.do(t, http.MethodPost, "/discounts/requests/not-a-uuid/reject", "", asAdmin("admin-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.CodeValidation, env.Error.Code)
}

func TestRejectDiscount(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	requestID := uuid.New()
	fx.discountUC.EXPECT().
		Reject(mock.Anything, &usecase.RejectDiscountInput{RequestID: requestID, AdminID: "admin-1", RequesterID: "7"}).
		Return(&entity.DiscountRequest{ID: requestID, State: entity.DiscountStateRejected}, nil).
		Once()

	rec, _ := fx.do(t, http.MethodPost, "/discounts/requests/"+requestID.String()+"/reject", `{"requesterId":"7"}`, asAdmin("admin-1"))

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestListClientGrants(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	fx.discountUC.EXPECT().
		ListClientGrants(mock.Anything, "42").
		Return([]*entity.DiscountGrant{{ID: uuid.New(), ClientID: "42", Percentage: 5}}, nil).
		Once()

	rec, env := fx.do(t, http.MethodGet, "/discounts/clients/42/grants", "", asAgent("7"))

	require.Equal(t, http.StatusOK, rec.Code)
	var grants []entity.DiscountGrant
	require.NoError(t, json.Unmarshal(env.Data, &grants))
	assert.Len(t, grants, 1)
}

func TestNotifications(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	admin := usecase.Viewer{UserID: "1", Role: entity.RoleAdmin}
	notificationID := uuid.New()

	fx.notificationUC.EXPECT().
		ListInbox(mock.Anything, admin, 5).
		Return(&usecase.Inbox{Unread: 2}, nil).
		Once()
	fx.notificationUC.EXPECT().MarkRead(mock.Anything, notificationID, admin).Return(nil).Once()
	fx.notificationUC.EXPECT().ClearAll(mock.Anything, "1").Return(int64(3), nil).Once()

	rec, env := fx.do(t, http.MethodGet, "/notifications?limit=5", "", asAdmin("1"))
	require.Equal(t, http.StatusOK, rec.Code)
	var inbox usecase.Inbox
	require.NoError(t, json.Unmarshal(env.Data, &inbox))
	assert.Equal(t, int64(2), inbox.Unread)

	rec, _ = fx.do(t, http.MethodPost, "/notifications/"+notificationID.String()+"/read", "", asAdmin("1"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = fx.do(t, http.MethodDelete, "/notifications", "", asAdmin("1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cleared":3}`, string(env.Data))
}

func TestNotifications_BadLimitAndAgentClear(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	rec, _ := fx.do(t, http.MethodGet, "/notifications?limit=abc", "", asAgent("7"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = fx.do(t, http.MethodDelete, "/notifications", "", asAgent("7"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPresenceSnapshot(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	_, err := fx.registry.Register("1", entity.RoleAdmin, realtimetest.NewRecorder())
	require.NoError(t, err)
	_, err = fx.registry.Register("7", entity.RoleFieldAgent, realtimetest.NewRecorder())
	require.NoError(t, err)
	_, err = fx.registry.Register("7", entity.RoleFieldAgent, realtimetest.NewRecorder())
	require.NoError(t, err)

	rec, env := fx.do(t, http.MethodGet, "/presence", "", asAdmin("1"))

	require.Equal(t, http.StatusOK, rec.Code)
	var snapshot entity.PresenceSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snapshot))
	assert.Equal(t, entity.PresenceSnapshot{TotalConnected: 2, TotalFieldAgents: 1, TotalAdmins: 1}, snapshot)

	rec, _ = fx.do(t, http.MethodGet, "/presence", "", asAgent("7"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisterDevice(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	rec, env := fx.do(t, http.MethodPost, "/devices", `{"fcm_token":"tok","device_id":"d1","platform":"windows"}`, asAgent("7"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.CodeValidation, env.Error.Code)

	info := &usecase.DeviceInfo{FCMToken: "tok", DeviceID: "d1", Platform: "android"}
	fx.deviceUC.EXPECT().
		RegisterDevice(mock.Anything, "7", info).
		Return(&entity.UserDevice{ID: uuid.New(), UserID: "7", FCMToken: "tok", DeviceID: "d1", Platform: "android", IsActive: true}, nil).
		Once()

	rec, _ = fx.do(t, http.MethodPost, "/devices", `{"fcm_token":"tok","device_id":"d1","platform":"android"}`, asAgent("7"))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestDeactivateDevice_NotFound(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	deviceID := uuid.New()
	fx.deviceUC.EXPECT().DeactivateDevice(mock.Anything, "7", deviceID).Return(domainerrors.ErrDeviceNotFound).Once()

	rec, env := fx.do(t, http.MethodDelete, "/devices/"+deviceID.String(), "", asAgent("7"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.CodeNotFound, env.Error.Code)
}

func TestUnhandledErrorHidesDetails(t *testing.T) {
	fx := createTestServer(t, testConfig(true))

	fx.discountUC.EXPECT().ListPending(mock.Anything).Return(nil, errors.New("connection refused")).Once()

	rec, env := fx.do(t, http.MethodGet, "/discounts/requests/pending", "", asAdmin("1"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainerrors.CodeInternal, env.Error.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
