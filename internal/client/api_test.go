package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_SubmitDiscount(t *testing.T) {
	requestID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/discounts/requests", r.URL.Path)
		assert.Equal(t, "7", r.Header.Get("X-User-Id"))
		assert.Equal(t, "FIELD_AGENT", r.Header.Get("X-User-Role"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "42", body["clientId"])
		assert.InDelta(t, 15, body["percentage"], 0.001)
		assert.NotContains(t, body, "RequesterID")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"code":201,"message":"ok","data":{"id":"` + requestID.String() + `","state":"REQUESTED","percentage":15}}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL+"/", agent, time.Second)
	got, err := api.SubmitDiscount(context.Background(), "42", 15, "bulk")

	require.NoError(t, err)
	assert.Equal(t, requestID, got.ID)
	assert.Equal(t, entity.DiscountStateRequested, got.State)
}

func TestAPI_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":false,"code":403,"message":"Forbidden","error":{"code":"FORBIDDEN"}}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, agent, time.Second)
	_, err := api.PendingRequests(context.Background())

	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
}

func TestAPI_Inbox(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"success":true,"code":200,"data":{"notifications":[{"id":"` + uuid.NewString() + `","message":"hi"}],"unread":1}}`))
	}))
	defer srv.Close()

	inbox, err := NewAPI(srv.URL, agent, time.Second).Inbox(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, int64(1), inbox.Unread)
	require.Len(t, inbox.Notifications, 1)
	assert.Equal(t, "hi", inbox.Notifications[0].Message)
}

func TestAPI_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewAPI(srv.URL, agent, time.Second).PendingRequests(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrTransientNetwork)
}

func TestAPI_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t0k", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"code":200,"data":[]}`))
	}))
	defer srv.Close()

	withToken := Identity{UserID: "1", Role: entity.RoleAdmin, Token: "t0k"}
	_, err := NewAPI(srv.URL, withToken, time.Second).PendingRequests(context.Background())

	require.NoError(t, err)
}
