package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"fieldops/config"
	"fieldops/internal/domain/constants"
	"fieldops/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEventPublisher_Noop(t *testing.T) {
	publisher, err := NewEventPublisher(PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{},
		Logger: testLogger(),
	})
	require.NoError(t, err)

	assert.False(t, publisher.Enabled())
	assert.NoError(t, publisher.PublishRealtimeEvent(context.Background(), &service.RealtimeEvent{Event: "receiveLocation"}))
}

func TestNewEventPublisher_LocalRequiresEndpoint(t *testing.T) {
	_, err := NewEventPublisher(PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}},
		Logger: testLogger(),
	})

	assert.Error(t, err)
}

func TestNewEventPublisher_UnknownProvider(t *testing.T) {
	_, err := NewEventPublisher(PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{PubSub: &config.PubSubConfig{Provider: "kafka"}},
		Logger: testLogger(),
	})

	assert.ErrorContains(t, err, "unknown pubsub provider")
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	var received PubSubPushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, testLogger())
	event := &service.RealtimeEvent{
		RequestID:  "req-1",
		Event:      "newDiscountRequest",
		TargetRole: "ADMIN",
		Data:       json.RawMessage(`{"id":"abc"}`),
	}

	require.NoError(t, publisher.PublishRealtimeEvent(context.Background(), event))
	assert.True(t, publisher.Enabled())

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "newDiscountRequest", received.Message.Attributes["event"])
	assert.Equal(t, "ADMIN", received.Message.Attributes["target_role"])
	assert.NotContains(t, received.Message.Attributes, "target_user_id")

	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.RealtimeEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, event.Event, decoded.Event)
	assert.JSONEq(t, `{"id":"abc"}`, string(decoded.Data))
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, testLogger())
	err := publisher.PublishRealtimeEvent(context.Background(), &service.RealtimeEvent{Event: "newNotification", TargetUserID: "agent-1"})

	assert.ErrorContains(t, err, "503")
}
