package realtime_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/service"
	mockService "fieldops/internal/mocks/service"
	"fieldops/internal/realtime"
	"fieldops/internal/realtime/realtimetest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_LocalWhenPublisherDisabled(t *testing.T) {
	registry := realtime.NewRegistry(time.Minute, testLogger())
	admin := realtimetest.NewRecorder()
	_, err := registry.Register("admin-1", entity.RoleAdmin, admin)
	require.NoError(t, err)

	dispatcher := realtime.NewDispatcher(registry, nil, testLogger())
	dispatcher.ToRole(context.Background(), entity.RoleAdmin, realtime.Event{Name: realtime.EventNewDiscountRequest})

	assert.Len(t, admin.Named(realtime.EventNewDiscountRequest), 1)
	assert.True(t, dispatcher.Online("admin-1"))
	assert.False(t, dispatcher.Online("agent-1"))
}

func TestDispatcher_PublishesWhenEnabled(t *testing.T) {
	registry := realtime.NewRegistry(time.Minute, testLogger())
	agent := realtimetest.NewRecorder()
	_, err := registry.Register("agent-1", entity.RoleFieldAgent, agent)
	require.NoError(t, err)

	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().Enabled().Return(true)
	publisher.EXPECT().
		PublishRealtimeEvent(mock.Anything, mock.MatchedBy(func(msg *service.RealtimeEvent) bool {
			return msg.TargetUserID == "agent-1" && msg.Event == realtime.EventNewNotificationToAgent
		})).
		Return(nil)

	dispatcher := realtime.NewDispatcher(registry, publisher, testLogger())
	dispatcher.ToUser(context.Background(), "agent-1", realtime.Event{Name: realtime.EventNewNotificationToAgent})

	assert.Empty(t, agent.Events(), "published events arrive through the push endpoint")
}

func TestDispatcher_FallsBackWhenPublishFails(t *testing.T) {
	registry := realtime.NewRegistry(time.Minute, testLogger())
	agent := realtimetest.NewRecorder()
	_, err := registry.Register("agent-1", entity.RoleFieldAgent, agent)
	require.NoError(t, err)

	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().Enabled().Return(true)
	publisher.EXPECT().PublishRealtimeEvent(mock.Anything, mock.Anything).Return(errors.New("unavailable"))

	dispatcher := realtime.NewDispatcher(registry, publisher, testLogger())
	dispatcher.ToUser(context.Background(), "agent-1", realtime.Event{Name: realtime.EventNewNotificationToAgent})

	assert.Len(t, agent.Events(), 1)
}

func TestDispatcher_DeliverLocal(t *testing.T) {
	registry := realtime.NewRegistry(time.Minute, testLogger())
	admin := realtimetest.NewRecorder()
	_, err := registry.Register("admin-1", entity.RoleAdmin, admin)
	require.NoError(t, err)
	dispatcher := realtime.NewDispatcher(registry, nil, testLogger())

	delivered, err := dispatcher.DeliverLocal(&service.RealtimeEvent{
		Event:      realtime.EventDiscountRequestResolved,
		TargetRole: "ADMIN",
		Data:       json.RawMessage(`{"requestId":"r1"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)

	_, err = dispatcher.DeliverLocal(&service.RealtimeEvent{Event: "x"})
	assert.Error(t, err)
	_, err = dispatcher.DeliverLocal(&service.RealtimeEvent{Event: "x", TargetRole: "GUEST"})
	assert.Error(t, err)
}
