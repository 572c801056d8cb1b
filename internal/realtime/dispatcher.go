package realtime

import (
	"context"
	"log/slog"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/service"
	"fieldops/internal/errors"
)

// Fanout routes events to users or roles wherever they are connected.
type Fanout interface {
	ToRole(ctx context.Context, role entity.Role, event Event)
	ToUser(ctx context.Context, userID string, event Event)
	// Online reports whether userID holds a connection on this instance.
	Online(userID string) bool
}

// Dispatcher delivers events through the cluster publisher when one is
// enabled and straight to local connections otherwise. A failed publish
// falls back to local delivery.
type Dispatcher struct {
	local     Broadcaster
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher. publisher may be nil.
func NewDispatcher(local Broadcaster, publisher service.EventPublisher, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		local:     local,
		publisher: publisher,
		logger:    logger,
	}
}

// ToRole sends event to every connection holding role.
func (d *Dispatcher) ToRole(ctx context.Context, role entity.Role, event Event) {
	if d.publish(ctx, &service.RealtimeEvent{Event: event.Name, TargetRole: role.String(), Data: event.Data}) {
		return
	}
	d.local.SendToRole(role, event)
}

// ToUser sends event to every connection opened by userID.
func (d *Dispatcher) ToUser(ctx context.Context, userID string, event Event) {
	if d.publish(ctx, &service.RealtimeEvent{Event: event.Name, TargetUserID: userID, Data: event.Data}) {
		return
	}
	d.local.SendToUser(userID, event)
}

// Online reports whether userID has a live local connection.
func (d *Dispatcher) Online(userID string) bool {
	return d.local.CountUser(userID) > 0
}

// DeliverLocal hands an event received from the cluster to local connections.
func (d *Dispatcher) DeliverLocal(msg *service.RealtimeEvent) (int, error) {
	event := Event{Name: msg.Event, Data: msg.Data}

	switch {
	case msg.TargetUserID != "":
		return d.local.SendToUser(msg.TargetUserID, event), nil
	case msg.TargetRole != "":
		role, ok := entity.ParseRole(msg.TargetRole)
		if !ok {
			return 0, errInvalidTarget(msg)
		}

		return d.local.SendToRole(role, event), nil
	default:
		return 0, errInvalidTarget(msg)
	}
}

func (d *Dispatcher) publish(ctx context.Context, msg *service.RealtimeEvent) bool {
	if d.publisher == nil || !d.publisher.Enabled() {
		return false
	}

	if err := d.publisher.PublishRealtimeEvent(ctx, msg); err != nil {
		d.logger.Warn("Cluster publish failed, delivering locally",
			slog.String("event", msg.Event),
			slog.String("code", "TRANSIENT_NETWORK"),
			slog.Any("error", err),
		)

		return false
	}

	return true
}

func errInvalidTarget(msg *service.RealtimeEvent) error {
	return errors.Errorf("event %s has no valid target (user=%q role=%q)", msg.Event, msg.TargetUserID, msg.TargetRole)
}
