// Package realtime holds the in-process connection registry and the
// fan-out primitives built on it.
package realtime

import (
	"encoding/json"

	"fieldops/internal/errors"
)

// Event names on the realtime channel.
const (
	EventSendLocation            = "sendLocation"
	EventReceiveLocation         = "receiveLocation"
	EventUpdateConnectedUsers    = "updateConnectedUsers"
	EventNewDiscountRequest      = "newDiscountRequest"
	EventDiscountRequestResolved = "discountRequestResolved"
	EventNewNotificationToAgent  = "newNotificationToAgent"
	EventNewNotification         = "newNotification"
	EventError                   = "error"
)

// Event is the wire envelope: {"event": name, "data": {...}}.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEvent marshals data into an envelope.
func NewEvent(name string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, errors.Wrapf(err, "marshal %s payload", name)
	}

	return Event{Name: name, Data: raw}, nil
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	if len(e.Data) == 0 {
		return errors.Errorf("event %s has no payload", e.Name)
	}

	return errors.Wrapf(json.Unmarshal(e.Data, v), "decode %s payload", e.Name)
}

// ErrorPayload is the data of an error event sent back to a connection.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	// Event names the inbound event that failed, when known.
	Event string `json:"event,omitempty"`
}
