package client

import (
	"testing"

	"fieldops/internal/realtime"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishAndUnsubscribe(t *testing.T) {
	bus := NewBus(testLogger())

	var first, second []string
	unsubscribe := bus.Subscribe("newNotification", func(ev realtime.Event) {
		first = append(first, string(ev.Data))
	})
	bus.Subscribe("newNotification", func(ev realtime.Event) {
		second = append(second, string(ev.Data))
	})

	assert.Equal(t, 2, bus.Publish(realtime.Event{Name: "newNotification", Data: []byte(`1`)}))
	assert.Equal(t, 0, bus.Publish(realtime.Event{Name: "receiveLocation", Data: []byte(`2`)}))

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 1, bus.Publish(realtime.Event{Name: "newNotification", Data: []byte(`3`)}))

	assert.Equal(t, []string{"1"}, first)
	assert.Equal(t, []string{"1", "3"}, second)
}

func TestBus_SubscribersGetCopies(t *testing.T) {
	bus := NewBus(testLogger())

	bus.Subscribe("x", func(ev realtime.Event) {
		ev.Data[0] = 'X'
	})
	var seen string
	bus.Subscribe("x", func(ev realtime.Event) {
		seen = string(ev.Data)
	})

	data := []byte(`"a"`)
	bus.Publish(realtime.Event{Name: "x", Data: data})

	assert.Equal(t, `"a"`, seen)
	assert.Equal(t, `"a"`, string(data))
}
