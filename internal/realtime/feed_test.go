package realtime

import (
	"testing"
	"time"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, events <-chan OrderEvent) OrderEvent {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return OrderEvent{}
	}
}

func TestFeed_SubscribeReceivesPublished(t *testing.T) {
	feed := NewFeed()
	t.Cleanup(feed.Close)

	events := make(chan OrderEvent, 1)
	unsubscribe := feed.Subscribe(func(event OrderEvent) {
		events <- event
	})
	t.Cleanup(unsubscribe)

	feed.Publish(OrderEvent{Type: EventInsert, Order: &model.Order{OrderNumber: "ORD-1"}})

	event := waitForEvent(t, events)
	assert.Equal(t, EventInsert, event.Type)
	assert.Equal(t, "ORD-1", event.Order.OrderNumber)
}

func TestFeed_MultipleSubscribers(t *testing.T) {
	feed := NewFeed()
	t.Cleanup(feed.Close)

	first := make(chan OrderEvent, 1)
	second := make(chan OrderEvent, 1)
	t.Cleanup(feed.Subscribe(func(event OrderEvent) { first <- event }))
	t.Cleanup(feed.Subscribe(func(event OrderEvent) { second <- event }))

	feed.Publish(OrderEvent{Type: EventUpdate, Order: &model.Order{OrderNumber: "ORD-2"}})

	assert.Equal(t, "ORD-2", waitForEvent(t, first).Order.OrderNumber)
	assert.Equal(t, "ORD-2", waitForEvent(t, second).Order.OrderNumber)
}

func TestFeed_UnsubscribeStopsDelivery(t *testing.T) {
	feed := NewFeed()
	t.Cleanup(feed.Close)

	events := make(chan OrderEvent, 4)
	unsubscribe := feed.Subscribe(func(event OrderEvent) {
		events <- event
	})

	feed.Publish(OrderEvent{Type: EventInsert, Order: &model.Order{OrderNumber: "ORD-3"}})
	waitForEvent(t, events)

	unsubscribe()
	// Second call is a no-op
	unsubscribe()

	feed.Publish(OrderEvent{Type: EventInsert, Order: &model.Order{OrderNumber: "ORD-4"}})

	select {
	case event := <-events:
		t.Fatalf("received event after unsubscribe: %v", event.Order.OrderNumber)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFeed_PublishAfterClose(t *testing.T) {
	feed := NewFeed()

	received := make(chan OrderEvent, 1)
	feed.Subscribe(func(event OrderEvent) { received <- event })

	feed.Close()
	// Idempotent
	feed.Close()

	feed.Publish(OrderEvent{Type: EventInsert, Order: &model.Order{OrderNumber: "ORD-5"}})

	select {
	case <-received:
		t.Fatal("received event after close")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFeed_SubscribeAfterClose(t *testing.T) {
	feed := NewFeed()
	feed.Close()

	unsubscribe := feed.Subscribe(func(OrderEvent) {})
	require.NotNil(t, unsubscribe)
	unsubscribe()
}
