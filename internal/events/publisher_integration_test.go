package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodavnica/storefront/internal/order"
	"github.com/prodavnica/storefront/internal/testutil"
)

// Requires docker; skipped with -short.
func TestPublisherRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test, requires docker")
	}

	conn := testutil.StartRabbitMQ(t)

	pub, err := NewPublisher(conn)
	require.NoError(t, err)
	defer pub.Close()

	o := &order.Order{
		ID:     "order-1",
		Email:  "kupac@example.com",
		Status: order.StatusReceived,
		Total:  13_000,
		Cart: []order.Line{
			{ProductID: "a", Name: "Pumpa A", UnitPrice: 5_000, Quantity: 2},
			{ProductID: "b", Name: "Ventil B", UnitPrice: 3_000, Quantity: 1},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, pub.PublishOrderCreated(ctx, o))

	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	deliveries, err := ch.Consume(OrderCreatedQueue, "", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		var ev OrderCreated
		require.NoError(t, json.Unmarshal(d.Body, &ev))
		assert.Equal(t, "OrderCreated", ev.EventType)
		assert.Equal(t, "order-1", ev.OrderID)
		assert.Equal(t, 13_000.0, ev.Total)
		assert.Len(t, ev.Lines, 2)
		assert.NotEmpty(t, ev.EventID)
	case <-ctx.Done():
		t.Fatal("timed out waiting for order.created delivery")
	}
}
