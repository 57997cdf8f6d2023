package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/prodavnica/storefront/internal/order"
)

// Publisher emits order events on the default exchange, one durable queue
// per event type.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare queues up front so publish never fails on missing infra.
	for _, q := range []string{OrderCreatedQueue, OrderStatusChangedQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare %s: %w", q, err)
		}
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	ev := OrderCreated{
		EventType: "OrderCreated",
		EventID:   uuid.NewString(),
		OrderID:   o.ID,
		Email:     o.Email,
		Total:     o.Total,
		Timestamp: time.Now().UTC(),
	}
	for _, ln := range o.Cart {
		ev.Lines = append(ev.Lines, OrderLine{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			UnitPrice: ln.UnitPrice,
			Quantity:  ln.Quantity,
		})
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderCreated: %w", err)
	}
	return p.publishJSON(ctx, OrderCreatedQueue, body)
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, tr *order.Transition) error {
	ev := OrderStatusChanged{
		EventType: "OrderStatusChanged",
		EventID:   uuid.NewString(),
		OrderID:   tr.OrderID,
		From:      string(tr.From),
		To:        string(tr.To),
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderStatusChanged: %w", err)
	}
	return p.publishJSON(ctx, OrderStatusChangedQueue, body)
}

func (p *Publisher) publishJSON(ctx context.Context, queue string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",    // default exchange
		queue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
