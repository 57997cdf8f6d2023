// Package events publishes order lifecycle events for back-office
// consumers (fulfilment, notifications). The order store stays the source
// of truth; events are a best-effort feed.
package events

import "time"

const (
	OrderCreatedQueue       = "order.created"
	OrderStatusChangedQueue = "order.status_changed"
)

type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type OrderCreated struct {
	EventType string      `json:"eventType"`
	EventID   string      `json:"eventId"`
	OrderID   string      `json:"orderId"`
	Email     string      `json:"email"`
	Lines     []OrderLine `json:"lines"`
	Total     float64     `json:"total"`
	Timestamp time.Time   `json:"timestamp"`
}

type OrderStatusChanged struct {
	EventType string    `json:"eventType"`
	EventID   string    `json:"eventId"`
	OrderID   string    `json:"orderId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}
