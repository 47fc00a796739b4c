// Package events fans order lifecycle notifications out to Kafka and to the
// admin WebSocket feed.
package events

import (
	"context"
	"log"
	"time"

	"storefront/models"
)

const (
	TopicOrderCreated       = "order-created"
	TopicOrderStatusUpdated = "order-status-updated"
)

type Event struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
	At    time.Time    `json:"at"`
}

func OrderCreated(o models.Order) Event {
	return Event{Type: TopicOrderCreated, Order: o, At: time.Now()}
}

func OrderStatusUpdated(o models.Order) Event {
	return Event{Type: TopicOrderStatusUpdated, Order: o, At: time.Now()}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Fanout delivers to every publisher. Failures are logged and never fail the
// request that produced the event.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			log.Printf("Failed to publish %s for order %s: %v", e.Type, e.Order.ID.Hex(), err)
		}
	}
	return nil
}
