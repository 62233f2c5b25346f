package sse

import (
	"context"

	"posrelay/internal/adapters/wire"
	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/core/ports"
)

// OrderEventPublisher adapts the Broadcaster to ports.OrderEventPublisher.
type OrderEventPublisher struct {
	broadcaster *Broadcaster
}

func NewOrderEventPublisher(broadcaster *Broadcaster) *OrderEventPublisher {
	return &OrderEventPublisher{broadcaster: broadcaster}
}

// Publish sends the order under the event name of kind.
func (p *OrderEventPublisher) Publish(_ context.Context, kind ports.OrderEventKind, o *order.Order) {
	p.broadcaster.Publish(string(kind), wire.Order(o))
}
