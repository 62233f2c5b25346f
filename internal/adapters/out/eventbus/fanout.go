// Package eventbus composes order event publishers.
//
// Fanout forwards every event to a fixed list of publishers in registration
// order. Relay turns a broker Sender into a publisher that never blocks the
// caller: events are queued and sent by a background worker, and dropped with
// a warning when the queue is full.
package eventbus

import (
	"context"

	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/core/ports"
)

// Fanout publishes each event to all of its publishers.
type Fanout struct {
	publishers []ports.OrderEventPublisher
}

// NewFanout skips nil publishers.
func NewFanout(publishers ...ports.OrderEventPublisher) *Fanout {
	f := &Fanout{publishers: make([]ports.OrderEventPublisher, 0, len(publishers))}
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, kind ports.OrderEventKind, o *order.Order) {
	for _, p := range f.publishers {
		p.Publish(ctx, kind, o)
	}
}

// Len returns the number of publishers.
func (f *Fanout) Len() int {
	return len(f.publishers)
}
