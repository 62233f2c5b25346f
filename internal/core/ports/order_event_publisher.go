package ports

import (
	"context"

	"posrelay/internal/core/domain/model/order"
)

// OrderEventKind names an order change pushed to viewers.
type OrderEventKind string

const (
	OrderCreated OrderEventKind = "order_created"
	OrderUpdated OrderEventKind = "order_updated"
)

func (k OrderEventKind) String() string {
	return string(k)
}

// OrderEventPublisher delivers order changes on a best-effort basis.
// Publish is called only after the change is committed; it must not block on slow
// consumers and reports no error, delivery failures stay inside the adapter.
type OrderEventPublisher interface {
	Publish(ctx context.Context, kind OrderEventKind, o *order.Order)
}
