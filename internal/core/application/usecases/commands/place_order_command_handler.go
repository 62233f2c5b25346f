package commands

import (
	"context"

	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/core/ports"
)

// PlaceOrderCommandHandler stores a new order and announces it as order_created.
type PlaceOrderCommandHandler struct {
	repo      ports.OrderRepository
	publisher ports.OrderEventPublisher
}

// NewPlaceOrderCommandHandler creates a handler for order submission.
func NewPlaceOrderCommandHandler(
	repo ports.OrderRepository,
	publisher ports.OrderEventPublisher,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		repo:      repo,
		publisher: publisher,
	}
}

// Handle stores the order and, once the store has accepted it, publishes exactly one
// order_created event whose payload is the returned order. Failures publish nothing.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := h.repo.Create(ctx, cmd.Details())
	if err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, ports.OrderCreated, created.Clone())
	return created, nil
}
