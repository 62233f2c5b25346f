package commands

import (
	"context"

	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/core/ports"
)

// ChangeOrderStatusCommandHandler replaces an order's status and announces it as order_updated.
type ChangeOrderStatusCommandHandler struct {
	repo      ports.OrderRepository
	publisher ports.OrderEventPublisher
}

// NewChangeOrderStatusCommandHandler creates a handler for kitchen status changes.
func NewChangeOrderStatusCommandHandler(
	repo ports.OrderRepository,
	publisher ports.OrderEventPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		repo:      repo,
		publisher: publisher,
	}
}

// Handle commits the new status and then publishes exactly one order_updated event
// carrying the returned order. Unknown ids and store failures publish nothing.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updated, err := h.repo.SetStatus(ctx, cmd.OrderID(), cmd.Status())
	if err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, ports.OrderUpdated, updated.Clone())
	return updated, nil
}
