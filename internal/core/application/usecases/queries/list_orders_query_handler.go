package queries

import (
	"context"

	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/core/ports"
)

// ListOrdersQueryHandler reads the current order board, most recent order first.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(repo)
//	orders, err := handler.Handle(ctx, NewListOrdersQuery())
type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewListOrdersQueryHandler(repo ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{repo: repo}
}

// Handle never returns a nil slice on success, so an empty board encodes as [].
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = make([]*order.Order, 0)
	}
	return orders, nil
}
