package queries

import (
	"context"

	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/core/ports"
)

// GetUncompletedOrdersQueryHandler filters the order board down to orders that
// are not ready yet, keeping the store's most-recent-first order.
type GetUncompletedOrdersQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetUncompletedOrdersQueryHandler creates a handler for open order queries.
func NewGetUncompletedOrdersQueryHandler(repo ports.OrderRepository) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{repo: repo}
}

// Handle executes the query to retrieve all uncompleted orders.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(all))
	for _, o := range all {
		if o.Status() != order.Ready {
			orders = append(orders, o)
		}
	}
	return orders, nil
}
