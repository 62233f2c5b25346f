package queries

import (
	"context"

	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/core/ports"
)

// GetOrderQueryHandler reads one order from the store.
type GetOrderQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetOrderQueryHandler(repo ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{repo: repo}
}

// Handle returns errs.ObjectNotFoundError for unknown ids.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.repo.Get(ctx, query.OrderID())
}
