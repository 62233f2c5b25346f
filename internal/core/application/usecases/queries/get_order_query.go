package queries

import (
	"errors"

	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order by id.
type GetOrderQuery struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery validates that an id was supplied.
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	id, err := order.NewID(orderID)
	if err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() order.ID {
	return q.orderID
}
