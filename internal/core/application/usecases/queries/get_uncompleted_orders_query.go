package queries

import (
	"errors"

	"posrelay/internal/pkg/guard"
)

var (
	ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
		"GetUncompletedOrdersQuery must be created via NewGetUncompletedOrdersQuery constructor",
	)
)

// GetUncompletedOrdersQuery retrieves the orders the kitchen still has to finish.
// Returns orders in "new" or "preparing" status.
//
// Example:
//
//	query := NewGetUncompletedOrdersQuery()
//	handler := NewGetUncompletedOrdersQueryHandler(repo)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open orders: %w", err)
//	}
//
//	fmt.Printf("%d orders in the kitchen\n", len(orders))
type GetUncompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUncompletedOrdersQuery creates a query to retrieve open orders.
func NewGetUncompletedOrdersQuery() GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUncompletedOrdersQueryIsNotConstructed if validation fails.
func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}
