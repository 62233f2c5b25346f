package commands

import (
	"errors"

	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a waiter submitting an order for a table.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(5, []string{"Soup", "Bread"}, "", kernel.ZeroPrice)
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct {
	details order.Details

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand trims the items and notes, drops blank items and validates
// the table number and item count.
func NewPlaceOrderCommand(
	tableNumber int,
	items []string,
	notes string,
	totalPrice kernel.Price,
) (PlaceOrderCommand, error) {
	details, err := order.NewDetails(tableNumber, items, notes, totalPrice)
	if err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// Details returns the normalized order fields.
func (c PlaceOrderCommand) Details() order.Details {
	return c.details
}
