package commands

import (
	"errors"

	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order to another kitchen status.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand("7", "preparing")
//	if err != nil {
//	    return err // missing or unknown status
//	}
//	updated, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct {
	orderID order.ID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand validates the id and parses the status name.
// A blank status is reported as required, an unknown one as invalid.
func NewChangeOrderStatusCommand(orderID string, status string) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() order.ID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID string) error {
	id, err := order.NewID(orderID)
	if err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ChangeOrderStatusCommand) setStatus(status string) error {
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = parsed
	return nil
}
