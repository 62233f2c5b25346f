// Package ports defines the contracts between the order relay core and its adapters.
package ports

import (
	"context"

	"posrelay/internal/core/domain/model/order"
)

// OrderRepository is the canonical order store and the only writer of order state.
// Implementations serialize mutations and return copies, so a returned order never
// changes under the caller.
type OrderRepository interface {
	// Create assigns a fresh unique id, stamps createdAt and stores the order in
	// New status. Details must come from order.NewDetails.
	Create(ctx context.Context, details order.Details) (*order.Order, error)

	// Get returns the order or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// List returns every order, most recent first.
	List(ctx context.Context) ([]*order.Order, error)

	// SetStatus replaces the status of an order and returns the updated order.
	// Returns errs.ObjectNotFoundError for unknown ids and errs.ValueIsInvalidError
	// for statuses outside the valid set.
	SetStatus(ctx context.Context, id order.ID, status order.Status) (*order.Order, error)
}
