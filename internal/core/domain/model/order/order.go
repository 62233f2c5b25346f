package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/pkg/errs"
	"posrelay/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDetailsAreNotConstructed is returned for a zero-value Details.
	ErrDetailsAreNotConstructed = errors.New("Details must be created via NewDetails constructor")
)

// ID is the opaque order identifier assigned by the store.
type ID string

// NewID validates an identifier received from a caller.
func NewID(s string) (ID, error) {
	id := strings.TrimSpace(s)
	if id == "" {
		return "", errs.NewValueIsRequiredError("id")
	}
	return ID(id), nil
}

func (id ID) String() string {
	return string(id)
}

// Details holds what the waiter submitted. It is immutable once the order exists.
type Details struct {
	tableNumber int
	items       []string
	notes       string
	totalPrice  kernel.Price

	guard guard.ConstructorGuard
}

// NewDetails normalizes and validates the submitted fields.
//
// Items are trimmed and blank entries are dropped before the "at least one item"
// rule is checked. Notes are trimmed.
//
// Returns a joined error listing every rule that failed:
//   - ValueIsInvalidError when tableNumber is not greater than 0
//   - ValueIsRequiredError when no item is left after normalization
func NewDetails(tableNumber int, items []string, notes string, totalPrice kernel.Price) (Details, error) {
	d := Details{
		notes:      strings.TrimSpace(notes),
		totalPrice: totalPrice,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setTableNumber(tableNumber),
		d.setItems(items),
	); err != nil {
		return Details{}, err
	}

	return d, nil
}

// Validate ensures the Details were built by NewDetails.
func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsAreNotConstructed)
}

func (d Details) TableNumber() int {
	return d.tableNumber
}

// Items returns a copy of the ordered item list.
func (d Details) Items() []string {
	return slices.Clone(d.items)
}

func (d Details) Notes() string {
	return d.notes
}

func (d Details) TotalPrice() kernel.Price {
	return d.totalPrice
}

func (d *Details) setTableNumber(tableNumber int) error {
	if tableNumber <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"tableNumber",
			fmt.Errorf("%d is not greater than 0", tableNumber),
		)
	}
	d.tableNumber = tableNumber
	return nil
}

func (d *Details) setItems(items []string) error {
	normalized := NormalizeItems(items)
	if len(normalized) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("order must include at least one item"))
	}
	d.items = normalized
	return nil
}

// NormalizeItems trims every entry and drops the blank ones, preserving order.
func NormalizeItems(items []string) []string {
	normalized := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return normalized
}

// Order is one table's submitted order. It is the aggregate root of the relay.
//
// Order follows these invariants:
//   - id, details and createdAt never change after construction
//   - status is always one of New, Preparing, Ready
//   - a freshly created order is New
type Order struct {
	id        ID
	details   Details
	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewOrder creates an order in New status. The store calls it once it has picked an id.
//
// Example:
//
//	details, err := order.NewDetails(5, []string{"Soup", "Bread"}, "", kernel.ZeroPrice)
//	if err != nil {
//	    return nil, err
//	}
//	o, err := order.NewOrder("1", details, time.Now())
func NewOrder(id ID, details Details, createdAt time.Time) (*Order, error) {
	return RestoreOrder(id, details, New, createdAt)
}

// RestoreOrder rebuilds an order read back from storage.
func RestoreOrder(id ID, details Details, status Status, createdAt time.Time) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDetails(details),
		o.setStatus(status),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() ID {
	return o.id
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) TableNumber() int {
	return o.details.TableNumber()
}

// Items returns a copy of the ordered item list.
func (o *Order) Items() []string {
	return o.details.Items()
}

func (o *Order) Notes() string {
	return o.details.Notes()
}

func (o *Order) TotalPrice() kernel.Price {
	return o.details.TotalPrice()
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ChangeStatus replaces the status. The previous status is not consulted beyond
// ValidateTransition, so concurrent changes resolve as last write wins.
func (o *Order) ChangeStatus(next Status) error {
	if err := o.status.ValidateTransition(next); err != nil {
		return err
	}
	o.status = next
	return nil
}

// Clone returns a deep copy that shares no mutable state with o.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.details.items = slices.Clone(o.details.items)
	return &cp
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) setID(id ID) error {
	if strings.TrimSpace(string(id)) == "" {
		return errs.NewValueIsRequiredError("id")
	}
	o.id = id
	return nil
}

func (o *Order) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt.UTC()
	return nil
}
