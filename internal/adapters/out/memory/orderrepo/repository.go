// Package orderrepo keeps orders in process memory. It is the default store when no
// database is configured. Ids are sequential strings starting at "1" and orders are
// never deleted.
package orderrepo

import (
	"context"
	"strconv"
	"sync"
	"time"

	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/pkg/errs"
)

// MemoryOrderRepository implements ports.OrderRepository behind a single RWMutex.
// Every mutation runs alone, reads may run in parallel, and nothing outside the
// repository ever holds a pointer to a stored order.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []*order.Order
	byID   map[order.ID]*order.Order
	lastID uint64
	now    func() time.Time
}

// Option customizes the repository.
type Option func(*MemoryOrderRepository)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *MemoryOrderRepository) {
		r.now = now
	}
}

func NewMemoryOrderRepository(opts ...Option) *MemoryOrderRepository {
	r := &MemoryOrderRepository{
		byID: make(map[order.ID]*order.Order),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create stores a new order in New status under the next sequential id.
func (r *MemoryOrderRepository) Create(ctx context.Context, details order.Details) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("create order", err)
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := order.ID(strconv.FormatUint(r.lastID+1, 10))
	created, err := order.NewOrder(id, details, r.now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return nil, err
	}

	r.lastID++
	r.orders = append(r.orders, created)
	r.byID[id] = created
	return created.Clone(), nil
}

func (r *MemoryOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("get order", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o.Clone(), nil
}

// List walks insertion order backwards, which is most-recent-first since ids and
// timestamps are assigned under the same lock.
func (r *MemoryOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("list orders", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*order.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		orders = append(orders, r.orders[i].Clone())
	}
	return orders, nil
}

func (r *MemoryOrderRepository) SetStatus(ctx context.Context, id order.ID, status order.Status) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("set order status", err)
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	if err := o.ChangeStatus(status); err != nil {
		return nil, err
	}
	return o.Clone(), nil
}

// Len returns the number of stored orders.
func (r *MemoryOrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
