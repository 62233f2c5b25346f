package commands_test

import (
	"context"
	"testing"
	"time"

	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, details order.Details) (*order.Order, error) {
	args := m.Called(ctx, details)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) SetStatus(ctx context.Context, id order.ID, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) Publish(ctx context.Context, kind ports.OrderEventKind, o *order.Order) {
	m.Called(ctx, kind, o)
}

func newTestOrder(t *testing.T, id order.ID, status order.Status, items ...string) *order.Order {
	t.Helper()
	details, err := order.NewDetails(5, items, "", kernel.ZeroPrice)
	require.NoError(t, err)
	o, err := order.RestoreOrder(id, details, status, time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}
