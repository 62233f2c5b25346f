package commands_test

import (
	"context"
	"errors"
	"testing"

	"posrelay/internal/core/application/usecases/commands"
	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/core/ports"
	"posrelay/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewPlaceOrderCommand(5, []string{"Soup", "Bread"}, "", kernel.ZeroPrice)
	require.NoError(t, err)
	created := newTestOrder(t, "1", order.New, "Soup", "Bread")

	repo := new(MockOrderRepository)
	publisher := new(MockOrderEventPublisher)
	var published *order.Order
	mock.InOrder(
		repo.On("Create", ctx, cmd.Details()).Return(created, nil).Once(),
		publisher.On("Publish", ctx, ports.OrderCreated, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { published = args.Get(2).(*order.Order) }).
			Return().Once(),
	)

	h := commands.NewPlaceOrderCommandHandler(repo, publisher)
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, created, got)
	require.NotNil(t, published)
	assert.Equal(t, got, published)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	repo := new(MockOrderRepository)
	publisher := new(MockOrderEventPublisher)

	h := commands.NewPlaceOrderCommandHandler(repo, publisher)
	_, err := h.Handle(context.Background(), commands.PlaceOrderCommand{})

	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_StorageError(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewPlaceOrderCommand(5, []string{"Soup"}, "", kernel.ZeroPrice)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Create", ctx, cmd.Details()).
		Return(nil, errs.NewStorageError("create order", errors.New("disk full"))).Once()
	publisher := new(MockOrderEventPublisher)

	h := commands.NewPlaceOrderCommandHandler(repo, publisher)
	got, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStorage)
	assert.Nil(t, got)
	repo.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
