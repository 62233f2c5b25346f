package commands_test

import (
	"testing"

	"posrelay/internal/core/application/usecases/commands"
	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaceOrderCommand_ValidInput(t *testing.T) {
	price, err := kernel.PriceFromString("9.90")
	require.NoError(t, err)

	cmd, err := commands.NewPlaceOrderCommand(5, []string{" Soup", "", "Bread "}, " window seat ", price)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, 5, cmd.Details().TableNumber())
	assert.Equal(t, []string{"Soup", "Bread"}, cmd.Details().Items())
	assert.Equal(t, "window seat", cmd.Details().Notes())
	assert.Equal(t, "9.90", cmd.Details().TotalPrice().String())
}

func TestNewPlaceOrderCommand_InvalidTableNumber(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(0, []string{"Soup"}, "", kernel.ZeroPrice)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewPlaceOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(3, []string{" ", ""}, "", kernel.ZeroPrice)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestPlaceOrderCommand_ZeroValue(t *testing.T) {
	var cmd commands.PlaceOrderCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrPlaceOrderCommandIsNotConstructed)
}
