package order_test

import (
	"fmt"
	"testing"

	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.New))
	assert.Equal(t, 2, int(order.Preparing))
	assert.Equal(t, 3, int(order.Ready))
	assert.Equal(t, []order.Status{order.New, order.Preparing, order.Ready}, order.Statuses())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "new", order.New.String())
	assert.Equal(t, "preparing", order.Preparing.String())
	assert.Equal(t, "ready", order.Ready.String())
	assert.Equal(t, "unknown", order.Unknown.String())
	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse every valid status", func(t *testing.T) {
		for _, want := range order.Statuses() {
			got, err := order.ParseStatus(want.String())

			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should ignore surrounding whitespace", func(t *testing.T) {
		got, err := order.ParseStatus("  ready\n")

		require.NoError(t, err)
		assert.Equal(t, order.Ready, got)
	})

	t.Run("should require a value", func(t *testing.T) {
		_, err := order.ParseStatus("   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject free text statuses", func(t *testing.T) {
		for _, input := range []string{"served", "READY", "unknown", "new!"} {
			_, err := order.ParseStatus(input)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, input)
			assert.Contains(t, err.Error(), "new, preparing, ready")
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.Statuses() {
		require.NoError(t, s.Validate())
	}

	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_ValidateTransition(t *testing.T) {
	t.Run("should allow every pair of valid statuses", func(t *testing.T) {
		for _, from := range order.Statuses() {
			for _, to := range order.Statuses() {
				t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
					require.NoError(t, from.ValidateTransition(to))
				})
			}
		}
	})

	t.Run("should reject invalid target", func(t *testing.T) {
		require.ErrorIs(t, order.Ready.ValidateTransition(order.Unknown), errs.ErrValueIsInvalid)
	})

	t.Run("should reject invalid source", func(t *testing.T) {
		require.ErrorIs(t, order.Unknown.ValidateTransition(order.New), errs.ErrValueIsInvalid)
	})
}
