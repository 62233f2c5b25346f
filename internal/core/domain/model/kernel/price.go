package kernel

import (
	"fmt"

	"posrelay/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Price is a non-negative monetary amount rounded to cents.
// The zero value is a valid price of 0.
type Price struct {
	amount decimal.Decimal
}

// ZeroPrice is used when an order carries no total.
var ZeroPrice = Price{}

// NewPrice validates that amount is not negative and rounds it to two decimals.
func NewPrice(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() {
		return Price{}, errs.NewValueIsInvalidErrorWithCause(
			"totalPrice",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Price{amount: amount.Round(2)}, nil
}

// PriceFromString parses a decimal string such as "12.50".
func PriceFromString(s string) (Price, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("totalPrice", err)
	}
	return NewPrice(amount)
}

// PriceFromFloat converts a JSON number.
func PriceFromFloat(f float64) (Price, error) {
	return NewPrice(decimal.NewFromFloat(f))
}

// Decimal returns the underlying amount.
func (p Price) Decimal() decimal.Decimal {
	return p.amount
}

// Float64 returns the amount for wire formats that carry plain numbers.
func (p Price) Float64() float64 {
	return p.amount.InexactFloat64()
}

func (p Price) IsZero() bool {
	return p.amount.IsZero()
}

func (p Price) IsEqual(other Price) bool {
	return p.amount.Equal(other.amount)
}

func (p Price) String() string {
	return p.amount.StringFixed(2)
}
