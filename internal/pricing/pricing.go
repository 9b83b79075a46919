// Package pricing computes the displayed price, discount, and
// tax-inclusive total for a unit. Prices stay in currency minor units
// end to end; rounding happens exactly once, on the final amount, so
// repeated quoting never drifts by a cent.
package pricing

import (
	"fmt"
	"math"

	"github.com/campverse/camp-booking/internal/model"
)

// Quote prices the unit at the given tax rate.
//
// The discount percent is derived from the strikethrough price when one
// is present and higher than the list price; equal prices mean no
// discount, not a fault. Fails with model.ErrInvalidUnit on a
// non-positive list price.
func Quote(u *model.Unit, taxRate float64) (model.BookingQuote, error) {
	if u.Price <= 0 {
		return model.BookingQuote{}, fmt.Errorf("%w: price=%d", model.ErrInvalidUnit, u.Price)
	}
	if taxRate < 0 {
		return model.BookingQuote{}, fmt.Errorf("%w: tax rate=%v", model.ErrInvalidUnit, taxRate)
	}

	discount := 0
	if u.OriginalPrice > u.Price {
		discount = int(roundHalfUp(100 * (1 - float64(u.Price)/float64(u.OriginalPrice))))
	}

	return model.BookingQuote{
		BasePrice:       u.Price,
		DiscountPercent: discount,
		TaxRate:         taxRate,
		TotalPrice:      roundHalfUp(float64(u.Price) * (1 + taxRate)),
	}, nil
}

// roundHalfUp rounds to the nearest integer, ties away from zero's
// lower side (0.5 rounds up).
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
