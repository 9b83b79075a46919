package pricing

import (
	"testing"

	"github.com/campverse/camp-booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_Discount(t *testing.T) {
	u := &model.Unit{Price: 12999, OriginalPrice: 15999}

	q, err := Quote(u, 0)
	require.NoError(t, err)
	assert.Equal(t, 19, q.DiscountPercent)
	assert.Equal(t, int64(12999), q.BasePrice)
}

func TestQuote_NoOriginalPrice(t *testing.T) {
	u := &model.Unit{Price: 12999}

	q, err := Quote(u, 0.18)
	require.NoError(t, err)
	assert.Equal(t, 0, q.DiscountPercent)
	assert.Equal(t, int64(15339), q.TotalPrice) // round(12999 * 1.18)
	assert.Equal(t, 0.18, q.TaxRate)
}

func TestQuote_EqualPricesNoDiscount(t *testing.T) {
	u := &model.Unit{Price: 14999, OriginalPrice: 14999}

	q, err := Quote(u, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, q.DiscountPercent)
}

func TestQuote_TotalPrice(t *testing.T) {
	tests := []struct {
		price   int64
		taxRate float64
		want    int64
	}{
		{12999, 0.18, 15339},
		{14999, 0.18, 17699},
		{28999, 0.18, 34219},
		{100, 0.005, 101}, // 100.5 rounds up
	}
	for _, tt := range tests {
		q, err := Quote(&model.Unit{Price: tt.price}, tt.taxRate)
		require.NoError(t, err)
		assert.Equal(t, tt.want, q.TotalPrice, "price=%d", tt.price)
	}
}

func TestQuote_InvalidUnit(t *testing.T) {
	_, err := Quote(&model.Unit{Price: 0}, 0.18)
	require.ErrorIs(t, err, model.ErrInvalidUnit)

	_, err = Quote(&model.Unit{Price: -100}, 0.18)
	require.ErrorIs(t, err, model.ErrInvalidUnit)

	_, err = Quote(&model.Unit{Price: 100}, -0.1)
	require.ErrorIs(t, err, model.ErrInvalidUnit)
}
