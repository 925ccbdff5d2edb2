package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLine(t *testing.T) {
	tests := []struct {
		name         string
		in           LineInput
		wantSubtotal string
		wantDiscount string
		wantTaxable  string
		wantTax      string
		wantTotal    string
	}{
		{
			name: "discount before tax",
			in: LineInput{
				Quantity:        d("3"),
				UnitPrice:       d("100"),
				DiscountPercent: d("10"),
				TaxRate:         d("19"),
			},
			wantSubtotal: "300",
			wantDiscount: "30",
			wantTaxable:  "270",
			wantTax:      "51.30",
			wantTotal:    "321.30",
		},
		{
			name: "tax exempt line",
			in: LineInput{
				Quantity:  d("2"),
				UnitPrice: d("49.99"),
			},
			wantSubtotal: "99.98",
			wantDiscount: "0",
			wantTaxable:  "99.98",
			wantTax:      "0",
			wantTotal:    "99.98",
		},
		{
			name: "fixed amount tax",
			in: LineInput{
				Quantity:  d("1"),
				UnitPrice: d("200"),
				TaxFixed:  d("0.600"),
			},
			wantSubtotal: "200",
			wantDiscount: "0",
			wantTaxable:  "200",
			wantTax:      "0.600",
			wantTotal:    "200.600",
		},
		{
			name: "fractional quantity",
			in: LineInput{
				Quantity:  d("1.5"),
				UnitPrice: d("10"),
				TaxRate:   d("7"),
			},
			wantSubtotal: "15",
			wantDiscount: "0",
			wantTaxable:  "15",
			wantTax:      "1.05",
			wantTotal:    "16.05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeLine(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Subtotal.Equal(d(tt.wantSubtotal)), "subtotal = %s", got.Subtotal)
			assert.True(t, got.Discount.Equal(d(tt.wantDiscount)), "discount = %s", got.Discount)
			assert.True(t, got.Taxable.Equal(d(tt.wantTaxable)), "taxable = %s", got.Taxable)
			assert.True(t, got.Tax.Equal(d(tt.wantTax)), "tax = %s", got.Tax)
			assert.True(t, got.Total.Equal(d(tt.wantTotal)), "total = %s", got.Total)
		})
	}
}

func TestComputeLine_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		in      LineInput
		wantErr error
	}{
		{"zero quantity", LineInput{Quantity: d("0"), UnitPrice: d("10")}, ErrInvalidQuantity},
		{"negative quantity", LineInput{Quantity: d("-1"), UnitPrice: d("10")}, ErrInvalidQuantity},
		{"negative price", LineInput{Quantity: d("1"), UnitPrice: d("-0.01")}, ErrInvalidPrice},
		{"discount over 100", LineInput{Quantity: d("1"), UnitPrice: d("10"), DiscountPercent: d("100.1")}, ErrInvalidDiscount},
		{"negative discount", LineInput{Quantity: d("1"), UnitPrice: d("10"), DiscountPercent: d("-5")}, ErrInvalidDiscount},
		{"tax rate over 100", LineInput{Quantity: d("1"), UnitPrice: d("10"), TaxRate: d("101")}, ErrInvalidTaxRate},
		{"negative fixed tax", LineInput{Quantity: d("1"), UnitPrice: d("10"), TaxFixed: d("-1")}, ErrInvalidTaxFixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLine(tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComputeTotals(t *testing.T) {
	lines := []LineInput{
		{Quantity: d("3"), UnitPrice: d("100"), DiscountPercent: d("10"), TaxRate: d("19")},
		{Quantity: d("2"), UnitPrice: d("49.99")},
	}

	totals, err := ComputeTotals(lines, 2, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.SubtotalHT.Equal(d("369.98")), "subtotalHT = %s", totals.SubtotalHT)
	assert.True(t, totals.TotalTax.Equal(d("51.30")), "totalTax = %s", totals.TotalTax)
	assert.True(t, totals.TotalTTC.Equal(d("421.28")), "totalTTC = %s", totals.TotalTTC)
}

func TestComputeTotals_StampDuty(t *testing.T) {
	lines := []LineInput{
		{Quantity: d("1"), UnitPrice: d("100"), TaxRate: d("19")},
	}

	totals, err := ComputeTotals(lines, 3, d("0.600"))
	require.NoError(t, err)

	assert.True(t, totals.SubtotalHT.Equal(d("100")), "subtotalHT = %s", totals.SubtotalHT)
	assert.True(t, totals.TotalTax.Equal(d("19")), "totalTax = %s", totals.TotalTax)
	assert.True(t, totals.StampDuty.Equal(d("0.600")))
	assert.True(t, totals.TotalTTC.Equal(d("119.600")), "totalTTC = %s", totals.TotalTTC)
}

// The aggregate total must stay within one rounding unit of the sum of
// individually rounded line totals.
func TestComputeTotals_RoundingInvariant(t *testing.T) {
	lines := []LineInput{
		{Quantity: d("1"), UnitPrice: d("0.333"), TaxRate: d("19")},
		{Quantity: d("3"), UnitPrice: d("0.335"), TaxRate: d("19")},
		{Quantity: d("7"), UnitPrice: d("1.111"), DiscountPercent: d("3"), TaxRate: d("7")},
	}

	const places = 2
	totals, err := ComputeTotals(lines, places, decimal.Zero)
	require.NoError(t, err)

	summed := decimal.Zero
	for _, line := range lines {
		amounts, err := ComputeLine(line)
		require.NoError(t, err)
		summed = summed.Add(amounts.RoundedTotal(places))
	}

	unit := decimal.New(1, -places)
	diff := totals.TotalTTC.Sub(summed).Abs()
	assert.True(t, diff.LessThanOrEqual(unit), "diff = %s", diff)
}

func TestComputeTotals_EmptyCollection(t *testing.T) {
	totals, err := ComputeTotals(nil, 2, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, totals.TotalTTC.IsZero())
}
