// Package money implements decimal line and document arithmetic.
//
// All amounts are decimal.Decimal in the document currency. Rounding
// happens once at line-total and once at aggregate level, half up, to
// the currency's decimal places. Intermediate values stay unrounded so
// aggregation does not accumulate drift.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidDiscount = errors.New("invalid_discount")
	ErrInvalidTaxRate  = errors.New("invalid_tax_rate")
	ErrInvalidTaxFixed = errors.New("invalid_tax_fixed")
)

var hundred = decimal.NewFromInt(100)

// LineInput is one pre-validated document line.
//
// TaxRate is a percentage in [0, 100]. TaxFixed is a flat amount added
// on top of the percentage tax (zero for plain percentage taxes).
type LineInput struct {
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRate         decimal.Decimal
	TaxFixed        decimal.Decimal
}

// LineAmounts are the derived values of one line, unrounded.
type LineAmounts struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Taxable  decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// RoundedTotal returns the line total rounded half up to places.
func (a LineAmounts) RoundedTotal(places int32) decimal.Decimal {
	return a.Total.Round(places)
}

// Totals are document-level aggregates, rounded to the currency's places.
type Totals struct {
	SubtotalHT decimal.Decimal
	TotalTax   decimal.Decimal
	StampDuty  decimal.Decimal
	TotalTTC   decimal.Decimal
}

// ComputeLine derives the five line values from a line input.
// Inputs violating the domain are rejected, never clamped.
func ComputeLine(in LineInput) (LineAmounts, error) {
	if in.Quantity.Sign() <= 0 {
		return LineAmounts{}, ErrInvalidQuantity
	}
	if in.UnitPrice.Sign() < 0 {
		return LineAmounts{}, ErrInvalidPrice
	}
	if in.DiscountPercent.Sign() < 0 || in.DiscountPercent.GreaterThan(hundred) {
		return LineAmounts{}, ErrInvalidDiscount
	}
	if in.TaxRate.Sign() < 0 || in.TaxRate.GreaterThan(hundred) {
		return LineAmounts{}, ErrInvalidTaxRate
	}
	if in.TaxFixed.Sign() < 0 {
		return LineAmounts{}, ErrInvalidTaxFixed
	}

	subtotal := in.UnitPrice.Mul(in.Quantity)
	discount := subtotal.Mul(in.DiscountPercent).Div(hundred)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(in.TaxRate).Div(hundred).Add(in.TaxFixed)

	return LineAmounts{
		Subtotal: subtotal,
		Discount: discount,
		Taxable:  taxable,
		Tax:      tax,
		Total:    taxable.Add(tax),
	}, nil
}

// ComputeTotals aggregates a line collection into document totals.
// Lines are summed unrounded; only the aggregates are rounded.
// stampDuty is an optional flat surcharge added after tax (zero disables it).
func ComputeTotals(lines []LineInput, places int32, stampDuty decimal.Decimal) (Totals, error) {
	if stampDuty.Sign() < 0 {
		return Totals{}, ErrInvalidTaxFixed
	}

	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, line := range lines {
		amounts, err := ComputeLine(line)
		if err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(amounts.Taxable)
		tax = tax.Add(amounts.Tax)
	}

	subtotalHT := subtotal.Round(places)
	totalTax := tax.Round(places)
	totalTTC := subtotal.Add(tax).Add(stampDuty).Round(places)

	return Totals{
		SubtotalHT: subtotalHT,
		TotalTax:   totalTax,
		StampDuty:  stampDuty,
		TotalTTC:   totalTTC,
	}, nil
}
