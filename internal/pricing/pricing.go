// Package pricing turns a cart into a totals breakdown.
//
// Everything here is pure arithmetic: no I/O, no state, and no rounding
// except through Round2, which callers apply only at presentation and
// persistence boundaries. Intermediate values keep full float precision so
// repeated recomputation cannot compound rounding error.
package pricing

import "math"

// DiscountType selects how a discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

// Valid reports whether t is a known discount type.
func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountAmount
}

// Discount is a cart-level discount to apply before tax.
// A zero Discount (empty type, zero value) means no discount.
type Discount struct {
	Type  DiscountType
	Value float64
}

// Line is the slice of a line item that pricing cares about.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Params contains all inputs for a totals calculation.
type Params struct {
	Lines          []Line
	Discount       Discount
	TaxRatePercent float64
}

// Breakdown is the derived totals for a cart. It is recomputed from
// scratch on every cart mutation and never stored.
type Breakdown struct {
	Subtotal       float64
	DiscountAmount float64
	TaxAmount      float64
	Total          float64
}

// Calculate computes the totals breakdown for the given cart inputs.
//
// The discount is applied to the subtotal first; an amount discount is
// capped at the subtotal so the discounted base can never go negative.
// Tax applies to the discounted base.
func Calculate(params Params) Breakdown {
	var subtotal float64
	for _, line := range params.Lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}

	var discount float64
	switch params.Discount.Type {
	case DiscountPercentage:
		discount = subtotal * params.Discount.Value / 100
	case DiscountAmount:
		discount = math.Min(params.Discount.Value, subtotal)
	}

	afterDiscount := subtotal - discount
	tax := afterDiscount * params.TaxRatePercent / 100

	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          afterDiscount + tax,
	}
}

// Round2 rounds a monetary value to two decimal places. Applied only at
// the persistence and response boundaries, never inside Calculate.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
