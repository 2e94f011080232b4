// Package money holds the single rounding rule used for every monetary value
// in the system. All prices and totals are exact base-10 decimals rounded
// half-up to two fractional digits; nothing else in the codebase may round.
package money

import "github.com/shopspring/decimal"

var (
	// Zero is the canonical zero amount.
	Zero = decimal.Zero

	hundred = decimal.NewFromInt(100)
)

// Round2 rounds half-up to exactly two fractional digits. Monetary values are
// never negative in this system, so decimal's round-half-away-from-zero is
// exactly round-half-up here.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineAmount computes unitPrice x quantity. The unit price is expected to be
// already rounded; multiplying by an integer quantity cannot add fractional
// digits beyond the two already present.
func LineAmount(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// OrderTotal applies the two-stage rounding rule: each line amount is rounded,
// the rounded shipping cost is added, and the final sum is rounded again. The
// staging must not be collapsed into a single final round; totals differ on
// midpoint inputs.
func OrderTotal(lineAmounts []decimal.Decimal, shippingCost decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range lineAmounts {
		total = total.Add(Round2(amount))
	}
	total = total.Add(Round2(shippingCost))
	return Round2(total)
}

// DiscountPercent returns the percentage saved when sale undercuts base,
// rounded to two digits. Zero when the sale price does not undercut the base.
func DiscountPercent(base, sale decimal.Decimal) decimal.Decimal {
	if base.IsZero() || !sale.LessThan(base) {
		return decimal.Zero
	}
	return Round2(base.Sub(sale).Div(base).Mul(hundred))
}
