// Package checkout derives payable totals from the cart and runs the
// simulated payment flow that ends in an order confirmation.
package checkout

import "github.com/shopspring/decimal"

// Fixed business rules for the storefront. Shipping is free strictly above
// the threshold; tax is 12% GST rounded to whole rupees.
var (
	freeShippingThreshold = decimal.NewFromInt(500)
	flatShippingFee       = decimal.NewFromInt(40)
	taxRate               = decimal.RequireFromString("0.12")
)

// Quote is the full price breakdown for a cart subtotal.
type Quote struct {
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// ShippingCost returns the shipping fee for a subtotal: zero when the
// subtotal exceeds 500, otherwise the flat fee. A subtotal of exactly 500
// still pays shipping.
func ShippingCost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeShippingThreshold) {
		return decimal.Zero
	}
	return flatShippingFee
}

// Tax returns 12% of the subtotal rounded to the nearest whole rupee.
// Round is half away from zero, i.e. round-half-up for the non-negative
// subtotals a cart can produce.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate).Round(0)
}

// NewQuote computes the complete breakdown for a subtotal. Pure and
// idempotent: the same subtotal always yields the same quote.
func NewQuote(subtotal decimal.Decimal) Quote {
	shipping := ShippingCost(subtotal)
	tax := Tax(subtotal)
	return Quote{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		GrandTotal: subtotal.Add(shipping).Add(tax),
	}
}
