// Package pricing holds the pure arithmetic behind a quote: line subtotals,
// the general discount, tax, and the grand total. Every function is stateless
// and operates on decimal values so repeated additions never drift the way
// binary floats do.
//
// None of these functions validate their inputs. A discount percentage outside
// [0,100] silently produces a negative or inflated result; callers own the
// domain checks.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line is the minimal view of a quote line the engine needs. Quantity and
// Subtotal are carried separately because the aggregate functions sum the
// pre-computed subtotal rather than rederiving it.
type Line struct {
	Quantity decimal.Decimal
	Subtotal decimal.Decimal
}

// LineSubtotal computes quantity × unitPrice reduced by discountPct percent.
func LineSubtotal(quantity, unitPrice, discountPct decimal.Decimal) decimal.Decimal {
	gross := quantity.Mul(unitPrice)
	return gross.Sub(gross.Mul(discountPct).Div(hundred))
}

// Subtotal sums the pre-computed subtotals of the given lines. The sum is
// commutative, so reordering lines never changes the result. Empty input
// yields zero.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// DiscountAmount returns the monetary value of the general discount applied
// to subtotal. Non-positive percentages yield zero.
func DiscountAmount(subtotal, discountPct decimal.Decimal) decimal.Decimal {
	if discountPct.Sign() <= 0 {
		return decimal.Zero
	}
	return subtotal.Mul(discountPct).Div(hundred)
}

// NetPrice is the subtotal after the general discount.
func NetPrice(subtotal, discountPct decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(DiscountAmount(subtotal, discountPct))
}

// TaxAmount returns the tax charged on the net price. Non-positive
// percentages yield zero.
func TaxAmount(netPrice, taxPct decimal.Decimal) decimal.Decimal {
	if taxPct.Sign() <= 0 {
		return decimal.Zero
	}
	return netPrice.Mul(taxPct).Div(hundred)
}

// GrandTotal derives the final amount: net price plus tax.
func GrandTotal(subtotal, discountPct, taxPct decimal.Decimal) decimal.Decimal {
	net := NetPrice(subtotal, discountPct)
	return net.Add(TaxAmount(net, taxPct))
}

// TotalQuantity sums line quantities. Quote headers report the summed
// quantity, not the number of lines.
func TotalQuantity(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity)
	}
	return total
}
