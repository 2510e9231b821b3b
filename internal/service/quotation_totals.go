package service

import (
	"github.com/shopspring/decimal"
)

// QuotationLine is one line of a totals computation.
type QuotationLine struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// QuotationTotals is the result of a totals computation. Every amount is
// already rounded to 2 decimal places.
type QuotationTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

var decimalHundred = decimal.NewFromInt(100)

// CalcQuotationTotals computes quotation money amounts with exact decimal
// arithmetic. Each derived amount is rounded half-up to 2 decimals before
// feeding the next step, and quantities below 1 count as 1.
func CalcQuotationTotals(lines []QuotationLine, discountPct decimal.Decimal, taxEnabled bool, taxPct decimal.Decimal) QuotationTotals {
	subtotal := decimal.Zero
	for _, line := range lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(2)
		subtotal = subtotal.Add(lineTotal)
	}
	subtotal = subtotal.Round(2)

	discountAmount := subtotal.Mul(discountPct).Div(decimalHundred).Round(2)
	base := subtotal.Sub(discountAmount).Round(2)

	taxAmount := decimal.Zero
	if taxEnabled {
		taxAmount = base.Mul(taxPct).Div(decimalHundred).Round(2)
	}

	total := base.Add(taxAmount).Round(2)

	return QuotationTotals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Total:          total,
	}
}
