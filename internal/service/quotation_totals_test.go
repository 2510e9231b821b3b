package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return v
}

func assertAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if got.StringFixed(2) != want {
		t.Fatalf("%s = %s, want %s", name, got.StringFixed(2), want)
	}
}

func TestCalcQuotationTotalsWithDiscountAndTax(t *testing.T) {
	lines := []QuotationLine{
		{UnitPrice: d(t, "100.00"), Quantity: 2},
		{UnitPrice: d(t, "50.00"), Quantity: 1},
	}

	totals := CalcQuotationTotals(lines, d(t, "10"), true, d(t, "16"))

	assertAmount(t, "subtotal", totals.Subtotal, "250.00")
	assertAmount(t, "discount", totals.DiscountAmount, "25.00")
	assertAmount(t, "tax", totals.TaxAmount, "36.00")
	assertAmount(t, "total", totals.Total, "261.00")
}

func TestCalcQuotationTotalsTaxDisabled(t *testing.T) {
	lines := []QuotationLine{
		{UnitPrice: d(t, "100.00"), Quantity: 2},
		{UnitPrice: d(t, "50.00"), Quantity: 1},
	}

	totals := CalcQuotationTotals(lines, d(t, "10"), false, d(t, "16"))

	assertAmount(t, "subtotal", totals.Subtotal, "250.00")
	assertAmount(t, "discount", totals.DiscountAmount, "25.00")
	assertAmount(t, "tax", totals.TaxAmount, "0.00")
	assertAmount(t, "total", totals.Total, "225.00")
}

func TestCalcQuotationTotalsQuantityClamp(t *testing.T) {
	lines := []QuotationLine{
		{UnitPrice: d(t, "10.00"), Quantity: 0},
		{UnitPrice: d(t, "10.00"), Quantity: -3},
	}

	totals := CalcQuotationTotals(lines, decimal.Zero, false, decimal.Zero)

	assertAmount(t, "subtotal", totals.Subtotal, "20.00")
	assertAmount(t, "total", totals.Total, "20.00")
}

func TestCalcQuotationTotalsPerStepRounding(t *testing.T) {
	// 3 x 33.335 rounds each line, not the raw product.
	lines := []QuotationLine{
		{UnitPrice: d(t, "33.335"), Quantity: 3},
	}

	totals := CalcQuotationTotals(lines, decimal.Zero, false, decimal.Zero)

	// 33.335 * 3 = 100.005 -> 100.01 (half-up on the line total)
	assertAmount(t, "subtotal", totals.Subtotal, "100.01")

	withDiscount := CalcQuotationTotals(lines, d(t, "0.005"), true, d(t, "16"))
	// discount: 100.01 * 0.005% = 0.0050005 -> 0.01
	assertAmount(t, "discount", withDiscount.DiscountAmount, "0.01")
	// base 100.00, tax 16.00, total 116.00
	assertAmount(t, "tax", withDiscount.TaxAmount, "16.00")
	assertAmount(t, "total", withDiscount.Total, "116.00")
}

func TestCalcQuotationTotalsEmptyItems(t *testing.T) {
	totals := CalcQuotationTotals(nil, d(t, "10"), true, d(t, "16"))

	assertAmount(t, "subtotal", totals.Subtotal, "0.00")
	assertAmount(t, "discount", totals.DiscountAmount, "0.00")
	assertAmount(t, "tax", totals.TaxAmount, "0.00")
	assertAmount(t, "total", totals.Total, "0.00")
}
