package quote

import "math"

// Compute derives the totals of items. taxRate is a fraction; negative rates
// are not rejected and simply propagate.
func Compute(items []LineItem, taxRate float64) Totals {
	var t Totals
	for _, it := range items {
		t.Labor += finite(it.Labor)
		t.Parts += finite(finite(it.Quantity) * finite(it.UnitPrice))
	}
	t.Subtotal = t.Labor + t.Parts
	t.Tax = t.Subtotal * taxRate
	t.Total = t.Subtotal + t.Tax
	return t
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
