// Package totals reduces a line-item list to subtotal, tax, and total.
package totals

import "paint-estimate-be/internal/entity"

// DefaultTaxRate applies on the automated path; the interactive review path
// may pass an operator-edited rate instead.
const DefaultTaxRate = 0.08

// Calculate is a pure reduction. It is recomputed synchronously whenever the
// line items change and never cached against a stale list. The empty list
// yields all zeros.
func Calculate(items []entity.LineItem, taxRate float64) entity.Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}
	tax := subtotal * taxRate
	return entity.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
