package totals

import (
	"math"
	"testing"

	"paint-estimate-be/internal/entity"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculate(t *testing.T) {
	items := []entity.LineItem{
		{Description: "Kitchen - Paint Walls", Quantity: 1, Total: 400},
		{Description: "Kitchen - Paint Doors", Quantity: 2, Total: 200},
		{Description: "Surface Preparation", Quantity: 1, Total: 350},
		{Description: "Premium Paint and Materials", Quantity: 1, Total: 450},
	}

	got := Calculate(items, DefaultTaxRate)
	if !almostEqual(got.Subtotal, 1400) {
		t.Errorf("subtotal = %v, want 1400", got.Subtotal)
	}
	if !almostEqual(got.Tax, 112) {
		t.Errorf("tax = %v, want 112", got.Tax)
	}
	if !almostEqual(got.Total, 1512) {
		t.Errorf("total = %v, want 1512", got.Total)
	}
}

func TestCalculateEmpty(t *testing.T) {
	got := Calculate(nil, DefaultTaxRate)
	if got.Subtotal != 0 || got.Tax != 0 || got.Total != 0 {
		t.Errorf("empty list yielded %+v, want zeros", got)
	}
}

func TestCalculateCustomRate(t *testing.T) {
	items := []entity.LineItem{{Description: "Walls", Quantity: 1, Total: 1000}}

	got := Calculate(items, 0.1)
	if !almostEqual(got.Tax, 100) || !almostEqual(got.Total, 1100) {
		t.Errorf("custom rate yielded %+v", got)
	}

	got = Calculate(items, 0)
	if got.Tax != 0 || !almostEqual(got.Total, 1000) {
		t.Errorf("zero rate yielded %+v", got)
	}
}
