package entity

import "github.com/google/uuid"

// LineItem is derived from the room matrix and recomputed wholesale whenever
// the matrix changes. Total always equals Quantity * UnitPrice.
type LineItem struct {
	Id          uuid.UUID `json:"id"`
	Description string    `json:"description" validate:"required"`
	Quantity    int       `json:"quantity" validate:"gt=0"`
	Unit        string    `json:"unit"`
	UnitPrice   float64   `json:"unit_price" validate:"gte=0"`
	Total       float64   `json:"total" validate:"gte=0"`
}

// Totals is a pure reduction over a line-item list.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
