// Package pricing maps (room label, surface) to unit prices. Lookups are pure
// and case-insensitive on the room label; unknown or empty labels fall back to
// the lowest tier rather than erroring.
package pricing

import (
	"strings"

	"paint-estimate-be/internal/entity"
)

// Per-door and per-window rates, and the flat trim rate, are untiered.
const (
	DoorUnitPrice   = 100
	WindowUnitPrice = 75
	TrimPrice       = 250
)

// The two fixed whole-estimate items.
const (
	SurfacePreparationPrice = 350
	PaintAndMaterialsPrice  = 450
)

func hasAny(label string, keywords ...string) bool {
	l := strings.ToLower(label)
	for _, kw := range keywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

// WallPrice tiers wet areas above premium rooms above everything else.
func WallPrice(label string) float64 {
	switch {
	case hasAny(label, "kitchen", "bathroom"):
		return 400
	case hasAny(label, "master", "living"):
		return 350
	default:
		return 300
	}
}

func CeilingPrice(label string) float64 {
	switch {
	case hasAny(label, "kitchen", "bathroom"):
		return 250
	case hasAny(label, "master", "living"):
		return 200
	default:
		return 180
	}
}

func CabinetPrice(label string) float64 {
	switch {
	case hasAny(label, "kitchen"):
		return 1800
	case hasAny(label, "bathroom"):
		return 700
	default:
		return 500
	}
}

// UnitPrice dispatches on the surface key. Unknown surfaces price at zero.
func UnitPrice(label, surface string) float64 {
	switch surface {
	case entity.SurfaceWalls:
		return WallPrice(label)
	case entity.SurfaceCeiling:
		return CeilingPrice(label)
	case entity.SurfaceTrim:
		return TrimPrice
	case entity.SurfaceDoors:
		return DoorUnitPrice
	case entity.SurfaceWindows:
		return WindowUnitPrice
	case entity.SurfaceCabinets:
		return CabinetPrice(label)
	default:
		return 0
	}
}
