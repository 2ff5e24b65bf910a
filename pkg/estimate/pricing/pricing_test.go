package pricing

import (
	"testing"

	"paint-estimate-be/internal/entity"
)

func TestWallPriceTiers(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"Kitchen", 400},
		{"Master Bathroom", 400},
		{"Master Bedroom", 350},
		{"Living Room", 350},
		{"Bedroom", 300},
		{"Garage", 300},
		{"", 300},
	}
	for _, tt := range tests {
		if got := WallPrice(tt.label); got != tt.want {
			t.Errorf("WallPrice(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestCeilingPriceTiers(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"Kitchen", 250},
		{"Bathroom", 250},
		{"Living Room", 200},
		{"Hallway", 180},
	}
	for _, tt := range tests {
		if got := CeilingPrice(tt.label); got != tt.want {
			t.Errorf("CeilingPrice(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestCabinetPriceTiers(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"Kitchen", 1800},
		{"Master Bathroom", 700},
		{"Laundry Room", 500},
	}
	for _, tt := range tests {
		if got := CabinetPrice(tt.label); got != tt.want {
			t.Errorf("CabinetPrice(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestUnitPriceDispatch(t *testing.T) {
	tests := []struct {
		surface string
		want    float64
	}{
		{entity.SurfaceWalls, 400},
		{entity.SurfaceCeiling, 250},
		{entity.SurfaceTrim, 250},
		{entity.SurfaceDoors, 100},
		{entity.SurfaceWindows, 75},
		{entity.SurfaceCabinets, 1800},
		{"roof", 0},
	}
	for _, tt := range tests {
		if got := UnitPrice("Kitchen", tt.surface); got != tt.want {
			t.Errorf("UnitPrice(Kitchen, %q) = %v, want %v", tt.surface, got, tt.want)
		}
	}
}
