package entity

// Floor identifies which level of the house a room belongs to.
type Floor string

const (
	FloorMain     Floor = "main"
	FloorUpper    Floor = "upper"
	FloorBasement Floor = "basement"
)

// Surface keys used by toggle/count mutations and line-item expansion.
const (
	SurfaceWalls    = "walls"
	SurfaceCeiling  = "ceiling"
	SurfaceTrim     = "trim"
	SurfaceDoors    = "doors"
	SurfaceWindows  = "windows"
	SurfaceCabinets = "cabinets"
)

// RoomTemplate is a static catalog entry. Never mutated at runtime.
type RoomTemplate struct {
	Floor        Floor    `json:"floor"`
	Category     string   `json:"category"`
	DefaultLabel string   `json:"default_label"`
	Aliases      []string `json:"aliases"`
}

// CanonicalRoom is the validated, fully-typed room record used throughout the
// pipeline after normalization. Confidence is 1.0 for rooms added by explicit
// user action and inherited from the extraction source otherwise.
type CanonicalRoom struct {
	Id         string  `json:"id" validate:"required"`
	Label      string  `json:"label" validate:"required"`
	Floor      Floor   `json:"floor,omitempty" validate:"omitempty,oneof=main upper basement"`
	Category   string  `json:"category,omitempty"`
	Index      int     `json:"index,omitempty" validate:"gte=0"`
	Walls      bool    `json:"walls"`
	Ceiling    bool    `json:"ceiling"`
	Trim       bool    `json:"trim"`
	Doors      int     `json:"doors" validate:"gte=0"`
	Windows    int     `json:"windows" validate:"gte=0"`
	Cabinets   bool    `json:"cabinets"`
	Confidence float64 `json:"confidence,omitempty" validate:"gte=0,lte=1"`
}

// HasSelectedSurfaces is the single predicate used everywhere to decide
// visibility, inclusion in pricing, and completion-readiness.
func (r CanonicalRoom) HasSelectedSurfaces() bool {
	return r.Walls || r.Ceiling || r.Trim || r.Doors > 0 || r.Windows > 0 || r.Cabinets
}
