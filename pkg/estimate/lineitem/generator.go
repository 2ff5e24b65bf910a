// Package lineitem expands a room matrix into priced line items.
package lineitem

import (
	"fmt"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/internal/pkg/logger"
	"paint-estimate-be/pkg/estimate/pricing"
	"paint-estimate-be/pkg/estimate/schema"

	"github.com/google/uuid"
)

// Fixed whole-estimate item descriptions. They are appended exactly once, and
// only when at least one room-derived item exists: an empty scope must not
// bill for preparation or materials.
const (
	SurfacePreparationDesc = "Surface Preparation"
	PaintAndMaterialsDesc  = "Premium Paint and Materials"
)

// Surface expansion order is fixed so regeneration is stable.
var surfaceOrder = []string{
	entity.SurfaceWalls,
	entity.SurfaceCeiling,
	entity.SurfaceTrim,
	entity.SurfaceDoors,
	entity.SurfaceWindows,
	entity.SurfaceCabinets,
}

type Generator struct {
	logger logger.ILogger
}

func NewGenerator(log logger.ILogger) *Generator {
	return &Generator{logger: log}
}

// Generate emits one line item per active surface per room, in room order
// then fixed surface order. Rooms with no selected surfaces contribute
// nothing, not even a zero-amount placeholder. Items failing validation are
// dropped and logged.
func (g *Generator) Generate(rooms []entity.CanonicalRoom) []entity.LineItem {
	items := make([]entity.LineItem, 0)

	for _, room := range rooms {
		if !room.HasSelectedSurfaces() {
			continue
		}
		for _, surface := range surfaceOrder {
			item, active := roomItem(room, surface)
			if !active {
				continue
			}
			if err := schema.ValidateLineItem(item); err != nil {
				g.logger.Warn("lineitem", "dropping invalid generated item", map[string]interface{}{
					"room_id": room.Id,
					"surface": surface,
					"error":   err.Error(),
				})
				continue
			}
			items = append(items, item)
		}
	}

	if len(items) > 0 {
		items = append(items,
			fixedItem(SurfacePreparationDesc, pricing.SurfacePreparationPrice),
			fixedItem(PaintAndMaterialsDesc, pricing.PaintAndMaterialsPrice),
		)
	}

	return items
}

func roomItem(room entity.CanonicalRoom, surface string) (entity.LineItem, bool) {
	quantity := 0
	unit := "room"
	var desc string

	switch surface {
	case entity.SurfaceWalls:
		if room.Walls {
			quantity = 1
		}
		desc = fmt.Sprintf("%s - Paint Walls", room.Label)
	case entity.SurfaceCeiling:
		if room.Ceiling {
			quantity = 1
		}
		desc = fmt.Sprintf("%s - Paint Ceiling", room.Label)
	case entity.SurfaceTrim:
		if room.Trim {
			quantity = 1
		}
		desc = fmt.Sprintf("%s - Paint Trim and Baseboards", room.Label)
	case entity.SurfaceDoors:
		quantity = room.Doors
		unit = "door"
		desc = fmt.Sprintf("%s - Paint Doors", room.Label)
	case entity.SurfaceWindows:
		quantity = room.Windows
		unit = "window"
		desc = fmt.Sprintf("%s - Paint Window Frames", room.Label)
	case entity.SurfaceCabinets:
		if room.Cabinets {
			quantity = 1
		}
		unit = "set"
		desc = fmt.Sprintf("%s - Paint Cabinets", room.Label)
	}

	if quantity == 0 {
		return entity.LineItem{}, false
	}

	unitPrice := pricing.UnitPrice(room.Label, surface)
	return entity.LineItem{
		Id:          uuid.New(),
		Description: desc,
		Quantity:    quantity,
		Unit:        unit,
		UnitPrice:   unitPrice,
		Total:       float64(quantity) * unitPrice,
	}, true
}

func fixedItem(desc string, price float64) entity.LineItem {
	return entity.LineItem{
		Id:          uuid.New(),
		Description: desc,
		Quantity:    1,
		Unit:        "job",
		UnitPrice:   price,
		Total:       price,
	}
}
