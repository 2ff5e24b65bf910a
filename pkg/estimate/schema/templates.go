package schema

import (
	"strings"

	"paint-estimate-be/internal/entity"
)

// RoomTemplates is the static catalog of paintable room categories. The alias
// lists are what free-text room mentions are matched against in fallback
// normalization.
var RoomTemplates = []entity.RoomTemplate{
	{Floor: entity.FloorMain, Category: "kitchen", DefaultLabel: "Kitchen", Aliases: []string{"kitchen", "kitchenette", "cook"}},
	{Floor: entity.FloorMain, Category: "living_room", DefaultLabel: "Living Room", Aliases: []string{"living room", "living", "family room", "great room", "den", "lounge"}},
	{Floor: entity.FloorMain, Category: "dining_room", DefaultLabel: "Dining Room", Aliases: []string{"dining room", "dining", "breakfast nook"}},
	{Floor: entity.FloorMain, Category: "bathroom", DefaultLabel: "Bathroom", Aliases: []string{"bathroom", "bath", "powder room", "half bath", "washroom", "restroom"}},
	{Floor: entity.FloorMain, Category: "hallway", DefaultLabel: "Hallway", Aliases: []string{"hallway", "hall", "corridor", "entryway", "entry", "foyer"}},
	{Floor: entity.FloorMain, Category: "office", DefaultLabel: "Office", Aliases: []string{"office", "study", "home office"}},
	{Floor: entity.FloorMain, Category: "laundry_room", DefaultLabel: "Laundry Room", Aliases: []string{"laundry", "mud room", "mudroom", "utility"}},
	{Floor: entity.FloorUpper, Category: "master_bedroom", DefaultLabel: "Master Bedroom", Aliases: []string{"master bedroom", "master", "primary bedroom", "primary suite"}},
	{Floor: entity.FloorUpper, Category: "bedroom", DefaultLabel: "Bedroom", Aliases: []string{"bedroom", "bed room", "guest room", "kids room", "nursery"}},
	{Floor: entity.FloorUpper, Category: "master_bathroom", DefaultLabel: "Master Bathroom", Aliases: []string{"master bathroom", "master bath", "ensuite", "en-suite"}},
	{Floor: entity.FloorUpper, Category: "closet", DefaultLabel: "Closet", Aliases: []string{"closet", "walk-in", "walk in closet"}},
	{Floor: entity.FloorUpper, Category: "stairwell", DefaultLabel: "Stairwell", Aliases: []string{"stairwell", "stairs", "staircase", "stairway"}},
	{Floor: entity.FloorBasement, Category: "basement", DefaultLabel: "Basement", Aliases: []string{"basement", "cellar", "lower level", "rec room", "recreation room"}},
	{Floor: entity.FloorBasement, Category: "garage", DefaultLabel: "Garage", Aliases: []string{"garage", "workshop"}},
}

// MatchTemplate resolves a free-text room mention against the alias table.
// Matching is case-insensitive and runs in two passes. First, aliases
// contained in the mention, longest alias wins: "the master bedroom
// upstairs" lands on master_bedroom and "master bathroom" must not resolve
// to the generic bathroom entry just because it contains "bath". Only when
// no alias occurs in the mention does the reverse direction apply, mention
// contained in an alias, shortest alias wins, so a plain "bathroom" or
// "master" is not captured by a longer alias from another template.
func MatchTemplate(name string) (entity.RoomTemplate, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return entity.RoomTemplate{}, false
	}

	var best entity.RoomTemplate
	bestLen := 0
	for _, tpl := range RoomTemplates {
		for _, alias := range tpl.Aliases {
			if strings.Contains(needle, alias) && len(alias) > bestLen {
				best = tpl
				bestLen = len(alias)
			}
		}
	}
	if bestLen > 0 {
		return best, true
	}

	bestLen = 0
	for _, tpl := range RoomTemplates {
		for _, alias := range tpl.Aliases {
			if strings.Contains(alias, needle) && (bestLen == 0 || len(alias) < bestLen) {
				best = tpl
				bestLen = len(alias)
			}
		}
	}
	if bestLen == 0 {
		return entity.RoomTemplate{}, false
	}
	return best, true
}

// NewRoomFromTemplate builds a canonical room with no surfaces selected.
// The id starts as the template category; the matrix is responsible for
// suffixing it on collision.
func NewRoomFromTemplate(tpl entity.RoomTemplate, confidence float64) entity.CanonicalRoom {
	return entity.CanonicalRoom{
		Id:         tpl.Category,
		Label:      tpl.DefaultLabel,
		Floor:      tpl.Floor,
		Category:   tpl.Category,
		Confidence: confidence,
	}
}
