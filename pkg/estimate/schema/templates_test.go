package schema

import (
	"testing"

	"paint-estimate-be/internal/entity"
)

func TestMatchTemplate(t *testing.T) {
	tests := []struct {
		name         string
		mention      string
		wantCategory string
		wantMatch    bool
	}{
		{name: "exact alias", mention: "kitchen", wantCategory: "kitchen", wantMatch: true},
		{name: "case insensitive", mention: "KITCHEN", wantCategory: "kitchen", wantMatch: true},
		{name: "mention contains alias", mention: "the master bedroom upstairs", wantCategory: "master_bedroom", wantMatch: true},
		{name: "alias contains mention", mention: "master", wantCategory: "master_bedroom", wantMatch: true},
		{name: "longer alias wins", mention: "master bathroom", wantCategory: "master_bathroom", wantMatch: true},
		{name: "plain bathroom stays generic", mention: "bathroom", wantCategory: "bathroom", wantMatch: true},
		{name: "short bath stays generic", mention: "bath", wantCategory: "bathroom", wantMatch: true},
		{name: "synonym alias", mention: "den", wantCategory: "living_room", wantMatch: true},
		{name: "basement synonym", mention: "rec room", wantCategory: "basement", wantMatch: true},
		{name: "whitespace trimmed", mention: "  hallway  ", wantCategory: "hallway", wantMatch: true},
		{name: "unknown room", mention: "observatory", wantMatch: false},
		{name: "empty", mention: "", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, ok := MatchTemplate(tt.mention)
			if ok != tt.wantMatch {
				t.Fatalf("MatchTemplate(%q) matched = %v, want %v", tt.mention, ok, tt.wantMatch)
			}
			if ok && tpl.Category != tt.wantCategory {
				t.Errorf("MatchTemplate(%q) category = %q, want %q", tt.mention, tpl.Category, tt.wantCategory)
			}
		})
	}
}

func TestMatchTemplateFloorNotStolenByLongerAlias(t *testing.T) {
	tpl, ok := MatchTemplate("bathroom")
	if !ok {
		t.Fatal("bathroom must match")
	}
	if tpl.Category != "bathroom" || tpl.Floor != entity.FloorMain {
		t.Errorf("bathroom resolved to category=%q floor=%q, want bathroom on %q", tpl.Category, tpl.Floor, entity.FloorMain)
	}
}

func TestNewRoomFromTemplate(t *testing.T) {
	tpl, ok := MatchTemplate("kitchen")
	if !ok {
		t.Fatal("kitchen template missing from catalog")
	}

	room := NewRoomFromTemplate(tpl, 0.9)
	if room.Id != "kitchen" || room.Label != "Kitchen" {
		t.Errorf("unexpected identity: id=%q label=%q", room.Id, room.Label)
	}
	if room.Floor != entity.FloorMain {
		t.Errorf("floor = %q, want %q", room.Floor, entity.FloorMain)
	}
	if room.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", room.Confidence)
	}
	if room.HasSelectedSurfaces() {
		t.Error("new template room must start with no surfaces selected")
	}
	if err := ValidateRoom(room); err != nil {
		t.Errorf("template room failed validation: %v", err)
	}
}

func TestTemplateCatalogValid(t *testing.T) {
	seen := make(map[string]bool)
	for _, tpl := range RoomTemplates {
		if seen[tpl.Category] {
			t.Errorf("duplicate category %q in catalog", tpl.Category)
		}
		seen[tpl.Category] = true

		if err := ValidateRoom(NewRoomFromTemplate(tpl, 1.0)); err != nil {
			t.Errorf("category %q builds an invalid room: %v", tpl.Category, err)
		}
	}
}
