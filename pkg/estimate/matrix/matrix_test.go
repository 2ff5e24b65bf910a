package matrix

import (
	"testing"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/pkg/estimate/schema"
)

func kitchenTemplate(t *testing.T) entity.RoomTemplate {
	t.Helper()
	tpl, ok := schema.MatchTemplate("kitchen")
	if !ok {
		t.Fatal("kitchen template missing")
	}
	return tpl
}

func TestNewDropsDuplicatesAndInvalid(t *testing.T) {
	rooms := []entity.CanonicalRoom{
		{Id: "kitchen", Label: "Kitchen", Confidence: 1},
		{Id: "kitchen", Label: "Kitchen Again", Confidence: 1},
		{Id: "", Label: "No Id", Confidence: 1},
		{Id: "bedroom", Label: "Bedroom", Doors: -1, Confidence: 1},
		{Id: "bathroom", Label: "Bathroom", Confidence: 1},
	}

	m := New(rooms)
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	got := m.Rooms()
	if got[0].Id != "kitchen" || got[1].Id != "bathroom" {
		t.Errorf("unexpected order: %q, %q", got[0].Id, got[1].Id)
	}
}

func TestAddRoomSuffixesOnCollision(t *testing.T) {
	tpl := kitchenTemplate(t)
	m := New(nil)

	first, err := m.AddRoom(tpl, "")
	if err != nil {
		t.Fatalf("first AddRoom: %v", err)
	}
	if first.Id != "kitchen" || first.Label != "Kitchen" {
		t.Errorf("first room: id=%q label=%q", first.Id, first.Label)
	}
	if first.Confidence != 1.0 {
		t.Errorf("user-added room confidence = %v, want 1.0", first.Confidence)
	}

	second, err := m.AddRoom(tpl, "")
	if err != nil {
		t.Fatalf("second AddRoom: %v", err)
	}
	if second.Id != "kitchen_2" || second.Label != "Kitchen 2" {
		t.Errorf("second room: id=%q label=%q", second.Id, second.Label)
	}

	third, err := m.AddRoom(tpl, "")
	if err != nil {
		t.Fatalf("third AddRoom: %v", err)
	}
	if third.Id != "kitchen_3" {
		t.Errorf("third room id = %q, want kitchen_3", third.Id)
	}

	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestAddRoomCustomLabel(t *testing.T) {
	tpl := kitchenTemplate(t)
	m := New(nil)

	room, err := m.AddRoom(tpl, "Basement Kitchenette")
	if err != nil {
		t.Fatalf("AddRoom: %v", err)
	}
	if room.Label != "Basement Kitchenette" {
		t.Errorf("label = %q", room.Label)
	}
	if room.Id != "kitchen" {
		t.Errorf("id = %q, custom label must not change the id base", room.Id)
	}
}

func TestToggleSurface(t *testing.T) {
	m := New([]entity.CanonicalRoom{{Id: "kitchen", Label: "Kitchen", Confidence: 1}})

	if err := m.ToggleSurface("kitchen", entity.SurfaceWalls, true); err != nil {
		t.Fatalf("ToggleSurface: %v", err)
	}
	room, _ := m.Get("kitchen")
	if !room.Walls {
		t.Error("walls not set")
	}

	if err := m.ToggleSurface("kitchen", entity.SurfaceDoors, true); err == nil {
		t.Error("toggling a countable surface must fail")
	}
	if err := m.ToggleSurface("pantry", entity.SurfaceWalls, true); err == nil {
		t.Error("toggling a missing room must fail")
	}
}

func TestSetSurfaceCountRejectsInvalidAndKeepsPriorState(t *testing.T) {
	m := New([]entity.CanonicalRoom{{Id: "kitchen", Label: "Kitchen", Doors: 2, Confidence: 1}})

	if err := m.SetSurfaceCount("kitchen", entity.SurfaceDoors, -1); err == nil {
		t.Fatal("negative count must be rejected")
	}
	room, _ := m.Get("kitchen")
	if room.Doors != 2 {
		t.Errorf("doors = %d after rejected mutation, want prior value 2", room.Doors)
	}

	if err := m.SetSurfaceCount("kitchen", entity.SurfaceWindows, 3); err != nil {
		t.Fatalf("SetSurfaceCount: %v", err)
	}
	room, _ = m.Get("kitchen")
	if room.Windows != 3 {
		t.Errorf("windows = %d, want 3", room.Windows)
	}
}

func TestRemove(t *testing.T) {
	m := New([]entity.CanonicalRoom{
		{Id: "kitchen", Label: "Kitchen", Confidence: 1},
		{Id: "bathroom", Label: "Bathroom", Confidence: 1},
	})

	if !m.Remove("kitchen") {
		t.Fatal("Remove returned false for existing room")
	}
	if m.Remove("kitchen") {
		t.Error("Remove returned true for already-removed room")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestHasAnySelectedSurfaces(t *testing.T) {
	m := New([]entity.CanonicalRoom{{Id: "kitchen", Label: "Kitchen", Confidence: 1}})
	if m.HasAnySelectedSurfaces() {
		t.Error("empty selection reported as selected")
	}
	if err := m.SetSurfaceCount("kitchen", entity.SurfaceWindows, 1); err != nil {
		t.Fatal(err)
	}
	if !m.HasAnySelectedSurfaces() {
		t.Error("window count not reported as selected")
	}
}

func TestAppendSuffixesDuplicateIds(t *testing.T) {
	m := New(nil)
	if err := m.Append(entity.CanonicalRoom{Id: "bedroom", Label: "Bedroom", Confidence: 1}); err != nil {
		t.Fatal(err)
	}
	if err := m.Append(entity.CanonicalRoom{Id: "bedroom", Label: "Bedroom", Confidence: 1}); err != nil {
		t.Fatal(err)
	}
	rooms := m.Rooms()
	if rooms[1].Id != "bedroom_2" {
		t.Errorf("second id = %q, want bedroom_2", rooms[1].Id)
	}
}

func TestRoomsReturnsCopy(t *testing.T) {
	m := New([]entity.CanonicalRoom{{Id: "kitchen", Label: "Kitchen", Confidence: 1}})
	out := m.Rooms()
	out[0].Walls = true

	room, _ := m.Get("kitchen")
	if room.Walls {
		t.Error("mutating the returned slice leaked into the matrix")
	}
}
