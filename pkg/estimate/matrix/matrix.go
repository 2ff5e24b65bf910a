// Package matrix holds the mutable collection of canonical rooms that makes
// up the current estimate's scope. Every mutation is all-or-nothing per room:
// the updated record is re-validated and the prior state kept on failure.
package matrix

import (
	"fmt"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/pkg/estimate/schema"
)

type Matrix struct {
	rooms []entity.CanonicalRoom
}

// New wraps an ordered room slice. Rooms that fail validation or collide on
// id are dropped so the no-duplicate-id invariant holds from construction.
func New(rooms []entity.CanonicalRoom) *Matrix {
	m := &Matrix{rooms: make([]entity.CanonicalRoom, 0, len(rooms))}
	seen := make(map[string]bool)
	for _, r := range rooms {
		if seen[r.Id] {
			continue
		}
		if err := schema.ValidateRoom(r); err != nil {
			continue
		}
		seen[r.Id] = true
		m.rooms = append(m.rooms, r)
	}
	return m
}

// Rooms returns a copy of the ordered room list.
func (m *Matrix) Rooms() []entity.CanonicalRoom {
	out := make([]entity.CanonicalRoom, len(m.rooms))
	copy(out, m.rooms)
	return out
}

func (m *Matrix) Len() int {
	return len(m.rooms)
}

func (m *Matrix) Get(roomId string) (entity.CanonicalRoom, bool) {
	for _, r := range m.rooms {
		if r.Id == roomId {
			return r, true
		}
	}
	return entity.CanonicalRoom{}, false
}

func (m *Matrix) has(id string) bool {
	_, ok := m.Get(id)
	return ok
}

// AddRoom admits a new room built from a template. Name collisions are
// resolved by appending an incrementing numeric suffix to both id and label;
// an existing room is never overwritten. The room is created with confidence
// 1.0 because it comes from explicit user action.
func (m *Matrix) AddRoom(tpl entity.RoomTemplate, customLabel string) (entity.CanonicalRoom, error) {
	room := schema.NewRoomFromTemplate(tpl, 1.0)
	if customLabel != "" {
		room.Label = customLabel
	}

	baseId, baseLabel := room.Id, room.Label
	for suffix := 2; m.has(room.Id); suffix++ {
		room.Id = fmt.Sprintf("%s_%d", baseId, suffix)
		room.Label = fmt.Sprintf("%s %d", baseLabel, suffix)
		room.Index = suffix - 1
	}

	if err := schema.ValidateRoom(room); err != nil {
		return entity.CanonicalRoom{}, err
	}
	m.rooms = append(m.rooms, room)
	return room, nil
}

// Remove deletes a room by id. Rooms are never deleted implicitly; this is
// the only removal path.
func (m *Matrix) Remove(roomId string) bool {
	for i, r := range m.rooms {
		if r.Id == roomId {
			m.rooms = append(m.rooms[:i], m.rooms[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleSurface sets a boolean surface on a room. The room is replaced
// immutably: the mutation is rejected and prior state kept if the updated
// record fails validation.
func (m *Matrix) ToggleSurface(roomId, surfaceKey string, value bool) error {
	return m.mutate(roomId, func(r *entity.CanonicalRoom) error {
		switch surfaceKey {
		case entity.SurfaceWalls:
			r.Walls = value
		case entity.SurfaceCeiling:
			r.Ceiling = value
		case entity.SurfaceTrim:
			r.Trim = value
		case entity.SurfaceCabinets:
			r.Cabinets = value
		default:
			return fmt.Errorf("surface %q is not a toggleable surface", surfaceKey)
		}
		return nil
	})
}

// SetSurfaceCount sets a countable surface on a room under the same
// all-or-nothing rule as ToggleSurface.
func (m *Matrix) SetSurfaceCount(roomId, surfaceKey string, count int) error {
	return m.mutate(roomId, func(r *entity.CanonicalRoom) error {
		switch surfaceKey {
		case entity.SurfaceDoors:
			r.Doors = count
		case entity.SurfaceWindows:
			r.Windows = count
		default:
			return fmt.Errorf("surface %q is not a countable surface", surfaceKey)
		}
		return nil
	})
}

func (m *Matrix) mutate(roomId string, apply func(*entity.CanonicalRoom) error) error {
	for i, r := range m.rooms {
		if r.Id != roomId {
			continue
		}
		updated := r
		if err := apply(&updated); err != nil {
			return err
		}
		if err := schema.ValidateRoom(updated); err != nil {
			return err
		}
		m.rooms[i] = updated
		return nil
	}
	return fmt.Errorf("room %q not found", roomId)
}

// HasAnySelectedSurfaces reports whether any room in the matrix contributes
// to pricing.
func (m *Matrix) HasAnySelectedSurfaces() bool {
	for _, r := range m.rooms {
		if r.HasSelectedSurfaces() {
			return true
		}
	}
	return false
}

// EnsureUniqueId suffixes a candidate id until it does not collide with any
// room already in the matrix. Used by the normalizer when structured rooms
// repeat the same id.
func (m *Matrix) EnsureUniqueId(candidate string) string {
	id := candidate
	for suffix := 2; m.has(id); suffix++ {
		id = fmt.Sprintf("%s_%d", candidate, suffix)
	}
	return id
}

// Append admits an already-built room, suffixing its id on collision. Invalid
// rooms are rejected.
func (m *Matrix) Append(room entity.CanonicalRoom) error {
	room.Id = m.EnsureUniqueId(room.Id)
	if err := schema.ValidateRoom(room); err != nil {
		return err
	}
	m.rooms = append(m.rooms, room)
	return nil
}
