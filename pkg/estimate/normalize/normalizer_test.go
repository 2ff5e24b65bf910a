package normalize

import (
	"reflect"
	"testing"

	"paint-estimate-be/internal/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestNormalizer() *Normalizer {
	return NewNormalizer(DefaultConfidenceThreshold, nopLogger{})
}

func confidence(v float64) *float64 { return &v }

func TestNormalizeStructuredRooms(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize(&entity.ExtractionResult{
		Rooms: []entity.ExtractedRoom{
			{
				RoomId: "kitchen",
				Label:  "Kitchen",
				Surfaces: map[string]interface{}{
					"walls":    true,
					"cabinets": "yes",
					"doors":    float64(2),
				},
				Confidence: confidence(0.9),
			},
		},
	})

	if len(result.Rooms) != 1 {
		t.Fatalf("admitted %d rooms, want 1", len(result.Rooms))
	}
	room := result.Rooms[0]
	if !room.Walls || !room.Cabinets || room.Doors != 2 {
		t.Errorf("surfaces wrong: walls=%v cabinets=%v doors=%d", room.Walls, room.Cabinets, room.Doors)
	}
	if room.Category != "kitchen" || room.Floor != entity.FloorMain {
		t.Errorf("template match missing: category=%q floor=%q", room.Category, room.Floor)
	}
	if room.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", room.Confidence)
	}
}

func TestNormalizeConfidenceGate(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize(&entity.ExtractionResult{
		Rooms: []entity.ExtractedRoom{
			{RoomId: "kitchen", Label: "Kitchen", Surfaces: map[string]interface{}{"walls": true}, Confidence: confidence(0.24)},
			{RoomId: "bathroom", Label: "Bathroom", Surfaces: map[string]interface{}{"walls": true}, Confidence: confidence(0.25)},
		},
	})

	if len(result.Rooms) != 1 {
		t.Fatalf("admitted %d rooms, want 1 (only the one at the threshold)", len(result.Rooms))
	}
	if result.Rooms[0].Id != "bathroom" {
		t.Errorf("admitted %q, want bathroom", result.Rooms[0].Id)
	}
}

func TestNormalizeMissingConfidenceUsesFallback(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize(&entity.ExtractionResult{
		Rooms: []entity.ExtractedRoom{
			{RoomId: "office", Label: "Office", Surfaces: map[string]interface{}{"walls": true}},
		},
	})

	if len(result.Rooms) != 1 {
		t.Fatalf("admitted %d rooms, want 1", len(result.Rooms))
	}
	if result.Rooms[0].Confidence != fallbackConfidence {
		t.Errorf("confidence = %v, want %v", result.Rooms[0].Confidence, fallbackConfidence)
	}
}

func TestNormalizeSkipsMalformedRecords(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize(&entity.ExtractionResult{
		Rooms: []entity.ExtractedRoom{
			{RoomId: float64(42), Label: "Number Id", Surfaces: map[string]interface{}{"walls": true}, Confidence: confidence(0.9)},
			{RoomId: "", Label: "Empty Id", Surfaces: map[string]interface{}{"walls": true}, Confidence: confidence(0.9)},
			{RoomId: "bad_surfaces", Label: "Bad Surfaces", Surfaces: "walls", Confidence: confidence(0.9)},
			{RoomId: "office", Label: "Office", Surfaces: map[string]interface{}{"walls": true}, Confidence: confidence(0.9)},
		},
	})

	if len(result.Rooms) != 1 || result.Rooms[0].Id != "office" {
		t.Fatalf("admitted %v, want only office", result.MatchedIds)
	}
}

func TestNormalizeFlatFallback(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize(&entity.ExtractionResult{
		RoomsToPaint:    []string{"kitchen", "the master bedroom", "observatory"},
		SurfacesToPaint: []string{"walls", "trim"},
		RoomsConfidence: confidence(0.8),
	})

	if len(result.Rooms) != 2 {
		t.Fatalf("admitted %d rooms, want 2 (observatory unmatched)", len(result.Rooms))
	}
	for _, room := range result.Rooms {
		if !room.Walls || !room.Trim {
			t.Errorf("room %s missing uniform surfaces: walls=%v trim=%v", room.Id, room.Walls, room.Trim)
		}
		if room.Confidence != 0.8 {
			t.Errorf("room %s confidence = %v, want 0.8", room.Id, room.Confidence)
		}
	}
}

func TestNormalizeStructuredAllRejectedFallsThroughToFlat(t *testing.T) {
	n := newTestNormalizer()

	result := n.Normalize(&entity.ExtractionResult{
		Rooms: []entity.ExtractedRoom{
			{RoomId: "kitchen", Label: "Kitchen", Surfaces: map[string]interface{}{"walls": true}, Confidence: confidence(0.05)},
		},
		RoomsToPaint:    []string{"bathroom"},
		SurfacesToPaint: []string{"ceiling"},
	})

	if len(result.Rooms) != 1 || result.Rooms[0].Id != "bathroom" {
		t.Fatalf("fallback not taken: admitted %v", result.MatchedIds)
	}
	if !result.Rooms[0].Ceiling {
		t.Error("fallback room missing ceiling surface")
	}
}

func TestNormalizeEmptyExtraction(t *testing.T) {
	n := newTestNormalizer()
	if got := n.Normalize(&entity.ExtractionResult{}); len(got.Rooms) != 0 {
		t.Errorf("empty extraction admitted %d rooms", len(got.Rooms))
	}
	if got := n.Normalize(nil); len(got.Rooms) != 0 {
		t.Errorf("nil extraction admitted %d rooms", len(got.Rooms))
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	n := newTestNormalizer()
	input := &entity.ExtractionResult{
		Rooms: []entity.ExtractedRoom{
			{RoomId: "kitchen", Label: "Kitchen", Surfaces: map[string]interface{}{"walls": true, "doors": float64(2)}, Confidence: confidence(0.9)},
			{RoomId: "bathroom", Label: "Bathroom", Surfaces: map[string]interface{}{"ceiling": true}, Confidence: confidence(0.7)},
		},
	}

	first := n.Normalize(input)
	second := n.Normalize(input)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different output")
	}
}

func TestTruthyCoercion(t *testing.T) {
	tests := []struct {
		in   interface{}
		want bool
	}{
		{nil, false},
		{true, true},
		{false, false},
		{float64(0), false},
		{float64(1), true},
		{"", false},
		{"false", false},
		{"FALSE", false},
		{"yes", true},
		{map[string]interface{}{}, true},
	}
	for _, tt := range tests {
		if got := truthy(tt.in); got != tt.want {
			t.Errorf("truthy(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCountCoercion(t *testing.T) {
	tests := []struct {
		in   interface{}
		want int
	}{
		{nil, 0},
		{float64(3), 3},
		{float64(-2), 0},
		{"4", 4},
		{" 5 ", 5},
		{"many", 0},
		{true, 0},
	}
	for _, tt := range tests {
		if got := count(tt.in); got != tt.want {
			t.Errorf("count(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
