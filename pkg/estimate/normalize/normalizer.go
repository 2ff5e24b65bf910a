// Package normalize converts untrusted, confidence-scored extraction payloads
// into validated canonical rooms. Malformed records are skipped and logged,
// never propagated: partial extraction is an expected, common case and the
// worst outcome of bad input is an empty room set.
package normalize

import (
	"strconv"
	"strings"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/internal/pkg/logger"
	"paint-estimate-be/pkg/estimate/matrix"
	"paint-estimate-be/pkg/estimate/schema"
)

// DefaultConfidenceThreshold is the acceptance gate distinguishing "plausibly
// mentioned" from noise. Exposed as configuration, not algorithmic logic.
const DefaultConfidenceThreshold = 0.25

// fallbackConfidence is used when the source carries no confidence at all.
const fallbackConfidence = 0.5

// Result is the normalizer output: the admitted rooms in input order plus the
// ids that were matched, for diagnostics and review display.
type Result struct {
	Rooms      []entity.CanonicalRoom
	MatchedIds []string
}

type Normalizer struct {
	threshold float64
	logger    logger.ILogger
}

func NewNormalizer(confidenceThreshold float64, log logger.ILogger) *Normalizer {
	if confidenceThreshold <= 0 {
		confidenceThreshold = DefaultConfidenceThreshold
	}
	return &Normalizer{threshold: confidenceThreshold, logger: log}
}

// Normalize runs the full pipeline over one extraction result. It never
// fails: given identical input the output is identical, and given garbage the
// output degrades to an empty room set.
func (n *Normalizer) Normalize(extracted *entity.ExtractionResult) Result {
	m := matrix.New(nil)

	switch extracted.Kind() {
	case entity.ExtractionStructured:
		n.admitStructuredRooms(m, extracted.Rooms)
		// Structured rooms can all fail the gate; the flat list is still
		// worth a try before giving up.
		if m.Len() == 0 && len(extracted.RoomsToPaint) > 0 {
			n.admitFlatRooms(m, extracted)
		}
	case entity.ExtractionFlat:
		n.admitFlatRooms(m, extracted)
	case entity.ExtractionEmpty:
		n.logger.Warn("normalizer", "extraction carried no room data", nil)
	}

	rooms := m.Rooms()
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.Id)
	}
	return Result{Rooms: rooms, MatchedIds: ids}
}

func (n *Normalizer) admitStructuredRooms(m *matrix.Matrix, extracted []entity.ExtractedRoom) {
	for _, raw := range extracted {
		roomId, ok := raw.RoomId.(string)
		if !ok || roomId == "" {
			n.logger.Warn("normalizer", "skipping extracted room without a usable room_id", map[string]interface{}{
				"room_id": raw.RoomId,
			})
			continue
		}

		surfaces, ok := raw.Surfaces.(map[string]interface{})
		if !ok {
			n.logger.Warn("normalizer", "skipping extracted room with malformed surfaces", map[string]interface{}{
				"room_id": roomId,
			})
			continue
		}

		confidence := fallbackConfidence
		if raw.Confidence != nil {
			confidence = *raw.Confidence
		}
		if confidence < n.threshold {
			n.logger.Info("normalizer", "discarding room below confidence gate", map[string]interface{}{
				"room_id":    roomId,
				"confidence": confidence,
			})
			continue
		}

		label := strings.TrimSpace(raw.Label)
		if label == "" {
			label = roomId
		}

		room := entity.CanonicalRoom{
			Id:         roomId,
			Label:      label,
			Walls:      truthy(surfaces[entity.SurfaceWalls]),
			Ceiling:    truthy(surfaces[entity.SurfaceCeiling]),
			Trim:       truthy(surfaces[entity.SurfaceTrim]),
			Doors:      count(surfaces[entity.SurfaceDoors]),
			Windows:    count(surfaces[entity.SurfaceWindows]),
			Cabinets:   truthy(surfaces[entity.SurfaceCabinets]),
			Confidence: confidence,
		}
		if tpl, matched := schema.MatchTemplate(label); matched {
			room.Category = tpl.Category
			room.Floor = tpl.Floor
		}

		if err := m.Append(room); err != nil {
			n.logger.Warn("normalizer", "dropping room that failed validation after construction", map[string]interface{}{
				"room_id": roomId,
				"error":   err.Error(),
			})
		}
	}
}

func (n *Normalizer) admitFlatRooms(m *matrix.Matrix, extracted *entity.ExtractionResult) {
	confidence := fallbackConfidence
	if extracted.RoomsConfidence != nil {
		confidence = *extracted.RoomsConfidence
	}

	for _, name := range extracted.RoomsToPaint {
		tpl, matched := schema.MatchTemplate(name)
		if !matched {
			n.logger.Warn("normalizer", "dropping unrecognized room mention", map[string]interface{}{
				"name": name,
			})
			continue
		}
		room := schema.NewRoomFromTemplate(tpl, confidence)
		applySurfaceMentions(&room, extracted.SurfacesToPaint)
		if err := m.Append(room); err != nil {
			n.logger.Warn("normalizer", "dropping fallback room that failed validation", map[string]interface{}{
				"name":  name,
				"error": err.Error(),
			})
		}
	}
}

// applySurfaceMentions spreads a flat "surfaces to paint" list uniformly over
// a room. This models the customer mentioning surfaces generally, not
// per-room.
func applySurfaceMentions(room *entity.CanonicalRoom, mentions []string) {
	for _, mention := range mentions {
		s := strings.ToLower(mention)
		switch {
		case strings.Contains(s, "wall"):
			room.Walls = true
		case strings.Contains(s, "ceiling"):
			room.Ceiling = true
		case strings.Contains(s, "trim"), strings.Contains(s, "baseboard"):
			room.Trim = true
		case strings.Contains(s, "door"):
			room.Doors++
		case strings.Contains(s, "window"):
			room.Windows++
		case strings.Contains(s, "cabinet"):
			room.Cabinets = true
		}
	}
}

// truthy coerces a loosely-typed surface flag the way the upstream service
// means it: numbers are true when non-zero, strings when non-empty.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != "" && !strings.EqualFold(val, "false")
	default:
		return true
	}
}

// count coerces a loosely-typed surface count, clamping at zero. Null and
// non-numeric values mean "not mentioned".
func count(v interface{}) int {
	switch val := v.(type) {
	case float64:
		if val < 0 {
			return 0
		}
		return int(val)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || parsed < 0 {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
