package entity

// ExtractionKind tags which shape of data the voice collaborator returned.
// The normalizer matches on this tag exhaustively instead of sprinkling
// presence checks through the pipeline.
type ExtractionKind string

const (
	ExtractionStructured ExtractionKind = "structured_rooms"
	ExtractionFlat       ExtractionKind = "flat_fields"
	ExtractionEmpty      ExtractionKind = "empty"
)

// ExtractedSurfaces is the loosely-typed surfaces object from the wire.
// Values are kept as interface{} because the upstream service is untrusted:
// booleans may arrive as numbers or strings and counts may be null.
type ExtractedSurfaces map[string]interface{}

// ExtractedRoom mirrors the collaborator wire shape. RoomId and Surfaces are
// interface{} so that wrong-typed payloads survive decoding and can be
// rejected record by record instead of failing the whole response.
type ExtractedRoom struct {
	RoomId     interface{} `json:"room_id"`
	Label      string      `json:"label"`
	Surfaces   interface{} `json:"surfaces"`
	Confidence *float64    `json:"confidence"`
}

// ExtractedField is a single form field recognized in the transcript.
type ExtractedField struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	FormField  string  `json:"formField"`
}

// ExtractionResult is everything the voice collaborator hands the pipeline.
// Every field is optional; Kind() derives the tagged-union variant.
type ExtractionResult struct {
	Rooms           []ExtractedRoom  `json:"rooms,omitempty"`
	Fields          []ExtractedField `json:"fields,omitempty"`
	RoomsToPaint    []string         `json:"roomsToPaint,omitempty"`
	SurfacesToPaint []string         `json:"surfacesToPaint,omitempty"`
	RoomsConfidence *float64         `json:"roomsConfidence,omitempty"`
	Transcript      string           `json:"transcript,omitempty"`
	Summary         string           `json:"summary,omitempty"`
}

func (e *ExtractionResult) Kind() ExtractionKind {
	if e == nil {
		return ExtractionEmpty
	}
	if len(e.Rooms) > 0 {
		return ExtractionStructured
	}
	if len(e.RoomsToPaint) > 0 {
		return ExtractionFlat
	}
	return ExtractionEmpty
}
