package dto

import (
	"paint-estimate-be/internal/entity"

	"github.com/google/uuid"
)

type StartWorkflowRequest struct {
	SessionId *uuid.UUID `json:"session_id"`
}

type WorkflowStateResponse struct {
	SessionId uuid.UUID             `json:"session_id"`
	StepName  string                `json:"step_name"`
	Restored  bool                  `json:"restored,omitempty"`
	State     *entity.WorkflowState `json:"state"`
}

type SelectProjectTypeRequest struct {
	SessionId   uuid.UUID `json:"session_id" validate:"required"`
	ProjectType string    `json:"project_type" validate:"required,oneof=interior exterior"`
}

// CaptureInputRequest completes the input-capture step. Either a recording
// (sent to the transcription collaborator) or an already-transcribed payload
// may be supplied.
type CaptureInputRequest struct {
	SessionId     uuid.UUID                `json:"session_id" validate:"required"`
	AudioBase64   string                   `json:"audio_base64,omitempty"`
	MimeType      string                   `json:"mime_type,omitempty"`
	Transcript    string                   `json:"transcript,omitempty"`
	Summary       string                   `json:"summary,omitempty"`
	ExtractedData *entity.ExtractionResult `json:"extracted_data,omitempty"`
}

type CompleteReviewRequest struct {
	SessionId      uuid.UUID         `json:"session_id" validate:"required"`
	MissingInfo    []string          `json:"missing_info"`
	EstimateFields map[string]string `json:"estimate_fields"`
	ClientNotes    string            `json:"client_notes"`
}

type CompletePricingRequest struct {
	SessionId uuid.UUID              `json:"session_id" validate:"required"`
	Rooms     []entity.CanonicalRoom `json:"rooms" validate:"required"`
	TaxRate   *float64               `json:"tax_rate" validate:"omitempty,gte=0,lte=1"`
}

type CompleteSuggestionsRequest struct {
	SessionId           uuid.UUID `json:"session_id" validate:"required"`
	AcceptedSuggestions []string  `json:"accepted_suggestions"`
}

type GenerateContentRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}

type CompleteContentEditRequest struct {
	SessionId     uuid.UUID                `json:"session_id" validate:"required"`
	EditedContent []entity.DocumentSection `json:"edited_content" validate:"required"`
}

type NavigateRequest struct {
	SessionId     uuid.UUID `json:"session_id" validate:"required"`
	TargetStep    int       `json:"target_step" validate:"gte=0"`
	CompactClient bool      `json:"compact_client"`
	FirstRender   bool      `json:"first_render"`
}

type AddRoomRequest struct {
	SessionId   uuid.UUID `json:"session_id" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	CustomLabel string    `json:"custom_label"`
}

type UpdateSurfaceRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	RoomId    string
	Surface   string `json:"surface" validate:"required,oneof=walls ceiling trim doors windows cabinets"`
	Value     *bool  `json:"value"`
	Count     *int   `json:"count" validate:"omitempty,gte=0"`
}

type RemoveRoomRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	RoomId    string
}

type RestartWorkflowRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}

type CompleteWorkflowRequest struct {
	SessionId    uuid.UUID `json:"session_id" validate:"required"`
	SummaryEmail string    `json:"summary_email" validate:"omitempty,email"`
}

type CompleteWorkflowResponse struct {
	EstimateId uuid.UUID `json:"estimate_id"`
}
