package ai

import (
	"context"

	"paint-estimate-be/internal/entity"
)

// TranscriptionResponse is everything the voice collaborator returns for one
// walkthrough recording. Every field is optional and untrusted.
type TranscriptionResponse struct {
	Transcript string                   `json:"transcript,omitempty"`
	Summary    string                   `json:"summary,omitempty"`
	Extraction *entity.ExtractionResult `json:"extraction,omitempty"`
}

// ContentRequest is the payload sent downstream for marketing copy and
// structured document sections.
type ContentRequest struct {
	EstimateData map[string]string      `json:"estimateData"`
	ProjectType  entity.ProjectType     `json:"projectType"`
	LineItems    []entity.LineItem      `json:"lineItems"`
	Totals       entity.Totals          `json:"totals"`
	RoomsMatrix  []entity.CanonicalRoom `json:"roomsMatrix"`
	ClientNotes  string                 `json:"clientNotes"`
}

// TranscriptionProvider accepts a walkthrough recording and returns the
// transcript plus extraction. Calls are single-flight with no auto-retry:
// the workflow surfaces failures as a retryable error state instead.
type TranscriptionProvider interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (*TranscriptionResponse, error)
}

// ContentProvider turns an estimate snapshot into generated document sections.
type ContentProvider interface {
	GenerateContent(ctx context.Context, req *ContentRequest) ([]entity.DocumentSection, error)
}
