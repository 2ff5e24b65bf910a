package dto

import (
	"time"

	"paint-estimate-be/internal/entity"

	"github.com/google/uuid"
)

type EstimateSummaryResponse struct {
	Id          uuid.UUID          `json:"id"`
	ProjectType entity.ProjectType `json:"project_type"`
	RoomCount   int                `json:"room_count"`
	Totals      entity.Totals      `json:"totals"`
	CreatedAt   time.Time          `json:"created_at"`
}

type ShowEstimateResponse struct {
	Id               uuid.UUID                `json:"id"`
	ProjectType      entity.ProjectType       `json:"project_type"`
	ClientNotes      string                   `json:"client_notes,omitempty"`
	Transcript       string                   `json:"transcript,omitempty"`
	Summary          string                   `json:"summary,omitempty"`
	Rooms            []entity.CanonicalRoom   `json:"rooms"`
	LineItems        []entity.LineItem        `json:"line_items"`
	Totals           entity.Totals            `json:"totals"`
	TaxRate          float64                  `json:"tax_rate"`
	GeneratedContent []entity.DocumentSection `json:"generated_content,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        *time.Time               `json:"updated_at,omitempty"`
}

// PublishEstimateCompletedMessage rides the in-process bus from workflow
// completion to the notification consumer.
type PublishEstimateCompletedMessage struct {
	EstimateId   uuid.UUID `json:"estimate_id"`
	UserId       uuid.UUID `json:"user_id"`
	SummaryEmail string    `json:"summary_email,omitempty"`
}
