package entity

import (
	"time"

	"github.com/google/uuid"
)

// Estimate is a finished, persisted estimate record. Created once when a
// workflow session reaches the document step and is confirmed.
type Estimate struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	ProjectType      ProjectType
	ClientNotes      string
	Transcript       string
	Summary          string
	Rooms            []CanonicalRoom
	LineItems        []LineItem
	Totals           Totals
	TaxRate          float64
	GeneratedContent []DocumentSection
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
