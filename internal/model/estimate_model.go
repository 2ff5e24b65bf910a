package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Estimate is the persisted record of a completed workflow. Rooms, line
// items, totals, and generated content are stored as JSON documents: they are
// derived snapshots, never queried relationally.
type Estimate struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"`
	ProjectType      string    `gorm:"type:varchar(16);not null"`
	ClientNotes      string    `gorm:"type:text"`
	Transcript       string    `gorm:"type:text"`
	Summary          string    `gorm:"type:text"`
	Rooms            datatypes.JSON
	LineItems        datatypes.JSON
	Totals           datatypes.JSON
	TaxRate          float64
	GeneratedContent datatypes.JSON
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Estimate) TableName() string {
	return "estimates"
}
