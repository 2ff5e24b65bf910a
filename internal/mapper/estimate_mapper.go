package mapper

import (
	"encoding/json"
	"time"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EstimateMapper struct{}

func NewEstimateMapper() *EstimateMapper {
	return &EstimateMapper{}
}

func (m *EstimateMapper) ToEntity(e *model.Estimate) *entity.Estimate {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	out := &entity.Estimate{
		Id:          e.Id,
		UserId:      e.UserId,
		ProjectType: entity.ProjectType(e.ProjectType),
		ClientNotes: e.ClientNotes,
		Transcript:  e.Transcript,
		Summary:     e.Summary,
		TaxRate:     e.TaxRate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   e.DeletedAt.Valid,
	}

	// Stored JSON snapshots were written by this service; a decode failure
	// means a hand-edited row, so fall back to empty rather than erroring.
	_ = json.Unmarshal(e.Rooms, &out.Rooms)
	_ = json.Unmarshal(e.LineItems, &out.LineItems)
	_ = json.Unmarshal(e.Totals, &out.Totals)
	_ = json.Unmarshal(e.GeneratedContent, &out.GeneratedContent)

	return out
}

func (m *EstimateMapper) ToModel(e *entity.Estimate) *model.Estimate {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	rooms, _ := json.Marshal(e.Rooms)
	items, _ := json.Marshal(e.LineItems)
	tot, _ := json.Marshal(e.Totals)
	content, _ := json.Marshal(e.GeneratedContent)

	return &model.Estimate{
		Id:               e.Id,
		UserId:           e.UserId,
		ProjectType:      string(e.ProjectType),
		ClientNotes:      e.ClientNotes,
		Transcript:       e.Transcript,
		Summary:          e.Summary,
		Rooms:            datatypes.JSON(rooms),
		LineItems:        datatypes.JSON(items),
		Totals:           datatypes.JSON(tot),
		TaxRate:          e.TaxRate,
		GeneratedContent: datatypes.JSON(content),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func (m *EstimateMapper) ToEntities(estimates []*model.Estimate) []*entity.Estimate {
	entities := make([]*entity.Estimate, len(estimates))
	for i, e := range estimates {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
