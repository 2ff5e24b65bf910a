package specification

import (
	"paint-estimate-be/internal/entity"

	"gorm.io/gorm"
)

// ByProjectType filters estimates by interior/exterior.
type ByProjectType struct {
	ProjectType entity.ProjectType
}

func (s ByProjectType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_type = ?", string(s.ProjectType))
}
