package implementation

import (
	"context"
	"errors"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/internal/mapper"
	"paint-estimate-be/internal/model"
	"paint-estimate-be/internal/repository/contract"
	"paint-estimate-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EstimateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EstimateMapper
}

func NewEstimateRepository(db *gorm.DB) contract.EstimateRepository {
	return &EstimateRepositoryImpl{
		db:     db,
		mapper: mapper.NewEstimateMapper(),
	}
}

func (r *EstimateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EstimateRepositoryImpl) Create(ctx context.Context, estimate *entity.Estimate) error {
	m := r.mapper.ToModel(estimate)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*estimate = *r.mapper.ToEntity(m)
	return nil
}

func (r *EstimateRepositoryImpl) Update(ctx context.Context, estimate *entity.Estimate) error {
	m := r.mapper.ToModel(estimate)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*estimate = *r.mapper.ToEntity(m)
	return nil
}

func (r *EstimateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Estimate{}, id).Error
}

func (r *EstimateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Estimate, error) {
	var m model.Estimate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EstimateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Estimate, error) {
	var models []*model.Estimate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EstimateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Estimate{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
