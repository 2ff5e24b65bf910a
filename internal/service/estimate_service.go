package service

import (
	"context"
	"fmt"

	"paint-estimate-be/internal/dto"
	"paint-estimate-be/internal/entity"
	"paint-estimate-be/internal/pkg/logger"
	"paint-estimate-be/internal/repository/specification"
	"paint-estimate-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IEstimateService interface {
	List(ctx context.Context, userId uuid.UUID, projectType string, limit, offset int) ([]dto.EstimateSummaryResponse, int64, error)
	Show(ctx context.Context, userId, estimateId uuid.UUID) (*dto.ShowEstimateResponse, error)
	Delete(ctx context.Context, userId, estimateId uuid.UUID) error
}

type estimateService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewEstimateService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IEstimateService {
	return &estimateService{uowFactory: uowFactory, logger: log}
}

func (s *estimateService) List(ctx context.Context, userId uuid.UUID, projectType string, limit, offset int) ([]dto.EstimateSummaryResponse, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	filters := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if projectType != "" {
		filters = append(filters, specification.ByProjectType{ProjectType: entity.ProjectType(projectType)})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.EstimateRepository()

	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	estimates, err := repo.FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]dto.EstimateSummaryResponse, 0, len(estimates))
	for _, e := range estimates {
		summaries = append(summaries, dto.EstimateSummaryResponse{
			Id:          e.Id,
			ProjectType: e.ProjectType,
			RoomCount:   len(e.Rooms),
			Totals:      e.Totals,
			CreatedAt:   e.CreatedAt,
		})
	}
	return summaries, total, nil
}

func (s *estimateService) findOwned(ctx context.Context, userId, estimateId uuid.UUID) (*entity.Estimate, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	estimate, err := uow.EstimateRepository().FindOne(ctx,
		specification.ByID{ID: estimateId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if estimate == nil {
		return nil, fmt.Errorf("estimate %s not found", estimateId)
	}
	return estimate, nil
}

func (s *estimateService) Show(ctx context.Context, userId, estimateId uuid.UUID) (*dto.ShowEstimateResponse, error) {
	e, err := s.findOwned(ctx, userId, estimateId)
	if err != nil {
		return nil, err
	}

	return &dto.ShowEstimateResponse{
		Id:               e.Id,
		ProjectType:      e.ProjectType,
		ClientNotes:      e.ClientNotes,
		Transcript:       e.Transcript,
		Summary:          e.Summary,
		Rooms:            e.Rooms,
		LineItems:        e.LineItems,
		Totals:           e.Totals,
		TaxRate:          e.TaxRate,
		GeneratedContent: e.GeneratedContent,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}, nil
}

func (s *estimateService) Delete(ctx context.Context, userId, estimateId uuid.UUID) error {
	// Ownership check before the delete; the repository deletes by id alone.
	e, err := s.findOwned(ctx, userId, estimateId)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.EstimateRepository().Delete(ctx, e.Id); err != nil {
		return err
	}

	s.logger.Info("estimate", "estimate deleted", map[string]interface{}{
		"estimate_id": estimateId,
		"user_id":     userId,
	})
	return nil
}
