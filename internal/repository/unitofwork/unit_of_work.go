package unitofwork

import (
	"context"

	"paint-estimate-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	EstimateRepository() contract.EstimateRepository
}
