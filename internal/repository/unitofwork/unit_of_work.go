package unitofwork

import (
	"context"

	"paper-analysis-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	ProcessingJobRepository() contract.ProcessingJobRepository
	ProcessingStepRepository() contract.ProcessingStepRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	SearchQueryRepository() contract.SearchQueryRepository
}
