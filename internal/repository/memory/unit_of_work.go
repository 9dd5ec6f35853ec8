package memory

import (
	"context"

	"paper-analysis-be/internal/repository/contract"
	"paper-analysis-be/internal/repository/unitofwork"
)

// Store bundles the in-memory repositories so multiple units of work
// observe the same data, the way GORM repositories share one database.
type Store struct {
	Documents *DocumentRepository
	Jobs      *ProcessingJobRepository
	Steps     *ProcessingStepRepository
	Chunks    *DocumentChunkRepository
	Queries   *SearchQueryRepository
}

func NewStore() *Store {
	docs := NewDocumentRepository()
	return &Store{
		Documents: docs,
		Jobs:      NewProcessingJobRepository(),
		Steps:     NewProcessingStepRepository(),
		Chunks:    NewDocumentChunkRepository(docs),
		Queries:   NewSearchQueryRepository(),
	}
}

// UnitOfWork is a transactionless unitofwork.UnitOfWork over a Store.
type UnitOfWork struct {
	store *Store
}

var _ unitofwork.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.store.Documents
}

func (u *UnitOfWork) ProcessingJobRepository() contract.ProcessingJobRepository {
	return u.store.Jobs
}

func (u *UnitOfWork) ProcessingStepRepository() contract.ProcessingStepRepository {
	return u.store.Steps
}

func (u *UnitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return u.store.Chunks
}

func (u *UnitOfWork) SearchQueryRepository() contract.SearchQueryRepository {
	return u.store.Queries
}

// Factory implements unitofwork.RepositoryFactory over a shared Store.
type Factory struct {
	store *Store
}

func NewFactory(store *Store) *Factory {
	return &Factory{store: store}
}

var _ unitofwork.RepositoryFactory = (*Factory)(nil)

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &UnitOfWork{store: f.store}
}
