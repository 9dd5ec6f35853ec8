package unitofwork

import "context"

// RepositoryFactory hands out a fresh UnitOfWork per request or pipeline
// run. Services depend on this, not on a database handle, so tests swap in
// the in-memory factory.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
