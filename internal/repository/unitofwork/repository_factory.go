package unitofwork

import "context"

// RepositoryFactory hands out one UnitOfWork per service call. The gorm
// factory below and memory.Store both satisfy it.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
