package unitofwork

import "context"

// RepositoryFactory hands out a fresh unit of work per request, so
// concurrent turns never share transaction state.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
