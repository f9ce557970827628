package unitofwork

import (
	"context"

	"ai-medassist-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	AuditLogRepository() contract.AuditLogRepository
}
