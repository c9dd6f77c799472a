package unitofwork

import (
	"context"

	"kurazhelp-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	DocumentRepository() contract.DocumentRepository
	PreferenceRepository() contract.PreferenceRepository
	SystemLogRepository() contract.SystemLogRepository
}
