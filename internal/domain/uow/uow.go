package uow

import (
	"context"

	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/audit"
	"loan-origination/internal/domain/receipt"
)

// Repos are bound to the surrounding transaction.
type Repos struct {
	Applications application.Repository
	Receipts     receipt.Repository
	Audit        audit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
