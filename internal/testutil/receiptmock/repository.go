package receiptmock

import (
	"context"

	domain "loan-origination/internal/domain/receipt"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.Receipt) error
	GetByReceiptIDFn          func(ctx context.Context, receiptID string) (*domain.Receipt, error)
	GetByReceiptIDForUpdateFn func(ctx context.Context, receiptID string) (*domain.Receipt, error)
	MarkVoidedFn              func(ctx context.Context, r *domain.Receipt) error
	ListFn                    func(ctx context.Context, f domain.ListFilter, offset, limit int) ([]domain.Receipt, error)
	CountFn                   func(ctx context.Context, f domain.ListFilter) (int64, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Receipt) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByReceiptID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	if m.GetByReceiptIDFn != nil {
		return m.GetByReceiptIDFn(ctx, receiptID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByReceiptIDForUpdate(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	if m.GetByReceiptIDForUpdateFn != nil {
		return m.GetByReceiptIDForUpdateFn(ctx, receiptID)
	}
	return nil, context.Canceled
}

func (m *Repo) MarkVoided(ctx context.Context, r *domain.Receipt) error {
	if m.MarkVoidedFn != nil {
		return m.MarkVoidedFn(ctx, r)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter, offset, limit int) ([]domain.Receipt, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, offset, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) Count(ctx context.Context, f domain.ListFilter) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, f)
	}
	return 0, context.Canceled
}
