package applicationmock

import (
	"context"

	domain "loan-origination/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to success; reads default to context.Canceled.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	SaveDraftFn                   func(ctx context.Context, a *domain.Application) error
	UpdateLifecycleFn             func(ctx context.Context, a *domain.Application, from domain.Status) error
	ListFn                        func(ctx context.Context, f domain.ListFilter, offset, limit int) ([]domain.Application, error)
	CountFn                       func(ctx context.Context, f domain.ListFilter) (int64, error)
	CountByStatusFn               func(ctx context.Context) (map[domain.Status]int64, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) SaveDraft(ctx context.Context, a *domain.Application) error {
	if m.SaveDraftFn != nil {
		return m.SaveDraftFn(ctx, a)
	}
	return nil
}

func (m *Repo) UpdateLifecycle(ctx context.Context, a *domain.Application, from domain.Status) error {
	if m.UpdateLifecycleFn != nil {
		return m.UpdateLifecycleFn(ctx, a, from)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter, offset, limit int) ([]domain.Application, error) {
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

func (m *Repo) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return nil, context.Canceled
}
