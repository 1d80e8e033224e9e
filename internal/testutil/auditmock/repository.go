package auditmock

import (
	"context"
	"sync"

	domain "loan-origination/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo records appended entries in memory unless AppendFn is set.
type Repo struct {
	AppendFn       func(ctx context.Context, e *domain.Entry) error
	ListByEntityFn func(ctx context.Context, entityType, entityID string) ([]domain.Entry, error)

	mu      sync.Mutex
	Entries []domain.Entry
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.mu.Lock()
	m.Entries = append(m.Entries, *e)
	m.mu.Unlock()
	return nil
}

func (m *Repo) ListByEntity(ctx context.Context, entityType, entityID string) ([]domain.Entry, error) {
	if m.ListByEntityFn != nil {
		return m.ListByEntityFn(ctx, entityType, entityID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Entry
	for _, e := range m.Entries {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Actions lists the recorded actions in order.
func (m *Repo) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.Action
	}
	return out
}
