package application

import "context"

// ListFilter narrows list and count queries; a zero value matches all.
type ListFilter struct {
	Status Status
}

type Repository interface {
	// Create inserts a new draft; a reference number collision surfaces as
	// ErrDuplicateReferenceNumber.
	Create(ctx context.Context, a *Application) error

	// Get by public application_id
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)

	// Same as above, row-locked; only meaningful inside a transaction
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)

	// SaveDraft persists profile fields and the step pointer of a DRAFT.
	SaveDraft(ctx context.Context, a *Application) error

	// UpdateLifecycle writes status, decision and timestamp columns only if
	// the stored status still equals from; otherwise ErrStaleStatus.
	UpdateLifecycle(ctx context.Context, a *Application, from Status) error

	List(ctx context.Context, f ListFilter, offset, limit int) ([]Application, error)
	Count(ctx context.Context, f ListFilter) (int64, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
