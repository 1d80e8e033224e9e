package receipt

import "context"

// ListFilter narrows listing; ApplicationID is the numeric FK, 0 matches all.
type ListFilter struct {
	ApplicationID uint64
}

type Repository interface {
	// Create a new receipt; a number collision surfaces as ErrDuplicateNumber
	Create(ctx context.Context, r *Receipt) error

	// Get by public receipt_id
	GetByReceiptID(ctx context.Context, receiptID string) (*Receipt, error)
	GetByReceiptIDForUpdate(ctx context.Context, receiptID string) (*Receipt, error)

	// MarkVoided writes the void fields only while the row is not voided yet;
	// otherwise ErrAlreadyVoided.
	MarkVoided(ctx context.Context, r *Receipt) error

	// List newest first
	List(ctx context.Context, f ListFilter, offset, limit int) ([]Receipt, error)
	Count(ctx context.Context, f ListFilter) (int64, error)
}
