package mysql

import (
	"context"
	"fmt"

	"loan-origination/internal/domain/receipt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReceiptRepository struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) *ReceiptRepository { return &ReceiptRepository{db: db} }

func (r *ReceiptRepository) Create(ctx context.Context, rc *receipt.Receipt) error {
	err := r.db.WithContext(ctx).Create(rc).Error
	if isDuplicateKey(err) {
		return fmt.Errorf("%w: %s", receipt.ErrDuplicateNumber, rc.ReceiptNumber)
	}
	return err
}

func (r *ReceiptRepository) GetByReceiptID(ctx context.Context, receiptID string) (*receipt.Receipt, error) {
	var out receipt.Receipt
	res := r.db.WithContext(ctx).Where("receipt_id = ?", receiptID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, receipt.ErrNotFound)
	}
	return &out, nil
}

func (r *ReceiptRepository) GetByReceiptIDForUpdate(ctx context.Context, receiptID string) (*receipt.Receipt, error) {
	var out receipt.Receipt
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("receipt_id = ?", receiptID).
		First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, receipt.ErrNotFound)
	}
	return &out, nil
}

func (r *ReceiptRepository) MarkVoided(ctx context.Context, rc *receipt.Receipt) error {
	res := r.db.WithContext(ctx).
		Model(&receipt.Receipt{}).
		Where("id = ? AND is_voided = ?", rc.ID, false).
		Updates(map[string]any{
			"is_voided":   true,
			"voided_by":   rc.VoidedBy,
			"voided_at":   rc.VoidedAt,
			"void_reason": rc.VoidReason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return receipt.ErrAlreadyVoided
	}
	return nil
}

func (r *ReceiptRepository) List(ctx context.Context, f receipt.ListFilter, offset, limit int) ([]receipt.Receipt, error) {
	var out []receipt.Receipt
	res := r.filtered(ctx, f).
		Order("issued_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *ReceiptRepository) Count(ctx context.Context, f receipt.ListFilter) (int64, error) {
	var n int64
	res := r.filtered(ctx, f).Count(&n)
	return n, res.Error
}

func (r *ReceiptRepository) filtered(ctx context.Context, f receipt.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&receipt.Receipt{})
	if f.ApplicationID != 0 {
		q = q.Where("application_id = ?", f.ApplicationID)
	}
	return q
}
