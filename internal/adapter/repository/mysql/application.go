package mysql

import (
	"context"
	"fmt"

	"loan-origination/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Identity and lifecycle columns; a draft save must never write them.
var lifecycleColumns = []string{
	"status",
	"submitted_at", "vetting_started_at", "approved_at", "disbursement_at",
	"funds_released_at", "completed_at", "cancelled_at",
	"approved_amount", "interest_rate", "approval_notes", "rejection_reason", "processed_by",
}

var identityColumns = []string{"id", "application_id", "reference_number", "created_by", "created_at"}

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if isDuplicateKey(err) {
		return fmt.Errorf("%w: %s", application.ErrDuplicateReferenceNumber, a.ReferenceNumber)
	}
	return err
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*application.Application, error) {
	var out application.Application
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, application.ErrNotFound)
	}
	return &out, nil
}

// GetByApplicationIDForUpdate takes a row lock (SELECT ... FOR UPDATE).
// Dialects without row locks drop the clause.
func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*application.Application, error) {
	var out application.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ?", applicationID).
		First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, application.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) SaveDraft(ctx context.Context, a *application.Application) error {
	omit := append(append([]string{}, identityColumns...), lifecycleColumns...)
	res := r.db.WithContext(ctx).
		Model(a).
		Where("status = ?", application.StatusDraft).
		Select("*").
		Omit(omit...).
		Updates(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return application.ErrStaleStatus
	}
	return nil
}

func (r *ApplicationRepository) UpdateLifecycle(ctx context.Context, a *application.Application, from application.Status) error {
	res := r.db.WithContext(ctx).
		Model(&application.Application{}).
		Where("id = ? AND status = ?", a.ID, from).
		Updates(map[string]any{
			"status":             a.Status,
			"current_step":       a.CurrentStep,
			"submitted_at":       a.SubmittedAt,
			"vetting_started_at": a.VettingStartedAt,
			"approved_at":        a.ApprovedAt,
			"disbursement_at":    a.DisbursementAt,
			"funds_released_at":  a.FundsReleasedAt,
			"completed_at":       a.CompletedAt,
			"cancelled_at":       a.CancelledAt,
			"approved_amount":    a.ApprovedAmount,
			"interest_rate":      a.InterestRate,
			"approval_notes":     a.ApprovalNotes,
			"rejection_reason":   a.RejectionReason,
			"processed_by":       a.ProcessedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return application.ErrStaleStatus
	}
	return nil
}

func (r *ApplicationRepository) List(ctx context.Context, f application.ListFilter, offset, limit int) ([]application.Application, error) {
	var out []application.Application
	res := r.filtered(ctx, f).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) Count(ctx context.Context, f application.ListFilter) (int64, error) {
	var n int64
	res := r.filtered(ctx, f).Count(&n)
	return n, res.Error
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[application.Status]int64, error) {
	var rows []struct {
		Status application.Status
		Total  int64
	}
	res := r.db.WithContext(ctx).
		Model(&application.Application{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make(map[application.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func (r *ApplicationRepository) filtered(ctx context.Context, f application.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&application.Application{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}
