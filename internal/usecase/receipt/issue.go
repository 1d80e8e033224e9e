package receipt

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/audit"
	domain "loan-origination/internal/domain/receipt"
	"loan-origination/internal/domain/uow"
)

// Issue records a receipt against an eligible application. The parent row
// stays locked while the receipt is written; a number collision rolls the
// transaction back and starts over with a fresh number.
func (u *Usecase) Issue(ctx context.Context, applicationID string, d domain.Details) (out *domain.Receipt, err error) {
	ctx, span := tracer.Start(ctx, "receipt.issue")
	span.SetAttributes(attribute.String("application.id", applicationID))
	defer func() { u.finish(span, "issue receipt", err, zap.String("application_id", applicationID)) }()

	actor, err := requireProcessor(ctx)
	if err != nil {
		return nil, err
	}
	if errs := d.Validate(); !errs.Empty() {
		return nil, apperr.Invalid(errs)
	}

	for attempt := 1; ; attempt++ {
		var number string
		err = u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *application.Application) error {
			if !a.Status.ReceiptEligible() {
				return domain.ErrIneligibleApplication
			}
			now := u.now()
			number = u.ids.ReceiptNumber(d.ReceiptType.Prefix(), now)
			rc := &domain.Receipt{
				ReceiptID:           u.ids.NewID(),
				ReceiptNumber:       number,
				ApplicationID:       a.ID,
				ApplicationPublicID: a.ApplicationID,
				ReceiptType:         d.ReceiptType,
				Amount:              d.Amount,
				PaymentMethod:       d.PaymentMethod,
				PaymentReference:    d.PaymentReference,
				PaymentDate:         d.PaymentDate,
				PayorName:           d.PayorName,
				PayorAddress:        d.PayorAddress,
				Particulars:         d.Particulars,
				IssuedBy:            actor.ID,
				IssuedAt:            now.UTC(),
			}
			if err := r.Receipts.Create(ctx, rc); err != nil {
				return err
			}
			out = rc
			return appendAudit(ctx, r.Audit, actor.ID, "issue", rc.ReceiptID, nil, rc)
		})
		if errors.Is(err, domain.ErrDuplicateNumber) && attempt < u.attempts {
			u.metrics.NumberCollision("receipt")
			u.log.Warn("receipt number collision, retrying",
				zap.String("receipt_number", number), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	span.SetAttributes(attribute.String("receipt.number", out.ReceiptNumber))
	u.metrics.ReceiptIssued(string(out.ReceiptType))
	u.log.Info("receipt issued",
		zap.String("application_id", applicationID),
		zap.String("receipt_number", out.ReceiptNumber),
		zap.String("amount", out.Amount.StringFixed(2)),
		zap.String("actor_id", actor.ID))
	return out, nil
}

// Void marks a receipt voided. It is one way; a second void is a conflict.
func (u *Usecase) Void(ctx context.Context, receiptID, reason string) (out *domain.Receipt, err error) {
	ctx, span := tracer.Start(ctx, "receipt.void")
	span.SetAttributes(attribute.String("receipt.id", receiptID))
	defer func() { u.finish(span, "void receipt", err, zap.String("receipt_id", receiptID)) }()

	actor, err := requireProcessor(ctx)
	if err != nil {
		return nil, err
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rc, err := r.Receipts.GetByReceiptIDForUpdate(ctx, receiptID)
		if err != nil {
			return err
		}
		if err := rc.Void(reason, actor.ID, u.now()); err != nil {
			return err
		}
		if err := r.Receipts.MarkVoided(ctx, rc); err != nil {
			return err
		}
		out = rc
		return appendAudit(ctx, r.Audit, actor.ID, "void", rc.ReceiptID,
			map[string]any{"is_voided": false},
			map[string]any{"is_voided": true, "void_reason": rc.VoidReason, "voided_by": rc.VoidedBy})
	})
	if err != nil {
		return nil, err
	}

	u.metrics.ReceiptVoided()
	u.log.Info("receipt voided",
		zap.String("receipt_number", out.ReceiptNumber),
		zap.String("actor_id", actor.ID))
	return out, nil
}

func appendAudit(ctx context.Context, r audit.Repository, actorID, action, entityID string, oldValues, newValues any) error {
	e, err := audit.NewEntry(actorID, action, audit.EntityReceipt, entityID, oldValues, newValues)
	if err != nil {
		return err
	}
	return r.Append(ctx, e)
}
