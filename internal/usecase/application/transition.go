package application

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"loan-origination/internal/domain/apperr"
	domain "loan-origination/internal/domain/application"
	"loan-origination/internal/domain/uow"
)

// Transition applies an action under the application row lock. Role checks
// run before the lock, status and payload checks before any write, and the
// write itself only lands if the status is still the one that was read.
func (u *Usecase) Transition(ctx context.Context, applicationID string, req TransitionRequest) (out *domain.Application, err error) {
	action := domain.Action(req.Action)
	ctx, span := tracer.Start(ctx, "application.transition")
	span.SetAttributes(attribute.String("application.id", applicationID), attribute.String("action", req.Action))
	defer func() {
		u.metrics.TransitionRecorded(req.Action, outcome(err))
		u.finish(span, "transition", err, zap.String("application_id", applicationID), zap.String("action", req.Action))
	}()

	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if !action.Valid() {
		return nil, apperr.InvalidField("action", "unknown action")
	}
	if err := authorize(actor, action); err != nil {
		return nil, err
	}

	var from domain.Status
	err = u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *domain.Application) error {
		from = a.Status
		if action == domain.ActionSubmit && action.Allows(a.Status) {
			if errs := domain.ValidateStep(domain.StepUndertaking, a); !errs.Empty() {
				return apperr.Invalid(errs)
			}
		}
		if err := domain.Apply(a, action, req.input(), actor.ID, u.now()); err != nil {
			return err
		}
		if err := r.Applications.UpdateLifecycle(ctx, a, from); err != nil {
			return err
		}
		out = a
		return appendAudit(ctx, r.Audit, actor.ID, string(action), a.ApplicationID,
			map[string]any{"status": from},
			transitionSnapshot(a))
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("application transitioned",
		zap.String("application_id", applicationID),
		zap.String("action", req.Action),
		zap.String("from", string(from)),
		zap.String("to", string(out.Status)),
		zap.String("actor_id", actor.ID))
	return out, nil
}

func transitionSnapshot(a *domain.Application) map[string]any {
	s := map[string]any{"status": a.Status}
	if a.ApprovedAmount.Valid {
		s["approved_amount"] = a.ApprovedAmount.Decimal
	}
	if a.InterestRate.Valid {
		s["interest_rate"] = a.InterestRate.Decimal
	}
	if a.RejectionReason != "" {
		s["rejection_reason"] = a.RejectionReason
	}
	if a.ProcessedBy != "" {
		s["processed_by"] = a.ProcessedBy
	}
	return s
}
