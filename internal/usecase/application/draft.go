package application

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"loan-origination/internal/domain/apperr"
	domain "loan-origination/internal/domain/application"
	"loan-origination/internal/domain/uow"
)

// CreateDraft opens a DRAFT application pre-filled with fields. A reference
// number collision regenerates the number and retries the whole insert.
func (u *Usecase) CreateDraft(ctx context.Context, fields domain.Fields) (out *domain.Application, err error) {
	ctx, span := tracer.Start(ctx, "application.create_draft")
	defer func() { u.finish(span, "create draft", err) }()

	actor, err := requireProcessor(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		now := u.now()
		a := domain.NewDraft(u.ids.NewID(), u.ids.ReferenceNumber(now), actor.ID)
		errs := fields.MergeInto(a)
		errs.Merge(domain.FormatErrors(a))
		if !errs.Empty() {
			return nil, apperr.Invalid(errs)
		}
		a.StampConsent(now)

		err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
			if err := r.Applications.Create(ctx, a); err != nil {
				return err
			}
			return appendAudit(ctx, r.Audit, actor.ID, "create", a.ApplicationID, nil, a.Summary())
		})
		if errors.Is(err, domain.ErrDuplicateReferenceNumber) && attempt < u.attempts {
			u.metrics.NumberCollision("reference")
			u.log.Warn("reference number collision, retrying",
				zap.String("reference_number", a.ReferenceNumber), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}

		span.SetAttributes(attribute.String("application.id", a.ApplicationID))
		u.metrics.ApplicationCreated()
		u.log.Info("draft created",
			zap.String("application_id", a.ApplicationID),
			zap.String("reference_number", a.ReferenceNumber),
			zap.String("actor_id", actor.ID))
		return a, nil
	}
}

// SaveStep merges a partial update into a DRAFT and advances its step
// pointer. Missing required values are accepted; malformed ones are not.
func (u *Usecase) SaveStep(ctx context.Context, applicationID string, step domain.Step, fields domain.Fields) (out *domain.Application, err error) {
	ctx, span := tracer.Start(ctx, "application.save_step")
	span.SetAttributes(attribute.String("application.id", applicationID), attribute.Int("step", int(step)))
	defer func() { u.finish(span, "save step", err, zap.String("application_id", applicationID)) }()

	actor, err := requireProcessor(ctx)
	if err != nil {
		return nil, err
	}
	if !step.Valid() {
		return nil, apperr.InvalidField("step", "unknown step")
	}

	err = u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *domain.Application) error {
		if a.Status != domain.StatusDraft {
			return domain.ErrInvalidState
		}
		prevStep := a.CurrentStep

		errs := fields.MergeInto(a)
		errs.Merge(domain.FormatErrors(a))
		if !errs.Empty() {
			return apperr.Invalid(errs)
		}
		a.StampConsent(u.now())
		a.Advance(step)

		if err := r.Applications.SaveDraft(ctx, a); err != nil {
			return err
		}
		out = a
		return appendAudit(ctx, r.Audit, actor.ID, "save_step", a.ApplicationID,
			map[string]any{"current_step": prevStep},
			map[string]any{"step": int(step), "current_step": a.CurrentStep, "fields": fields})
	})
	if err != nil {
		return nil, err
	}
	u.metrics.DraftSaved(int(step))
	return out, nil
}

// ValidateStep checks a candidate without touching storage. The candidate
// starts from the creation defaults.
func (u *Usecase) ValidateStep(step domain.Step, candidate domain.Fields) StepResult {
	a := domain.NewDraft("", "", "")
	errs := candidate.MergeInto(a)
	errs.Merge(domain.ValidateStep(step, a))
	return StepResult{
		Step:   int(step),
		Name:   step.Name(),
		Valid:  errs.Empty(),
		Errors: errs,
	}
}

// Submit checks the undertaking step and moves the application DRAFT -> SUBMITTED.
func (u *Usecase) Submit(ctx context.Context, applicationID string) (*domain.Application, error) {
	return u.Transition(ctx, applicationID, TransitionRequest{Action: string(domain.ActionSubmit)})
}
