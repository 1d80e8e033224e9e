package application

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"loan-origination/internal/domain/apperr"
	domain "loan-origination/internal/domain/application"
	"loan-origination/internal/domain/audit"
	"loan-origination/internal/domain/uow"
	"loan-origination/internal/domain/user"
	"loan-origination/pkg/id"
)

// DefaultNumberAttempts bounds reference number retries on collision.
const DefaultNumberAttempts = 5

var tracer = otel.Tracer("loan-origination/usecase/application")

type Usecase struct {
	apps     domain.Repository
	audits   audit.Repository
	uow      uow.UnitOfWork
	ids      id.Generator
	now      func() time.Time
	log      *zap.Logger
	metrics  Recorder
	attempts int
}

type Option func(*Usecase)

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func WithRecorder(r Recorder) Option { return func(u *Usecase) { u.metrics = r } }

// WithNumberAttempts sets how many reference numbers CreateDraft tries.
func WithNumberAttempts(n int) Option {
	return func(u *Usecase) {
		if n > 0 {
			u.attempts = n
		}
	}
}

// NewUsecase: pass the read repos, a UoW for write flows and the id source.
func NewUsecase(apps domain.Repository, audits audit.Repository, tx uow.UnitOfWork, ids id.Generator, opts ...Option) *Usecase {
	u := &Usecase{
		apps:     apps,
		audits:   audits,
		uow:      tx,
		ids:      ids,
		now:      time.Now,
		log:      zap.NewNop(),
		metrics:  nopRecorder{},
		attempts: DefaultNumberAttempts,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func actorFrom(ctx context.Context) (user.Actor, error) {
	a, ok := user.ActorFrom(ctx)
	if !ok || a.ID == "" {
		return user.Actor{}, apperr.ErrUnauthenticated
	}
	return a, nil
}

func requireProcessor(ctx context.Context) (user.Actor, error) {
	a, err := actorFrom(ctx)
	if err != nil {
		return a, err
	}
	if !a.CanProcess() {
		return a, apperr.ErrForbidden
	}
	return a, nil
}

// authorize applies role sufficiency per action.
func authorize(a user.Actor, action domain.Action) error {
	if action.RequiresDecision() {
		if !a.CanDecide() {
			return apperr.ErrForbidden
		}
		return nil
	}
	if !a.CanProcess() {
		return apperr.ErrForbidden
	}
	return nil
}

func appendAudit(ctx context.Context, r audit.Repository, actorID, action, entityID string, oldValues, newValues any) error {
	e, err := audit.NewEntry(actorID, action, audit.EntityApplication, entityID, oldValues, newValues)
	if err != nil {
		return err
	}
	return r.Append(ctx, e)
}

// expected reports domain outcomes that are not server faults.
func expected(err error) bool {
	for _, target := range []error{
		apperr.ErrNotFound, apperr.ErrForbidden, apperr.ErrUnauthenticated,
		apperr.ErrConflict, apperr.ErrValidation, domain.ErrInvalidTransition,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrStaleStatus):
		return "stale"
	case errors.Is(err, apperr.ErrValidation):
		return "validation"
	case errors.Is(err, apperr.ErrForbidden), errors.Is(err, apperr.ErrUnauthenticated):
		return "forbidden"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	}
	return "error"
}

func (u *Usecase) finish(span trace.Span, op string, err error, fields ...zap.Field) {
	defer span.End()
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if !expected(err) {
		u.log.Error(op+" failed", append(fields, zap.Error(err))...)
	}
}
