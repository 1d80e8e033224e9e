package receipt

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/application"
	domain "loan-origination/internal/domain/receipt"
	"loan-origination/internal/domain/uow"
	"loan-origination/internal/domain/user"
	"loan-origination/pkg/id"
)

// DefaultNumberAttempts bounds receipt number retries on collision.
const DefaultNumberAttempts = 5

var tracer = otel.Tracer("loan-origination/usecase/receipt")

type Usecase struct {
	receipts domain.Repository
	apps     application.Repository
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

// WithNumberAttempts sets how many receipt numbers Issue tries.
func WithNumberAttempts(n int) Option {
	return func(u *Usecase) {
		if n > 0 {
			u.attempts = n
		}
	}
}

func NewUsecase(receipts domain.Repository, apps application.Repository, tx uow.UnitOfWork, ids id.Generator, opts ...Option) *Usecase {
	u := &Usecase{
		receipts: receipts,
		apps:     apps,
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

func (u *Usecase) finish(span trace.Span, op string, err error, fields ...zap.Field) {
	defer span.End()
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errors.Is(err, apperr.ErrUnavailable) || !isDomainError(err) {
		u.log.Error(op+" failed", append(fields, zap.Error(err))...)
	}
}

func isDomainError(err error) bool {
	for _, target := range []error{
		apperr.ErrNotFound, apperr.ErrForbidden, apperr.ErrUnauthenticated,
		apperr.ErrConflict, apperr.ErrValidation, apperr.ErrUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
