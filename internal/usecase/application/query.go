package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"loan-origination/internal/domain/apperr"
	domain "loan-origination/internal/domain/application"
	"loan-origination/internal/domain/audit"
	"loan-origination/pkg/paging"
)

// recentLimit is how many applications the dashboard shows.
const recentLimit = 5

func (u *Usecase) Get(ctx context.Context, applicationID string) (*domain.Application, error) {
	if _, err := actorFrom(ctx); err != nil {
		return nil, err
	}
	return u.apps.GetByApplicationID(ctx, applicationID)
}

// List pages through applications newest first, optionally by status.
func (u *Usecase) List(ctx context.Context, in ListInput) (*ListResult, error) {
	if _, err := actorFrom(ctx); err != nil {
		return nil, err
	}
	f := domain.ListFilter{Status: domain.Status(in.Status)}
	if in.Status != "" && !f.Status.Valid() {
		return nil, apperr.InvalidField("status", "unknown status")
	}
	p := paging.New(in.Page, in.Limit)

	var (
		rows  []domain.Application
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = u.apps.List(gctx, f, p.Offset(), p.Limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = u.apps.Count(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]domain.Summary, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].Summary())
	}
	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(total),
	}, nil
}

// Stats counts applications per status; every status is present.
func (u *Usecase) Stats(ctx context.Context) (*Stats, error) {
	if _, err := actorFrom(ctx); err != nil {
		return nil, err
	}

	var (
		counts map[domain.Status]int64
		recent []domain.Application
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = u.apps.CountByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = u.apps.List(gctx, domain.ListFilter{}, 0, recentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Stats{ByStatus: make(map[domain.Status]int64, len(domain.Statuses))}
	for _, s := range domain.Statuses {
		n := counts[s]
		out.ByStatus[s] = n
		out.Total += n
	}
	out.Pending = counts[domain.StatusSubmitted] + counts[domain.StatusPendingVetting]
	out.Recent = make([]domain.Summary, 0, len(recent))
	for i := range recent {
		out.Recent = append(out.Recent, recent[i].Summary())
	}
	return out, nil
}

// AuditTrail returns the application's audit entries oldest first.
func (u *Usecase) AuditTrail(ctx context.Context, applicationID string) ([]audit.Entry, error) {
	if _, err := actorFrom(ctx); err != nil {
		return nil, err
	}
	if _, err := u.apps.GetByApplicationID(ctx, applicationID); err != nil {
		return nil, err
	}
	return u.audits.ListByEntity(ctx, audit.EntityApplication, applicationID)
}
