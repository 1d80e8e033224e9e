package receipt

import (
	"context"

	"golang.org/x/sync/errgroup"

	domain "loan-origination/internal/domain/receipt"
	"loan-origination/pkg/paging"
)

func (u *Usecase) Get(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	if _, err := actorFrom(ctx); err != nil {
		return nil, err
	}
	return u.receipts.GetByReceiptID(ctx, receiptID)
}

// List pages through receipts newest first. An application filter must name
// an existing application.
func (u *Usecase) List(ctx context.Context, in ListInput) (*ListResult, error) {
	if _, err := actorFrom(ctx); err != nil {
		return nil, err
	}
	var f domain.ListFilter
	if in.ApplicationID != "" {
		a, err := u.apps.GetByApplicationID(ctx, in.ApplicationID)
		if err != nil {
			return nil, err
		}
		f.ApplicationID = a.ID
	}
	p := paging.New(in.Page, in.Limit)

	var (
		rows  []domain.Receipt
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = u.receipts.List(gctx, f, p.Offset(), p.Limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = u.receipts.Count(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.Receipt{}
	}
	return &ListResult{
		Items:      rows,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(total),
	}, nil
}
