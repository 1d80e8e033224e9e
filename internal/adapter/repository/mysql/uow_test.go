package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/receipt"
	"loan-origination/internal/domain/uow"
	"loan-origination/internal/testutil/sqlitedb"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	var appID string
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		a := makeDraft("LA-202505-00011")
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		if a.ID == 0 {
			t.Fatalf("application auto ID not set")
		}
		appID = a.ApplicationID
		return r.Receipts.Create(ctx, makeReceipt("OR-202505-00011", a.ID, time.Now().UTC()))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Verify post-commit visibility
	if _, err := NewApplicationRepository(db).GetByApplicationID(ctx, appID); err != nil {
		t.Fatalf("application not visible after commit: %v", err)
	}
	if n, _ := NewReceiptRepository(db).Count(ctx, receipt.ListFilter{}); n != 1 {
		t.Fatalf("receipt count = %d", n)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	sentinel := errors.New("boom")

	var appID string
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		a := makeDraft("LA-202505-00012")
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		appID = a.ApplicationID
		return sentinel // force rollback
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want sentinel, got %v", err)
	}

	if _, err := NewApplicationRepository(db).GetByApplicationID(ctx, appID); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected application not found after rollback, got %v", err)
	}
}

func TestGormUoW_WithinApplicationTx(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	repo := NewApplicationRepository(db)

	seed := makeDraft("LA-202505-00013")
	seed.Status = application.StatusSubmitted
	if err := repo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := guow.WithinApplicationTx(ctx, seed.ApplicationID, func(r uow.Repos, a *application.Application) error {
		if a == nil || a.ID != seed.ID || a.Status != application.StatusSubmitted {
			t.Fatalf("unexpected application passed to fn: %+v", a)
		}
		from := a.Status
		if err := application.Apply(a, application.ActionStartVetting, application.TransitionInput{}, "u-proc", time.Now()); err != nil {
			return err
		}
		return r.Applications.UpdateLifecycle(ctx, a, from)
	})
	if err != nil {
		t.Fatalf("WithinApplicationTx: %v", err)
	}

	got, _ := repo.GetByApplicationID(ctx, seed.ApplicationID)
	if got.Status != application.StatusPendingVetting || got.VettingStartedAt == nil {
		t.Fatalf("transition not committed: %+v", got)
	}

	err = guow.WithinApplicationTx(ctx, "cccccccccccccccccccccccccccccccc", func(uow.Repos, *application.Application) error {
		t.Fatalf("fn must not run for a missing application")
		return nil
	})
	if !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
