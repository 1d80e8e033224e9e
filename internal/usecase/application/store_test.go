package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-origination/internal/adapter/repository/mysql"
	"loan-origination/internal/domain/apperr"
	domain "loan-origination/internal/domain/application"
	"loan-origination/internal/domain/user"
	"loan-origination/internal/testutil/sqlitedb"
	"loan-origination/pkg/id"
)

// newStoreUsecase wires the usecase to an in-memory database.
func newStoreUsecase(t *testing.T, ids id.Generator, opts ...Option) *Usecase {
	t.Helper()
	db := sqlitedb.Open(t)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewUsecase(mysql.NewApplicationRepository(db), mysql.NewAuditRepository(db), mysql.NewGormUoW(db), ids, opts...)
}

func completeFields() domain.Fields {
	return domain.Fields{
		LoanAmount:          ptr(decimal.NewFromInt(50000)),
		FirstName:           ptr("Ana"),
		LastName:            ptr("Cruz"),
		MobileNumber:        ptr("+63 917 555 0101"),
		UndertakingSigned:   ptr(true),
		PrivacyNoticeSigned: ptr(true),
	}
}

func TestStore_SaveStepRoundTrip(t *testing.T) {
	uc := newStoreUsecase(t, id.NewSequence())
	ctx := as(user.RoleProcessor)

	a, err := uc.CreateDraft(ctx, domain.Fields{})
	require.NoError(t, err)

	_, err = uc.SaveStep(ctx, a.ApplicationID, domain.StepIncome, domain.Fields{
		PrimaryIncomeSource: ptr(domain.IncomeEmployment),
		EmployerName:        ptr("Acme Corp"),
		MonthlyNetSalary:    ptr(decimal.RequireFromString("35000.50")),
		YearsEmployed:       ptr(4),
	})
	require.NoError(t, err)
	_, err = uc.SaveStep(ctx, a.ApplicationID, domain.StepPersonalInfo, domain.Fields{
		FirstName:   ptr("Ana"),
		DateOfBirth: ptr("1990-04-15"),
	})
	require.NoError(t, err)

	got, err := uc.Get(ctx, a.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.EmployerName)
	assert.True(t, got.MonthlyNetSalary.Equal(decimal.RequireFromString("35000.50")))
	assert.Equal(t, 4, got.YearsEmployed)
	assert.Equal(t, "Ana", got.FirstName)
	require.NotNil(t, got.DateOfBirth)
	assert.Equal(t, "1990-04-15", got.DateOfBirth.Format("2006-01-02"))
	// the pointer never moves back after saving an earlier step
	assert.Equal(t, int(domain.StepCoBorrower), got.CurrentStep)
	assert.Equal(t, domain.StatusDraft, got.Status)

	trail, err := uc.AuditTrail(ctx, a.ApplicationID)
	require.NoError(t, err)
	require.Len(t, trail, 3)
	assert.Equal(t, "create", trail[0].Action)
	assert.Equal(t, "save_step", trail[2].Action)
}

func TestStore_SaveStepIsIdempotent(t *testing.T) {
	uc := newStoreUsecase(t, id.NewSequence())
	ctx := as(user.RoleProcessor)
	a, err := uc.CreateDraft(ctx, domain.Fields{})
	require.NoError(t, err)

	fields := domain.Fields{
		CivilStatus:        ptr(domain.CivilStatusMarried),
		SpouseFirstName:    ptr("Ben"),
		NumberOfDependents: ptr(2),
	}
	_, err = uc.SaveStep(ctx, a.ApplicationID, domain.StepFamily, fields)
	require.NoError(t, err)
	first, err := uc.Get(ctx, a.ApplicationID)
	require.NoError(t, err)

	_, err = uc.SaveStep(ctx, a.ApplicationID, domain.StepFamily, fields)
	require.NoError(t, err)
	second, err := uc.Get(ctx, a.ApplicationID)
	require.NoError(t, err)

	first.UpdatedAt, second.UpdatedAt = time.Time{}, time.Time{}
	assert.Equal(t, first, second)
}

func TestStore_SubmitRejectsIncompleteDraft(t *testing.T) {
	uc := newStoreUsecase(t, id.NewSequence())
	ctx := as(user.RoleProcessor)
	a, err := uc.CreateDraft(ctx, domain.Fields{FirstName: ptr("Ana")})
	require.NoError(t, err)

	_, err = uc.Submit(ctx, a.ApplicationID)
	fields, ok := apperr.AsValidation(err)
	require.True(t, ok, "want validation error, got %v", err)
	assert.Contains(t, fields, "undertaking_signed")
	assert.NotContains(t, fields, "last_name")

	got, err := uc.Get(ctx, a.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, got.Status)
	assert.Nil(t, got.SubmittedAt)
}

func TestStore_ConcurrentApproveHasOneWinner(t *testing.T) {
	uc := newStoreUsecase(t, id.NewSequence())
	a, err := uc.CreateDraft(as(user.RoleProcessor), completeFields())
	require.NoError(t, err)
	_, err = uc.Submit(as(user.RoleProcessor), a.ApplicationID)
	require.NoError(t, err)

	const racers = 4
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
		errs []error
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Transition(as(user.RoleAdmin), a.ApplicationID, TransitionRequest{Action: "approve"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	for _, err := range errs {
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrStaleStatus), "unexpected error: %v", err)
	}

	got, err := uc.Get(as(user.RoleViewer), a.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.True(t, got.ApprovedAmount.Decimal.Equal(decimal.NewFromInt(50000)))

	trail, err := uc.AuditTrail(as(user.RoleViewer), a.ApplicationID)
	require.NoError(t, err)
	approvals := 0
	for _, e := range trail {
		if e.Action == "approve" {
			approvals++
		}
	}
	assert.Equal(t, 1, approvals)
}

func TestStore_ReferenceCollisionRetries(t *testing.T) {
	seq := id.NewSequence()
	rec := &recorder{}
	uc := newStoreUsecase(t, seq, WithRecorder(rec))
	ctx := as(user.RoleProcessor)

	first, err := uc.CreateDraft(ctx, domain.Fields{})
	require.NoError(t, err)

	seq.Repeat(2)
	second, err := uc.CreateDraft(ctx, domain.Fields{})
	require.NoError(t, err)
	assert.NotEqual(t, first.ReferenceNumber, second.ReferenceNumber)
	assert.Equal(t, 2, rec.collisions)

	res, err := uc.List(ctx, ListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
}

func TestStore_LifecycleToFullyPaid(t *testing.T) {
	uc := newStoreUsecase(t, id.NewSequence())
	proc, admin := as(user.RoleProcessor), as(user.RoleAdmin)

	a, err := uc.CreateDraft(proc, completeFields())
	require.NoError(t, err)

	steps := []struct {
		ctx    context.Context
		req    TransitionRequest
		status domain.Status
	}{
		{proc, TransitionRequest{Action: "submit"}, domain.StatusSubmitted},
		{proc, TransitionRequest{Action: "start_vetting"}, domain.StatusPendingVetting},
		{admin, TransitionRequest{Action: "approve", ApprovedAmount: ptr(decimal.NewFromInt(45000)), Notes: "ok"}, domain.StatusApproved},
		{proc, TransitionRequest{Action: "for_disbursement"}, domain.StatusForDisbursement},
		{proc, TransitionRequest{Action: "activate"}, domain.StatusActive},
		{proc, TransitionRequest{Action: "mark_paid"}, domain.StatusFullyPaid},
	}
	for _, s := range steps {
		out, err := uc.Transition(s.ctx, a.ApplicationID, s.req)
		require.NoError(t, err, s.req.Action)
		assert.Equal(t, s.status, out.Status)
	}

	_, err = uc.Transition(proc, a.ApplicationID, TransitionRequest{Action: "cancel", Reason: "late"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	stats, err := uc.Stats(as(user.RoleViewer))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ByStatus[domain.StatusFullyPaid])
	assert.Equal(t, int64(1), stats.Total)
	require.Len(t, stats.Recent, 1)
	assert.Equal(t, "Ana Cruz", stats.Recent[0].ApplicantName)
}
