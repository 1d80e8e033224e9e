package receipt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-origination/internal/adapter/repository/mysql"
	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/application"
	domain "loan-origination/internal/domain/receipt"
	"loan-origination/internal/domain/user"
	"loan-origination/internal/testutil/sqlitedb"
	appuc "loan-origination/internal/usecase/application"
	"loan-origination/pkg/id"
)

func ptr[T any](v T) *T { return &v }

func TestScenario_ApplicationToVoidedReceipt(t *testing.T) {
	db := sqlitedb.Open(t)
	ids := id.NewSequence()
	clock := func() time.Time { return fixedNow }
	apps := mysql.NewApplicationRepository(db)
	tx := mysql.NewGormUoW(db)

	loans := appuc.NewUsecase(apps, mysql.NewAuditRepository(db), tx, ids, appuc.WithClock(clock))
	receipts := NewUsecase(mysql.NewReceiptRepository(db), apps, tx, ids, WithClock(clock))

	proc, admin, viewer := as(user.RoleProcessor), as(user.RoleAdmin), as(user.RoleViewer)

	a, err := loans.CreateDraft(proc, application.Fields{LoanAmount: ptr(decimal.NewFromInt(50000))})
	require.NoError(t, err)
	_, err = loans.SaveStep(proc, a.ApplicationID, application.StepPersonalInfo, application.Fields{
		FirstName:    ptr("Ana"),
		LastName:     ptr("Cruz"),
		MobileNumber: ptr("09175550101"),
	})
	require.NoError(t, err)

	// receipts are refused until the application is approved
	_, err = receipts.Issue(proc, a.ApplicationID, cashDetails())
	assert.ErrorIs(t, err, domain.ErrIneligibleApplication)

	_, err = loans.SaveStep(proc, a.ApplicationID, application.StepUndertaking, application.Fields{
		UndertakingSigned:   ptr(true),
		PrivacyNoticeSigned: ptr(true),
	})
	require.NoError(t, err)
	_, err = loans.Submit(proc, a.ApplicationID)
	require.NoError(t, err)
	_, err = loans.Transition(proc, a.ApplicationID, appuc.TransitionRequest{Action: "start_vetting"})
	require.NoError(t, err)

	over := decimal.NewFromInt(60000)
	_, err = loans.Transition(admin, a.ApplicationID, appuc.TransitionRequest{Action: "approve", ApprovedAmount: &over})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	amount := decimal.NewFromInt(45000)
	approved, err := loans.Transition(admin, a.ApplicationID, appuc.TransitionRequest{Action: "approve", ApprovedAmount: &amount})
	require.NoError(t, err)
	assert.Equal(t, application.StatusApproved, approved.Status)

	official, err := receipts.Issue(proc, a.ApplicationID, cashDetails())
	require.NoError(t, err)
	assert.Regexp(t, `^OR-202505-\d{5}$`, official.ReceiptNumber)

	_, err = loans.Transition(proc, a.ApplicationID, appuc.TransitionRequest{Action: "for_disbursement"})
	require.NoError(t, err)

	collection := cashDetails()
	collection.ReceiptType = domain.TypeCollection
	collection.PaymentMethod = domain.PaymentGCash
	collection.Amount = decimal.RequireFromString("1250.75")
	cr, err := receipts.Issue(proc, a.ApplicationID, collection)
	require.NoError(t, err)
	assert.Regexp(t, `^CR-202505-\d{5}$`, cr.ReceiptNumber)

	voided, err := receipts.Void(proc, official.ReceiptID, "issued in error")
	require.NoError(t, err)
	assert.True(t, voided.IsVoided)
	_, err = receipts.Void(proc, official.ReceiptID, "again")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoided)

	list, err := receipts.List(viewer, ListInput{ApplicationID: a.ApplicationID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Items, 2)
	for _, rc := range list.Items {
		assert.Equal(t, a.ApplicationID, rc.ApplicationPublicID)
	}

	got, err := receipts.Get(viewer, official.ReceiptID)
	require.NoError(t, err)
	assert.True(t, got.IsVoided)
	assert.Equal(t, "issued in error", got.VoidReason)

	// a cancelled application takes no further receipts
	_, err = loans.Transition(proc, a.ApplicationID, appuc.TransitionRequest{Action: "cancel", Reason: "borrower withdrew"})
	require.NoError(t, err)
	_, err = receipts.Issue(proc, a.ApplicationID, cashDetails())
	assert.ErrorIs(t, err, domain.ErrIneligibleApplication)
}

func TestScenario_ReceiptNumberCollisionRetries(t *testing.T) {
	db := sqlitedb.Open(t)
	ids := id.NewSequence()
	apps := mysql.NewApplicationRepository(db)
	tx := mysql.NewGormUoW(db)
	rec := &counters{}
	receipts := NewUsecase(mysql.NewReceiptRepository(db), apps, tx, ids,
		WithClock(func() time.Time { return fixedNow }), WithRecorder(rec))

	parent := application.NewDraft(ids.NewID(), "LA-202505-99999", "u-PROCESSOR")
	parent.Status = application.StatusActive
	require.NoError(t, apps.Create(as(user.RoleAdmin), parent))

	first, err := receipts.Issue(as(user.RoleProcessor), parent.ApplicationID, cashDetails())
	require.NoError(t, err)

	ids.Repeat(1)
	second, err := receipts.Issue(as(user.RoleProcessor), parent.ApplicationID, cashDetails())
	require.NoError(t, err)
	assert.NotEqual(t, first.ReceiptNumber, second.ReceiptNumber)
	assert.Equal(t, 1, rec.collisions)
}
