package application

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/apperr"
)

// TransitionInput is the optional payload of an action. Fields an action does
// not use are ignored.
type TransitionInput struct {
	ApprovedAmount decimal.NullDecimal
	InterestRate   decimal.NullDecimal
	Notes          string
	Reason         string
}

// Apply moves a to the status the action leads to and stamps the matching
// timestamp. It checks the status first, then the payload, and mutates a
// only when both pass. Roles are the caller's concern.
func Apply(a *Application, action Action, in TransitionInput, actorID string, now time.Time) error {
	if !action.Valid() {
		return apperr.InvalidField("action", "unknown action")
	}
	if !action.Allows(a.Status) {
		return &InvalidTransitionError{Current: a.Status, Action: action, Allowed: a.Status.AllowedActions()}
	}
	if errs := checkPayload(a, action, in); !errs.Empty() {
		return apperr.Invalid(errs)
	}

	at := now.UTC()
	switch action {
	case ActionSubmit:
		a.SubmittedAt = &at
		a.CurrentStep = int(StepReview)
	case ActionStartVetting:
		a.VettingStartedAt = &at
		a.ProcessedBy = actorID
	case ActionApprove:
		a.ApprovedAt = &at
		a.ApprovedAmount = decimal.NewNullDecimal(a.LoanAmount)
		if in.ApprovedAmount.Valid {
			a.ApprovedAmount = in.ApprovedAmount
		}
		if in.InterestRate.Valid {
			a.InterestRate = in.InterestRate
		}
		a.ApprovalNotes = in.Notes
		a.ProcessedBy = actorID
	case ActionDisapprove:
		a.RejectionReason = in.Reason
		a.ProcessedBy = actorID
	case ActionForDisbursement:
		a.DisbursementAt = &at
	case ActionActivate:
		a.FundsReleasedAt = &at
	case ActionMarkPaid:
		a.CompletedAt = &at
	case ActionCancel:
		a.CancelledAt = &at
		a.RejectionReason = in.Reason
	}
	a.Status = action.Target()
	return nil
}

func checkPayload(a *Application, action Action, in TransitionInput) apperr.FieldErrors {
	errs := apperr.FieldErrors{}
	if action.RequiresReason() && strings.TrimSpace(in.Reason) == "" {
		errs.Add("reason", "is required")
	}
	if action != ActionApprove {
		return errs
	}
	if in.ApprovedAmount.Valid {
		switch {
		case !in.ApprovedAmount.Decimal.IsPositive():
			errs.Add("approved_amount", "must be greater than 0")
		case in.ApprovedAmount.Decimal.GreaterThan(a.LoanAmount):
			errs.Add("approved_amount", "must not exceed the requested loan amount")
		}
	}
	if in.InterestRate.Valid && in.InterestRate.Decimal.IsNegative() {
		errs.Add("interest_rate", "must not be negative")
	}
	return errs
}
