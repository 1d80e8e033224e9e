package application

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/apperr"
)

type Step int

const (
	StepApplicationType Step = iota + 1
	StepLoanDetails
	StepPersonalInfo
	StepIdentification
	StepCollateral
	StepResidence
	StepFamily
	StepIncome
	StepCoBorrower
	StepReferences
	StepUndertaking
	StepReview
)

// StepCount is the number of wizard steps; the last one is the review.
const StepCount = int(StepReview)

const dateLayout = "2006-01-02"

const (
	msgRequired = "is required"
	msgAccept   = "must be accepted"
	msgNegative = "must not be negative"
)

var reMobile = regexp.MustCompile(`^\+?[0-9][0-9 -]{6,18}$`)

type stepRules struct {
	name     string
	required func(a *Application, errs apperr.FieldErrors)
	format   func(a *Application, errs apperr.FieldErrors)
}

var steps = [StepCount]stepRules{
	{name: "Application Type", format: formatApplicationType},
	{name: "Loan Details", required: requireLoanDetails, format: formatLoanDetails},
	{name: "Personal Info", required: requirePersonalInfo, format: formatPersonalInfo},
	{name: "ID & Education", required: requireIdentification},
	{name: "Collateral", format: formatCollateral},
	{name: "Residence", required: requireResidence, format: formatResidence},
	{name: "Family Info", required: requireFamily, format: formatFamily},
	{name: "Income Source", required: requireIncome, format: formatIncome},
	{name: "Co-Borrower", required: requireCoBorrower, format: formatCoBorrower},
	{name: "References", required: requireReferences},
	{name: "Undertaking", required: requireUndertaking},
	{name: "Review"},
}

func (s Step) Valid() bool { return s >= StepApplicationType && s <= StepReview }

func (s Step) Name() string {
	if !s.Valid() {
		return ""
	}
	return steps[s-1].name
}

// ParseStep accepts the 1-based step number as text.
func ParseStep(raw string) (Step, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !Step(n).Valid() {
		return 0, apperr.InvalidField("step", fmt.Sprintf("must be between 1 and %d", StepCount))
	}
	return Step(n), nil
}

// ValidateStep runs the required, conditional and format rules of a step
// against a candidate record. The review step aggregates every step. The
// result is empty when the step is complete.
func ValidateStep(step Step, a *Application) apperr.FieldErrors {
	errs := apperr.FieldErrors{}
	if !step.Valid() {
		errs.Add("step", fmt.Sprintf("must be between 1 and %d", StepCount))
		return errs
	}
	if step == StepReview {
		for i := range steps {
			runStep(i, a, errs)
		}
		return errs
	}
	runStep(int(step)-1, a, errs)
	return errs
}

// FormatErrors runs only the format rules of every step. Draft saves use it
// so partially filled steps are accepted while malformed values are not.
func FormatErrors(a *Application) apperr.FieldErrors {
	errs := apperr.FieldErrors{}
	for _, r := range steps {
		if r.format != nil {
			r.format(a, errs)
		}
	}
	return errs
}

func runStep(i int, a *Application, errs apperr.FieldErrors) {
	if r := steps[i].required; r != nil {
		r(a, errs)
	}
	if f := steps[i].format; f != nil {
		f(a, errs)
	}
}

// Advance moves the step pointer forward past a saved step. It never
// regresses and stops at the review step.
func (a *Application) Advance(saved Step) {
	next := int(saved) + 1
	if next > StepCount {
		next = StepCount
	}
	if next > a.CurrentStep {
		a.CurrentStep = next
	}
}

// StampConsent records when both consents first hold together.
func (a *Application) StampConsent(now time.Time) {
	if a.SignedAt == nil && a.UndertakingSigned && a.PrivacyNoticeSigned {
		at := now.UTC()
		a.SignedAt = &at
	}
}

func requireLoanDetails(a *Application, errs apperr.FieldErrors) {
	if !a.LoanAmount.IsPositive() {
		errs.Add("loan_amount", "must be greater than 0")
	}
	if a.LoanTermMonths == 0 {
		errs.Add("loan_term_months", msgRequired)
	}
}

func requirePersonalInfo(a *Application, errs apperr.FieldErrors) {
	requireText(errs, "first_name", a.FirstName)
	requireText(errs, "last_name", a.LastName)
	requireText(errs, "mobile_number", a.MobileNumber)
}

func requireIdentification(a *Application, errs apperr.FieldErrors) {
	if strings.TrimSpace(a.PrimaryIDType) != "" {
		requireText(errs, "primary_id_number", a.PrimaryIDNumber)
	}
}

func requireResidence(a *Application, errs apperr.FieldErrors) {
	if !a.PermanentSameAsPresent {
		requireText(errs, "permanent_street", a.PermanentStreet)
		requireText(errs, "permanent_city", a.PermanentCity)
	}
}

func requireFamily(a *Application, errs apperr.FieldErrors) {
	if a.CivilStatus == CivilStatusMarried {
		requireText(errs, "spouse_first_name", a.SpouseFirstName)
		requireText(errs, "spouse_last_name", a.SpouseLastName)
	}
}

func requireIncome(a *Application, errs apperr.FieldErrors) {
	switch a.PrimaryIncomeSource {
	case IncomeEmployment:
		requireText(errs, "employer_name", a.EmployerName)
	case IncomeBusiness:
		requireText(errs, "business_name", a.BusinessName)
	}
}

func requireCoBorrower(a *Application, errs apperr.FieldErrors) {
	if a.HasCoBorrower {
		requireText(errs, "co_borrower_first_name", a.CoBorrowerFirstName)
		requireText(errs, "co_borrower_last_name", a.CoBorrowerLastName)
	}
}

func requireReferences(a *Application, errs apperr.FieldErrors) {
	if strings.TrimSpace(a.CharacterReferenceName) != "" {
		requireText(errs, "character_reference_contact", a.CharacterReferenceContact)
	}
	if strings.TrimSpace(a.TradeReferenceName) != "" {
		requireText(errs, "trade_reference_contact", a.TradeReferenceContact)
	}
}

func requireUndertaking(a *Application, errs apperr.FieldErrors) {
	if !a.UndertakingSigned {
		errs.Add("undertaking_signed", msgAccept)
	}
	if !a.PrivacyNoticeSigned {
		errs.Add("privacy_notice_signed", msgAccept)
	}
}

func formatApplicationType(a *Application, errs apperr.FieldErrors) {
	oneOf(errs, "application_type", string(a.ApplicationType), false,
		string(ApplicationTypeNew), string(ApplicationTypeRenewal))
}

func formatLoanDetails(a *Application, errs apperr.FieldErrors) {
	oneOf(errs, "loan_product_type", string(a.LoanProductType), false,
		string(ProductPersonal), string(ProductAuto), string(ProductHousing), string(ProductBusiness))
	nonNegative(errs, "loan_amount", a.LoanAmount)
	if a.LoanTermMonths != 0 && !validTerm(a.LoanTermMonths) {
		errs.Add("loan_term_months", "must be one of 6, 12, 18, 24, 36, 48, 60")
	}
}

func formatPersonalInfo(a *Application, errs apperr.FieldErrors) {
	oneOf(errs, "gender", a.Gender, true, "MALE", "FEMALE")
	oneOf(errs, "civil_status", a.CivilStatus, true,
		CivilStatusSingle, CivilStatusMarried, CivilStatusWidowed, CivilStatusSeparated)
	if m := strings.TrimSpace(a.MobileNumber); m != "" && !reMobile.MatchString(m) {
		errs.Add("mobile_number", "must be a valid phone number")
	}
	if e := strings.TrimSpace(a.EmailAddress); e != "" {
		if addr, err := mail.ParseAddress(e); err != nil || addr.Address != e {
			errs.Add("email_address", "must be a valid email address")
		}
	}
}

func formatCollateral(a *Application, errs apperr.FieldErrors) {
	oneOf(errs, "collateral_type", a.CollateralType, true, "NONE", "VEHICLE", "REAL_ESTATE", "OTHER")
	nonNegative(errs, "collateral_value", a.CollateralValue)
}

func formatResidence(a *Application, errs apperr.FieldErrors) {
	oneOf(errs, "residence_ownership", a.ResidenceOwnership, true, "OWNED", "RENTED", "LIVING_WITH_RELATIVES")
	nonNegativeCount(errs, "residence_years", a.ResidenceYears)
	nonNegative(errs, "monthly_rent", a.MonthlyRent)
}

func formatFamily(a *Application, errs apperr.FieldErrors) {
	nonNegative(errs, "spouse_monthly_income", a.SpouseMonthlyIncome)
	nonNegativeCount(errs, "number_of_dependents", a.NumberOfDependents)
}

func formatIncome(a *Application, errs apperr.FieldErrors) {
	oneOf(errs, "primary_income_source", a.PrimaryIncomeSource, true,
		IncomeEmployment, IncomeBusiness, IncomeRemittance, IncomeOther)
	nonNegativeCount(errs, "years_employed", a.YearsEmployed)
	nonNegative(errs, "monthly_net_salary", a.MonthlyNetSalary)
	nonNegative(errs, "business_net_income", a.BusinessNetIncome)
	nonNegative(errs, "other_income", a.OtherIncome)
	nonNegative(errs, "monthly_expenses", a.MonthlyExpenses)
	nonNegative(errs, "existing_loan_payments", a.ExistingLoanPayments)
}

func formatCoBorrower(a *Application, errs apperr.FieldErrors) {
	nonNegative(errs, "co_borrower_monthly_income", a.CoBorrowerMonthlyIncome)
}

func requireText(errs apperr.FieldErrors, field, v string) {
	if strings.TrimSpace(v) == "" {
		errs.Add(field, msgRequired)
	}
}

func oneOf(errs apperr.FieldErrors, field, v string, allowEmpty bool, options ...string) {
	if v == "" && allowEmpty {
		return
	}
	for _, o := range options {
		if v == o {
			return
		}
	}
	errs.Add(field, "must be one of "+strings.Join(options, ", "))
}

func nonNegative(errs apperr.FieldErrors, field string, d decimal.Decimal) {
	if d.IsNegative() {
		errs.Add(field, msgNegative)
	}
}

func nonNegativeCount(errs apperr.FieldErrors, field string, n int) {
	if n < 0 {
		errs.Add(field, msgNegative)
	}
}

func validTerm(months int) bool {
	for _, t := range TermOptions {
		if t == months {
			return true
		}
	}
	return false
}
