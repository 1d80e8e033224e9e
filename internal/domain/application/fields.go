package application

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/apperr"
)

// Fields is a partial update of the applicant profile. Nil means "leave as
// is"; a non-nil pointer overwrites the stored value, including with a zero
// value. Dates travel as YYYY-MM-DD.
type Fields struct {
	ApplicationType *ApplicationType `json:"application_type,omitempty"`
	ReferralSource  *string          `json:"referral_source,omitempty"`

	LoanProductType *ProductType     `json:"loan_product_type,omitempty"`
	LoanAmount      *decimal.Decimal `json:"loan_amount,omitempty"`
	LoanTermMonths  *int             `json:"loan_term_months,omitempty"`
	LoanPurpose     *string          `json:"loan_purpose,omitempty"`

	FirstName        *string `json:"first_name,omitempty"`
	MiddleName       *string `json:"middle_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	Suffix           *string `json:"suffix,omitempty"`
	DateOfBirth      *string `json:"date_of_birth,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	CivilStatus      *string `json:"civil_status,omitempty"`
	Nationality      *string `json:"nationality,omitempty"`
	MotherMaidenName *string `json:"mother_maiden_name,omitempty"`
	MobileNumber     *string `json:"mobile_number,omitempty"`
	EmailAddress     *string `json:"email_address,omitempty"`
	PresentStreet    *string `json:"present_street,omitempty"`
	PresentBarangay  *string `json:"present_barangay,omitempty"`
	PresentCity      *string `json:"present_city,omitempty"`
	PresentProvince  *string `json:"present_province,omitempty"`
	PresentZipCode   *string `json:"present_zip_code,omitempty"`

	PrimaryIDType    *string `json:"primary_id_type,omitempty"`
	PrimaryIDNumber  *string `json:"primary_id_number,omitempty"`
	PrimaryIDExpiry  *string `json:"primary_id_expiry,omitempty"`
	TIN              *string `json:"tin,omitempty"`
	SSSGSISNumber    *string `json:"sss_gsis_number,omitempty"`
	HighestEducation *string `json:"highest_education,omitempty"`

	CollateralType        *string          `json:"collateral_type,omitempty"`
	CollateralDescription *string          `json:"collateral_description,omitempty"`
	CollateralValue       *decimal.Decimal `json:"collateral_value,omitempty"`

	ResidenceOwnership     *string          `json:"residence_ownership,omitempty"`
	ResidenceYears         *int             `json:"residence_years,omitempty"`
	MonthlyRent            *decimal.Decimal `json:"monthly_rent,omitempty"`
	PermanentSameAsPresent *bool            `json:"permanent_same_as_present,omitempty"`
	PermanentStreet        *string          `json:"permanent_street,omitempty"`
	PermanentCity          *string          `json:"permanent_city,omitempty"`
	PermanentProvince      *string          `json:"permanent_province,omitempty"`
	PermanentZipCode       *string          `json:"permanent_zip_code,omitempty"`

	SpouseFirstName     *string          `json:"spouse_first_name,omitempty"`
	SpouseLastName      *string          `json:"spouse_last_name,omitempty"`
	SpouseMonthlyIncome *decimal.Decimal `json:"spouse_monthly_income,omitempty"`
	NumberOfDependents  *int             `json:"number_of_dependents,omitempty"`

	PrimaryIncomeSource  *string          `json:"primary_income_source,omitempty"`
	EmployerName         *string          `json:"employer_name,omitempty"`
	JobPosition          *string          `json:"job_position,omitempty"`
	YearsEmployed        *int             `json:"years_employed,omitempty"`
	MonthlyNetSalary     *decimal.Decimal `json:"monthly_net_salary,omitempty"`
	BusinessName         *string          `json:"business_name,omitempty"`
	BusinessNetIncome    *decimal.Decimal `json:"business_net_income,omitempty"`
	OtherIncome          *decimal.Decimal `json:"other_income,omitempty"`
	MonthlyExpenses      *decimal.Decimal `json:"monthly_expenses,omitempty"`
	ExistingLoanPayments *decimal.Decimal `json:"existing_loan_payments,omitempty"`

	HasCoBorrower           *bool            `json:"has_co_borrower,omitempty"`
	CoBorrowerFirstName     *string          `json:"co_borrower_first_name,omitempty"`
	CoBorrowerLastName      *string          `json:"co_borrower_last_name,omitempty"`
	CoBorrowerRelationship  *string          `json:"co_borrower_relationship,omitempty"`
	CoBorrowerMonthlyIncome *decimal.Decimal `json:"co_borrower_monthly_income,omitempty"`

	CharacterReferenceName    *string `json:"character_reference_name,omitempty"`
	CharacterReferenceContact *string `json:"character_reference_contact,omitempty"`
	TradeReferenceName        *string `json:"trade_reference_name,omitempty"`
	TradeReferenceContact     *string `json:"trade_reference_contact,omitempty"`

	UndertakingSigned   *bool `json:"undertaking_signed,omitempty"`
	PrivacyNoticeSigned *bool `json:"privacy_notice_signed,omitempty"`
}

// MergeInto copies every non-nil field onto a. Unparseable dates are
// reported and leave the stored value untouched.
func (f Fields) MergeInto(a *Application) apperr.FieldErrors {
	errs := apperr.FieldErrors{}

	set(&a.ApplicationType, f.ApplicationType)
	set(&a.ReferralSource, f.ReferralSource)

	set(&a.LoanProductType, f.LoanProductType)
	set(&a.LoanAmount, f.LoanAmount)
	set(&a.LoanTermMonths, f.LoanTermMonths)
	set(&a.LoanPurpose, f.LoanPurpose)

	set(&a.FirstName, f.FirstName)
	set(&a.MiddleName, f.MiddleName)
	set(&a.LastName, f.LastName)
	set(&a.Suffix, f.Suffix)
	setDate(errs, "date_of_birth", &a.DateOfBirth, f.DateOfBirth)
	set(&a.Gender, f.Gender)
	set(&a.CivilStatus, f.CivilStatus)
	set(&a.Nationality, f.Nationality)
	set(&a.MotherMaidenName, f.MotherMaidenName)
	set(&a.MobileNumber, f.MobileNumber)
	set(&a.EmailAddress, f.EmailAddress)
	set(&a.PresentStreet, f.PresentStreet)
	set(&a.PresentBarangay, f.PresentBarangay)
	set(&a.PresentCity, f.PresentCity)
	set(&a.PresentProvince, f.PresentProvince)
	set(&a.PresentZipCode, f.PresentZipCode)

	set(&a.PrimaryIDType, f.PrimaryIDType)
	set(&a.PrimaryIDNumber, f.PrimaryIDNumber)
	setDate(errs, "primary_id_expiry", &a.PrimaryIDExpiry, f.PrimaryIDExpiry)
	set(&a.TIN, f.TIN)
	set(&a.SSSGSISNumber, f.SSSGSISNumber)
	set(&a.HighestEducation, f.HighestEducation)

	set(&a.CollateralType, f.CollateralType)
	set(&a.CollateralDescription, f.CollateralDescription)
	set(&a.CollateralValue, f.CollateralValue)

	set(&a.ResidenceOwnership, f.ResidenceOwnership)
	set(&a.ResidenceYears, f.ResidenceYears)
	set(&a.MonthlyRent, f.MonthlyRent)
	set(&a.PermanentSameAsPresent, f.PermanentSameAsPresent)
	set(&a.PermanentStreet, f.PermanentStreet)
	set(&a.PermanentCity, f.PermanentCity)
	set(&a.PermanentProvince, f.PermanentProvince)
	set(&a.PermanentZipCode, f.PermanentZipCode)

	set(&a.SpouseFirstName, f.SpouseFirstName)
	set(&a.SpouseLastName, f.SpouseLastName)
	set(&a.SpouseMonthlyIncome, f.SpouseMonthlyIncome)
	set(&a.NumberOfDependents, f.NumberOfDependents)

	set(&a.PrimaryIncomeSource, f.PrimaryIncomeSource)
	set(&a.EmployerName, f.EmployerName)
	set(&a.JobPosition, f.JobPosition)
	set(&a.YearsEmployed, f.YearsEmployed)
	set(&a.MonthlyNetSalary, f.MonthlyNetSalary)
	set(&a.BusinessName, f.BusinessName)
	set(&a.BusinessNetIncome, f.BusinessNetIncome)
	set(&a.OtherIncome, f.OtherIncome)
	set(&a.MonthlyExpenses, f.MonthlyExpenses)
	set(&a.ExistingLoanPayments, f.ExistingLoanPayments)

	set(&a.HasCoBorrower, f.HasCoBorrower)
	set(&a.CoBorrowerFirstName, f.CoBorrowerFirstName)
	set(&a.CoBorrowerLastName, f.CoBorrowerLastName)
	set(&a.CoBorrowerRelationship, f.CoBorrowerRelationship)
	set(&a.CoBorrowerMonthlyIncome, f.CoBorrowerMonthlyIncome)

	set(&a.CharacterReferenceName, f.CharacterReferenceName)
	set(&a.CharacterReferenceContact, f.CharacterReferenceContact)
	set(&a.TradeReferenceName, f.TradeReferenceName)
	set(&a.TradeReferenceContact, f.TradeReferenceContact)

	set(&a.UndertakingSigned, f.UndertakingSigned)
	set(&a.PrivacyNoticeSigned, f.PrivacyNoticeSigned)

	return errs
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// setDate treats an empty string as clearing the date.
func setDate(errs apperr.FieldErrors, field string, dst **time.Time, src *string) {
	if src == nil {
		return
	}
	if *src == "" {
		*dst = nil
		return
	}
	t, err := time.Parse(dateLayout, *src)
	if err != nil {
		errs.Add(field, "must be a date in YYYY-MM-DD format")
		return
	}
	*dst = &t
}
