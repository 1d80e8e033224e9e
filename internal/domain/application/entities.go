package application

import (
	"time"

	"github.com/shopspring/decimal"
)

type ApplicationType string

const (
	ApplicationTypeNew     ApplicationType = "NEW"
	ApplicationTypeRenewal ApplicationType = "RENEWAL"
)

type ProductType string

const (
	ProductPersonal ProductType = "PERSONAL"
	ProductAuto     ProductType = "AUTO"
	ProductHousing  ProductType = "HOUSING"
	ProductBusiness ProductType = "BUSINESS"
)

const (
	CivilStatusSingle    = "SINGLE"
	CivilStatusMarried   = "MARRIED"
	CivilStatusWidowed   = "WIDOWED"
	CivilStatusSeparated = "SEPARATED"

	IncomeEmployment = "EMPLOYMENT"
	IncomeBusiness   = "BUSINESS"
	IncomeRemittance = "REMITTANCE"
	IncomeOther      = "OTHER"
)

// TermOptions are the offered loan terms in months.
var TermOptions = []int{6, 12, 18, 24, 36, 48, 60}

// Draft defaults applied on creation.
const (
	DefaultTermMonths  = 12
	DefaultNationality = "Filipino"
)

// Application is the loan application aggregate. Profile data is grouped by
// the wizard step that collects it; empty strings and zero amounts mean the
// step has not provided the value yet.
type Application struct {
	ID              uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID   string `gorm:"column:application_id;type:char(32);not null;uniqueIndex:ux_loan_applications_application_id" json:"application_id"`
	ReferenceNumber string `gorm:"column:reference_number;size:20;not null;uniqueIndex:ux_loan_applications_reference_number" json:"reference_number"`
	Status          Status `gorm:"column:status;size:20;not null;index:idx_loan_applications_status" json:"status"`
	CurrentStep     int    `gorm:"column:current_step;not null" json:"current_step"`

	ApplicationDetails
	LoanTerms
	PersonalInfo
	Identification
	Collateral
	Residence
	Family
	Income
	CoBorrower
	References
	Undertaking

	ApprovedAmount  decimal.NullDecimal `gorm:"column:approved_amount;type:decimal(18,2)" json:"approved_amount"`
	InterestRate    decimal.NullDecimal `gorm:"column:interest_rate;type:decimal(6,4)" json:"interest_rate"`
	ApprovalNotes   string              `gorm:"column:approval_notes;type:text" json:"approval_notes,omitempty"`
	RejectionReason string              `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`

	SubmittedAt      *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	VettingStartedAt *time.Time `gorm:"column:vetting_started_at" json:"vetting_started_at,omitempty"`
	ApprovedAt       *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	DisbursementAt   *time.Time `gorm:"column:disbursement_at" json:"disbursement_at,omitempty"`
	FundsReleasedAt  *time.Time `gorm:"column:funds_released_at" json:"funds_released_at,omitempty"`
	CompletedAt      *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CancelledAt      *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	CreatedBy   string    `gorm:"column:created_by;size:64;not null" json:"created_by"`
	ProcessedBy string    `gorm:"column:processed_by;size:64" json:"processed_by,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "loan_applications" }

// Step 1.
type ApplicationDetails struct {
	ApplicationType ApplicationType `gorm:"column:application_type;size:16;not null" json:"application_type"`
	ReferralSource  string          `gorm:"column:referral_source;size:120" json:"referral_source"`
}

// Step 2.
type LoanTerms struct {
	LoanProductType ProductType     `gorm:"column:loan_product_type;size:16;not null" json:"loan_product_type"`
	LoanAmount      decimal.Decimal `gorm:"column:loan_amount;type:decimal(18,2);not null" json:"loan_amount"`
	LoanTermMonths  int             `gorm:"column:loan_term_months;not null" json:"loan_term_months"`
	LoanPurpose     string          `gorm:"column:loan_purpose;type:text" json:"loan_purpose"`
}

// Step 3, including the present address.
type PersonalInfo struct {
	FirstName        string     `gorm:"column:first_name;size:100" json:"first_name"`
	MiddleName       string     `gorm:"column:middle_name;size:100" json:"middle_name"`
	LastName         string     `gorm:"column:last_name;size:100" json:"last_name"`
	Suffix           string     `gorm:"column:suffix;size:20" json:"suffix"`
	DateOfBirth      *time.Time `gorm:"column:date_of_birth;type:date" json:"date_of_birth,omitempty"`
	Gender           string     `gorm:"column:gender;size:10" json:"gender"`
	CivilStatus      string     `gorm:"column:civil_status;size:20" json:"civil_status"`
	Nationality      string     `gorm:"column:nationality;size:60" json:"nationality"`
	MotherMaidenName string     `gorm:"column:mother_maiden_name;size:150" json:"mother_maiden_name"`
	MobileNumber     string     `gorm:"column:mobile_number;size:20" json:"mobile_number"`
	EmailAddress     string     `gorm:"column:email_address;size:150" json:"email_address"`
	PresentStreet    string     `gorm:"column:present_street;size:200" json:"present_street"`
	PresentBarangay  string     `gorm:"column:present_barangay;size:100" json:"present_barangay"`
	PresentCity      string     `gorm:"column:present_city;size:100" json:"present_city"`
	PresentProvince  string     `gorm:"column:present_province;size:100" json:"present_province"`
	PresentZipCode   string     `gorm:"column:present_zip_code;size:10" json:"present_zip_code"`
}

// Step 4.
type Identification struct {
	PrimaryIDType    string     `gorm:"column:primary_id_type;size:40" json:"primary_id_type"`
	PrimaryIDNumber  string     `gorm:"column:primary_id_number;size:60" json:"primary_id_number"`
	PrimaryIDExpiry  *time.Time `gorm:"column:primary_id_expiry;type:date" json:"primary_id_expiry,omitempty"`
	TIN              string     `gorm:"column:tin;size:20" json:"tin"`
	SSSGSISNumber    string     `gorm:"column:sss_gsis_number;size:20" json:"sss_gsis_number"`
	HighestEducation string     `gorm:"column:highest_education;size:60" json:"highest_education"`
}

// Step 5.
type Collateral struct {
	CollateralType        string          `gorm:"column:collateral_type;size:20" json:"collateral_type"`
	CollateralDescription string          `gorm:"column:collateral_description;type:text" json:"collateral_description"`
	CollateralValue       decimal.Decimal `gorm:"column:collateral_value;type:decimal(18,2);not null" json:"collateral_value"`
}

// Step 6.
type Residence struct {
	ResidenceOwnership     string          `gorm:"column:residence_ownership;size:30" json:"residence_ownership"`
	ResidenceYears         int             `gorm:"column:residence_years;not null" json:"residence_years"`
	MonthlyRent            decimal.Decimal `gorm:"column:monthly_rent;type:decimal(18,2);not null" json:"monthly_rent"`
	PermanentSameAsPresent bool            `gorm:"column:permanent_same_as_present;not null" json:"permanent_same_as_present"`
	PermanentStreet        string          `gorm:"column:permanent_street;size:200" json:"permanent_street"`
	PermanentCity          string          `gorm:"column:permanent_city;size:100" json:"permanent_city"`
	PermanentProvince      string          `gorm:"column:permanent_province;size:100" json:"permanent_province"`
	PermanentZipCode       string          `gorm:"column:permanent_zip_code;size:10" json:"permanent_zip_code"`
}

// Step 7. Spouse fields only matter when civil status is MARRIED.
type Family struct {
	SpouseFirstName     string          `gorm:"column:spouse_first_name;size:100" json:"spouse_first_name"`
	SpouseLastName      string          `gorm:"column:spouse_last_name;size:100" json:"spouse_last_name"`
	SpouseMonthlyIncome decimal.Decimal `gorm:"column:spouse_monthly_income;type:decimal(18,2);not null" json:"spouse_monthly_income"`
	NumberOfDependents  int             `gorm:"column:number_of_dependents;not null" json:"number_of_dependents"`
}

// Step 8. Employer fields apply to EMPLOYMENT, business fields to BUSINESS.
type Income struct {
	PrimaryIncomeSource  string          `gorm:"column:primary_income_source;size:20" json:"primary_income_source"`
	EmployerName         string          `gorm:"column:employer_name;size:150" json:"employer_name"`
	JobPosition          string          `gorm:"column:job_position;size:100" json:"job_position"`
	YearsEmployed        int             `gorm:"column:years_employed;not null" json:"years_employed"`
	MonthlyNetSalary     decimal.Decimal `gorm:"column:monthly_net_salary;type:decimal(18,2);not null" json:"monthly_net_salary"`
	BusinessName         string          `gorm:"column:business_name;size:150" json:"business_name"`
	BusinessNetIncome    decimal.Decimal `gorm:"column:business_net_income;type:decimal(18,2);not null" json:"business_net_income"`
	OtherIncome          decimal.Decimal `gorm:"column:other_income;type:decimal(18,2);not null" json:"other_income"`
	MonthlyExpenses      decimal.Decimal `gorm:"column:monthly_expenses;type:decimal(18,2);not null" json:"monthly_expenses"`
	ExistingLoanPayments decimal.Decimal `gorm:"column:existing_loan_payments;type:decimal(18,2);not null" json:"existing_loan_payments"`
}

// Step 9.
type CoBorrower struct {
	HasCoBorrower           bool            `gorm:"column:has_co_borrower;not null" json:"has_co_borrower"`
	CoBorrowerFirstName     string          `gorm:"column:co_borrower_first_name;size:100" json:"co_borrower_first_name"`
	CoBorrowerLastName      string          `gorm:"column:co_borrower_last_name;size:100" json:"co_borrower_last_name"`
	CoBorrowerRelationship  string          `gorm:"column:co_borrower_relationship;size:60" json:"co_borrower_relationship"`
	CoBorrowerMonthlyIncome decimal.Decimal `gorm:"column:co_borrower_monthly_income;type:decimal(18,2);not null" json:"co_borrower_monthly_income"`
}

// Step 10.
type References struct {
	CharacterReferenceName    string `gorm:"column:character_reference_name;size:150" json:"character_reference_name"`
	CharacterReferenceContact string `gorm:"column:character_reference_contact;size:60" json:"character_reference_contact"`
	TradeReferenceName        string `gorm:"column:trade_reference_name;size:150" json:"trade_reference_name"`
	TradeReferenceContact     string `gorm:"column:trade_reference_contact;size:60" json:"trade_reference_contact"`
}

// Step 11. SignedAt is stamped the first time both consents hold.
type Undertaking struct {
	UndertakingSigned   bool       `gorm:"column:undertaking_signed;not null" json:"undertaking_signed"`
	PrivacyNoticeSigned bool       `gorm:"column:privacy_notice_signed;not null" json:"privacy_notice_signed"`
	SignedAt            *time.Time `gorm:"column:signed_at" json:"signed_at,omitempty"`
}

// NewDraft returns a DRAFT application carrying the creation defaults.
func NewDraft(applicationID, referenceNumber, createdBy string) *Application {
	return &Application{
		ApplicationID:      applicationID,
		ReferenceNumber:    referenceNumber,
		Status:             StatusDraft,
		CurrentStep:        int(StepApplicationType),
		ApplicationDetails: ApplicationDetails{ApplicationType: ApplicationTypeNew},
		LoanTerms:          LoanTerms{LoanProductType: ProductPersonal, LoanTermMonths: DefaultTermMonths},
		PersonalInfo:       PersonalInfo{Nationality: DefaultNationality},
		Residence:          Residence{PermanentSameAsPresent: true},
		CreatedBy:          createdBy,
	}
}

// FullName joins the non-empty name parts.
func (a *Application) FullName() string {
	name := ""
	for _, p := range []string{a.FirstName, a.MiddleName, a.LastName, a.Suffix} {
		if p == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += p
	}
	return name
}

// Summary is the list projection of an application.
type Summary struct {
	ApplicationID   string              `json:"application_id"`
	ReferenceNumber string              `json:"reference_number"`
	ApplicationType ApplicationType     `json:"application_type"`
	Status          Status              `json:"status"`
	LoanProductType ProductType         `json:"loan_product_type"`
	LoanAmount      decimal.Decimal     `json:"loan_amount"`
	ApprovedAmount  decimal.NullDecimal `json:"approved_amount"`
	LoanTermMonths  int                 `json:"loan_term_months"`
	ApplicantName   string              `json:"applicant_name"`
	CurrentStep     int                 `json:"current_step"`
	SubmittedAt     *time.Time          `json:"submitted_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func (a *Application) Summary() Summary {
	return Summary{
		ApplicationID:   a.ApplicationID,
		ReferenceNumber: a.ReferenceNumber,
		ApplicationType: a.ApplicationType,
		Status:          a.Status,
		LoanProductType: a.LoanProductType,
		LoanAmount:      a.LoanAmount,
		ApprovedAmount:  a.ApprovedAmount,
		LoanTermMonths:  a.LoanTermMonths,
		ApplicantName:   a.FullName(),
		CurrentStep:     a.CurrentStep,
		SubmittedAt:     a.SubmittedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
