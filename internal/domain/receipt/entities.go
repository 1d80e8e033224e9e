package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/apperr"
)

var (
	ErrNotFound = fmt.Errorf("receipt %w", apperr.ErrNotFound)
	// ErrIneligibleApplication: receipts need an APPROVED, FOR_DISBURSEMENT or ACTIVE parent.
	ErrIneligibleApplication = fmt.Errorf("application is not eligible for receipts: %w", apperr.ErrConflict)
	ErrAlreadyVoided         = fmt.Errorf("receipt already voided: %w", apperr.ErrConflict)
	// ErrDuplicateNumber surfaces only after the issuer exhausted its retries.
	ErrDuplicateNumber = fmt.Errorf("duplicate receipt number: %w", apperr.ErrUnavailable)
)

type Type string

const (
	TypeOfficial   Type = "OFFICIAL_RECEIPT"
	TypeCollection Type = "COLLECTION_RECEIPT"
)

func (t Type) Valid() bool { return t == TypeOfficial || t == TypeCollection }

// Prefix is the receipt number prefix for the type.
func (t Type) Prefix() string {
	if t == TypeCollection {
		return "CR"
	}
	return "OR"
}

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCheck        PaymentMethod = "check"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentGCash        PaymentMethod = "gcash"
	PaymentMaya         PaymentMethod = "maya"
	PaymentCreditCard   PaymentMethod = "credit_card"
)

var PaymentMethods = []PaymentMethod{
	PaymentCash, PaymentCheck, PaymentBankTransfer, PaymentGCash, PaymentMaya, PaymentCreditCard,
}

func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

// Table: orcr_receipts
type Receipt struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ReceiptID     string `gorm:"column:receipt_id;type:char(32);not null;uniqueIndex:ux_orcr_receipts_receipt_id" json:"receipt_id"`
	ReceiptNumber string `gorm:"column:receipt_number;size:20;not null;uniqueIndex:ux_orcr_receipts_receipt_number" json:"receipt_number"`
	// FK to loan_applications.id (numeric) plus the parent's public id
	ApplicationID       uint64 `gorm:"column:application_id;not null;index:idx_orcr_receipts_application" json:"-"`
	ApplicationPublicID string `gorm:"column:application_public_id;type:char(32);not null" json:"application_id"`

	ReceiptType      Type            `gorm:"column:receipt_type;size:20;not null" json:"receipt_type"`
	Amount           decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	PaymentMethod    PaymentMethod   `gorm:"column:payment_method;size:20;not null" json:"payment_method"`
	PaymentReference string          `gorm:"column:payment_reference;size:100" json:"payment_reference,omitempty"`
	PaymentDate      time.Time       `gorm:"column:payment_date;type:date;not null" json:"payment_date"`
	PayorName        string          `gorm:"column:payor_name;size:200;not null" json:"payor_name"`
	PayorAddress     string          `gorm:"column:payor_address;type:text" json:"payor_address,omitempty"`
	Particulars      string          `gorm:"column:particulars;type:text" json:"particulars,omitempty"`

	IssuedBy string    `gorm:"column:issued_by;size:64;not null" json:"issued_by"`
	IssuedAt time.Time `gorm:"column:issued_at;not null;index:idx_orcr_receipts_issued_at" json:"issued_at"`

	IsVoided   bool       `gorm:"column:is_voided;not null" json:"is_voided"`
	VoidedBy   string     `gorm:"column:voided_by;size:64" json:"voided_by,omitempty"`
	VoidedAt   *time.Time `gorm:"column:voided_at" json:"voided_at,omitempty"`
	VoidReason string     `gorm:"column:void_reason;type:text" json:"void_reason,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Receipt) TableName() string { return "orcr_receipts" }

// Details are the caller supplied parts of a receipt.
type Details struct {
	ReceiptType      Type
	Amount           decimal.Decimal
	PaymentMethod    PaymentMethod
	PaymentReference string
	PaymentDate      time.Time
	PayorName        string
	PayorAddress     string
	Particulars      string
}

// Validate checks the details independent of the parent application.
func (d Details) Validate() apperr.FieldErrors {
	errs := apperr.FieldErrors{}
	if !d.ReceiptType.Valid() {
		errs.Add("receipt_type", "must be OFFICIAL_RECEIPT or COLLECTION_RECEIPT")
	}
	if !d.Amount.IsPositive() {
		errs.Add("amount", "must be greater than 0")
	}
	if !d.PaymentMethod.Valid() {
		errs.Add("payment_method", "must be one of cash, check, bank_transfer, gcash, maya, credit_card")
	}
	if d.PaymentDate.IsZero() {
		errs.Add("payment_date", "is required")
	}
	if strings.TrimSpace(d.PayorName) == "" {
		errs.Add("payor_name", "is required")
	}
	return errs
}

// Void marks the receipt voided. Voiding is one way.
func (r *Receipt) Void(reason, actorID string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return apperr.InvalidField("reason", "is required")
	}
	if r.IsVoided {
		return ErrAlreadyVoided
	}
	at := now.UTC()
	r.IsVoided = true
	r.VoidedBy = actorID
	r.VoidedAt = &at
	r.VoidReason = reason
	return nil
}
