package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/receipt"
	receiptuc "loan-origination/internal/usecase/receipt"
)

type ReceiptHandler struct {
	uc *receiptuc.Usecase
}

func NewReceiptHandler(uc *receiptuc.Usecase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

type issueReceiptReq struct {
	ApplicationID    string          `json:"application_id" validate:"required,hex32"`
	ReceiptType      string          `json:"receipt_type" validate:"required,oneof=OFFICIAL_RECEIPT COLLECTION_RECEIPT"`
	Amount           decimal.Decimal `json:"amount" validate:"gt=0,dec2"`
	PaymentMethod    string          `json:"payment_method" validate:"required,oneof=cash check bank_transfer gcash maya credit_card"`
	PaymentReference string          `json:"payment_reference" validate:"max=100"`
	PaymentDate      string          `json:"payment_date" validate:"required,datetime=2006-01-02"`
	PayorName        string          `json:"payor_name" validate:"required,max=200"`
	PayorAddress     string          `json:"payor_address"`
	Particulars      string          `json:"particulars"`
}

func (r issueReceiptReq) details() receipt.Details {
	// layout already checked by the validator
	date, _ := time.Parse("2006-01-02", r.PaymentDate)
	return receipt.Details{
		ReceiptType:      receipt.Type(r.ReceiptType),
		Amount:           r.Amount,
		PaymentMethod:    receipt.PaymentMethod(r.PaymentMethod),
		PaymentReference: r.PaymentReference,
		PaymentDate:      date,
		PayorName:        r.PayorName,
		PayorAddress:     r.PayorAddress,
		Particulars:      r.Particulars,
	}
}

type voidReceiptReq struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

// POST /receipts
func (h *ReceiptHandler) Issue(c echo.Context) error {
	var req issueReceiptReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if err := c.Validate(&req); err != nil {
		return invalidRequest(c, err)
	}
	rc, err := h.uc.Issue(c.Request().Context(), req.ApplicationID, req.details())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, rc)
}

// POST /receipts/:receipt_id/void
func (h *ReceiptHandler) Void(c echo.Context) error {
	var req voidReceiptReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if err := c.Validate(&req); err != nil {
		return invalidRequest(c, err)
	}
	rc, err := h.uc.Void(c.Request().Context(), c.Param("receipt_id"), req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rc)
}

// GET /receipts?application_id=&page=&limit=
func (h *ReceiptHandler) List(c echo.Context) error {
	var in receiptuc.ListInput
	err := echo.QueryParamsBinder(c).
		String("application_id", &in.ApplicationID).
		Int("page", &in.Page).
		Int("limit", &in.Limit).
		BindError()
	if err != nil {
		return badRequest(c, "page and limit must be integers")
	}
	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /receipts/:receipt_id
func (h *ReceiptHandler) Get(c echo.Context) error {
	rc, err := h.uc.Get(c.Request().Context(), c.Param("receipt_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rc)
}
