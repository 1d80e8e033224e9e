package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-origination/internal/domain/user"
)

type receiptBody struct {
	ReceiptID     string `json:"receipt_id"`
	ReceiptNumber string `json:"receipt_number"`
	ApplicationID string `json:"application_id"`
	ReceiptType   string `json:"receipt_type"`
	Amount        string `json:"amount"`
	IsVoided      bool   `json:"is_voided"`
	VoidReason    string `json:"void_reason"`
}

func issueBody(appID string) map[string]any {
	return map[string]any{
		"application_id": appID,
		"receipt_type":   "OFFICIAL_RECEIPT",
		"amount":         "1250.75",
		"payment_method": "cash",
		"payment_date":   "2025-05-02",
		"payor_name":     "Ana Cruz",
	}
}

func TestIssueReceipt_RequestValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(user.RoleProcessor, http.MethodPost, "/receipts", map[string]any{
		"application_id": "NOT-HEX",
		"receipt_type":   "INVOICE",
		"amount":         "10.123",
		"payment_method": "barter",
		"payment_date":   "02/05/2025",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	got := map[string]string{}
	for _, d := range decode[ErrorResponse](t, rec).Details {
		got[d.Field] = d.Message
	}
	assert.Contains(t, got["application_id"], "32-char lowercase hex")
	assert.Contains(t, got["receipt_type"], "OFFICIAL_RECEIPT")
	assert.Contains(t, got["amount"], "2 decimal places")
	assert.Contains(t, got["payment_method"], "one of")
	assert.Contains(t, got["payment_date"], "YYYY-MM-DD")
	assert.Equal(t, "is required", got["payor_name"])

	rec = s.do(user.RoleProcessor, http.MethodPost, "/receipts", `{"amount":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueReceipt_Eligibility(t *testing.T) {
	s := newTestServer(t)
	appID := s.submitted()

	rec := s.do(user.RoleProcessor, http.MethodPost, "/receipts", issueBody(appID))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(user.RoleProcessor, http.MethodPost, "/receipts", issueBody("ffffffffffffffffffffffffffffffff"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReceipts_IssueListVoid(t *testing.T) {
	s := newTestServer(t)
	appID := s.approved()

	rec := s.do(user.RoleViewer, http.MethodPost, "/receipts", issueBody(appID))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(user.RoleProcessor, http.MethodPost, "/receipts", issueBody(appID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	issued := decode[receiptBody](t, rec)
	assert.Regexp(t, `^OR-202505-\d{5}$`, issued.ReceiptNumber)
	assert.Equal(t, appID, issued.ApplicationID)
	assert.Equal(t, "1250.75", issued.Amount)
	assert.False(t, issued.IsVoided)

	rec = s.do(user.RoleViewer, http.MethodGet, "/receipts/"+issued.ReceiptID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, issued.ReceiptNumber, decode[receiptBody](t, rec).ReceiptNumber)

	rec = s.do(user.RoleViewer, http.MethodGet, "/receipts?application_id="+appID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Items []receiptBody `json:"items"`
		Total int64         `json:"total"`
	}](t, rec)
	assert.EqualValues(t, 1, list.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, issued.ReceiptID, list.Items[0].ReceiptID)

	rec = s.do(user.RoleViewer, http.MethodGet, "/receipts?application_id=ffffffffffffffffffffffffffffffff", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	voidPath := "/receipts/" + issued.ReceiptID + "/void"
	rec = s.do(user.RoleProcessor, http.MethodPost, voidPath, map[string]any{})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "reason", decode[ErrorResponse](t, rec).Details[0].Field)

	rec = s.do(user.RoleProcessor, http.MethodPost, voidPath, map[string]any{"reason": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(user.RoleProcessor, http.MethodPost, voidPath, map[string]any{"reason": "wrong payor"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	voided := decode[receiptBody](t, rec)
	assert.True(t, voided.IsVoided)
	assert.Equal(t, "wrong payor", voided.VoidReason)

	rec = s.do(user.RoleProcessor, http.MethodPost, voidPath, map[string]any{"reason": "again"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetReceipt_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(user.RoleViewer, http.MethodGet, "/receipts/ffffffffffffffffffffffffffffffff", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(user.RoleViewer, http.MethodPost, "/receipts/ffffffffffffffffffffffffffffffff/void", map[string]any{"reason": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
