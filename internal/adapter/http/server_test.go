package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"loan-origination/internal/adapter/middleware"
	"loan-origination/internal/adapter/repository/mysql"
	"loan-origination/internal/domain/user"
	"loan-origination/internal/testutil/sqlitedb"
	appuc "loan-origination/internal/usecase/application"
	receiptuc "loan-origination/internal/usecase/receipt"
	"loan-origination/pkg/id"
)

var testSecret = []byte("handler-test-secret")

type testServer struct {
	t *testing.T
	e *echo.Echo
}

// newTestServer serves the real router over an in-memory database.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	loans, receipts := newUsecases(t)
	return serve(t, loans, receipts)
}

func newUsecases(t *testing.T) (*appuc.Usecase, *receiptuc.Usecase) {
	t.Helper()
	db := sqlitedb.Open(t)
	ids := id.NewSequence()
	clock := func() time.Time { return time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC) }

	apps := mysql.NewApplicationRepository(db)
	tx := mysql.NewGormUoW(db)
	loans := appuc.NewUsecase(apps, mysql.NewAuditRepository(db), tx, ids, appuc.WithClock(clock))
	receipts := receiptuc.NewUsecase(mysql.NewReceiptRepository(db), apps, tx, ids, receiptuc.WithClock(clock))
	return loans, receipts
}

func serve(t *testing.T, loans *appuc.Usecase, receipts *receiptuc.Usecase, protected ...echo.MiddlewareFunc) *testServer {
	e := echo.New()
	e.Validator = NewValidator()
	Router{
		Health:       NewHandler(),
		Applications: NewApplicationHandler(loans),
		Receipts:     NewReceiptHandler(receipts),
		Auth:         middleware.JWTAuth(testSecret, ""),
		Protected:    protected,
	}.Register(e)
	return &testServer{t: t, e: e}
}

// do sends body as JSON. An empty role sends no token; a string body is sent raw.
func (s *testServer) do(role user.Role, method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if role != "" {
		tok, err := middleware.SignToken(testSecret, "", user.Actor{ID: "u-" + string(role), Name: "Tester", Role: role}, time.Hour)
		require.NoError(s.t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

type appBody struct {
	ApplicationID  string `json:"application_id"`
	Status         string `json:"status"`
	CurrentStep    int    `json:"current_step"`
	ApprovedAmount string `json:"approved_amount"`
}

// submitted creates and submits a minimal complete application.
func (s *testServer) submitted() string {
	s.t.Helper()
	rec := s.do(user.RoleProcessor, http.MethodPost, "/applications", map[string]any{"loan_amount": "50000"})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	appID := decode[appBody](s.t, rec).ApplicationID

	rec = s.do(user.RoleProcessor, http.MethodPut, "/applications/"+appID+"/steps/3", map[string]any{
		"first_name": "Ana", "last_name": "Cruz", "mobile_number": "09175550101",
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(user.RoleProcessor, http.MethodPut, "/applications/"+appID+"/steps/11", map[string]any{
		"undertaking_signed": true, "privacy_notice_signed": true,
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(user.RoleProcessor, http.MethodPost, "/applications/"+appID+"/submit", nil)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return appID
}

func (s *testServer) approved() string {
	s.t.Helper()
	appID := s.submitted()
	rec := s.do(user.RoleAdmin, http.MethodPost, "/applications/"+appID+"/transitions", map[string]any{
		"action": "approve", "approved_amount": "45000",
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return appID
}
