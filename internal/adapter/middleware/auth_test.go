package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"loan-origination/internal/domain/user"
)

var testSecret = []byte("test-secret")

func setupAuthEcho(issuer string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(JWTAuth(testSecret, issuer))
	e.GET("/whoami", func(c echo.Context) error {
		a, ok := user.ActorFrom(c.Request().Context())
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.JSON(http.StatusOK, a)
	})
	return e
}

func callWhoami(e *echo.Echo, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_ValidToken(t *testing.T) {
	e := setupAuthEcho("loan-origination")
	tok, err := SignToken(testSecret, "loan-origination", user.Actor{ID: "u-1", Name: "Ria", Role: user.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	rec := callWhoami(e, "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	want := `{"id":"u-1","name":"Ria","role":"ADMIN"}`
	if got := rec.Body.String(); got != want+"\n" {
		t.Fatalf("actor = %s, want %s", got, want)
	}
}

func TestJWTAuth_Rejections(t *testing.T) {
	e := setupAuthEcho("loan-origination")
	actor := user.Actor{ID: "u-1", Role: user.RoleProcessor}

	expired, _ := SignToken(testSecret, "loan-origination", actor, -time.Hour)
	otherIssuer, _ := SignToken(testSecret, "someone-else", actor, time.Hour)
	wrongKey, _ := SignToken([]byte("other"), "loan-origination", actor, time.Hour)
	noRole, _ := SignToken(testSecret, "loan-origination", user.Actor{ID: "u-1", Role: "GUEST"}, time.Hour)
	noSubject, _ := SignToken(testSecret, "loan-origination", user.Actor{Role: user.RoleViewer}, time.Hour)
	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1", Issuer: "loan-origination"},
	}).SignedString(testSecret)
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Role: "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "u-1", Issuer: "loan-origination", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(testSecret)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic dXNlcjpwYXNz",
		"empty bearer":   "Bearer ",
		"garbage":        "Bearer not.a.jwt",
		"expired":        "Bearer " + expired,
		"other issuer":   "Bearer " + otherIssuer,
		"wrong key":      "Bearer " + wrongKey,
		"unknown role":   "Bearer " + noRole,
		"no subject":     "Bearer " + noSubject,
		"no expiry":      "Bearer " + noExpiry,
		"hs512":          "Bearer " + hs512,
	}
	for name, authz := range cases {
		if rec := callWhoami(e, authz); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: want 401, got %d", name, rec.Code)
		}
	}
}

func TestJWTAuth_IssuerOptional(t *testing.T) {
	e := setupAuthEcho("")
	tok, _ := SignToken(testSecret, "anything", user.Actor{ID: "u-2", Role: user.RoleViewer}, time.Hour)
	if rec := callWhoami(e, "bearer "+tok); rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}
