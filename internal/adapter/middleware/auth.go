package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"loan-origination/internal/domain/user"
)

// Claims are the access token claims. The subject is the actor id.
type Claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var errBadClaims = errors.New("token lacks a subject or a known role")

// JWTAuth verifies an HS256 bearer token and puts the actor it names into
// the request context.
func JWTAuth(secret []byte, issuer string) echo.MiddlewareFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return errorJSON(c, http.StatusUnauthorized, "missing bearer token")
			}
			actor, err := parseActor(parser, keyFunc, raw)
			if errors.Is(err, jwt.ErrTokenExpired) {
				return errorJSON(c, http.StatusUnauthorized, "token has expired")
			}
			if err != nil {
				return errorJSON(c, http.StatusUnauthorized, "invalid token")
			}

			req := c.Request()
			c.SetRequest(req.WithContext(user.WithActor(req.Context(), actor)))
			return next(c)
		}
	}
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func parseActor(p *jwt.Parser, keyFunc jwt.Keyfunc, raw string) (user.Actor, error) {
	var claims Claims
	if _, err := p.ParseWithClaims(raw, &claims, keyFunc); err != nil {
		return user.Actor{}, err
	}
	role := user.Role(strings.ToUpper(claims.Role))
	if claims.Subject == "" || !role.Valid() {
		return user.Actor{}, errBadClaims
	}
	return user.Actor{ID: claims.Subject, Name: claims.Name, Role: role}, nil
}

// SignToken issues an HS256 access token for a.
func SignToken(secret []byte, issuer string, a user.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name: a.Name,
		Role: string(a.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}).SignedString(secret)
}
