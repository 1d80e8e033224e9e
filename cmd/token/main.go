// Command token mints a bearer token for local testing, signed with the
// JWT_SECRET and JWT_ISSUER the API reads.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"loan-origination/internal/adapter/middleware"
	"loan-origination/internal/config"
	"loan-origination/internal/domain/user"
)

func main() {
	var (
		actorID string
		name    string
		role    string
		ttl     time.Duration
	)
	pflag.StringVar(&actorID, "id", "", "actor id, stored as the token subject")
	pflag.StringVar(&name, "name", "", "display name")
	pflag.StringVar(&role, "role", string(user.RoleProcessor), "ADMIN, PROCESSOR or VIEWER")
	pflag.DurationVar(&ttl, "ttl", 8*time.Hour, "token lifetime")
	pflag.Parse()

	tok, err := mint(actorID, name, user.Role(role), ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

func mint(actorID, name string, role user.Role, ttl time.Duration) (string, error) {
	if actorID == "" {
		return "", errors.New("--id is required")
	}
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", role)
	}
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.JWTSecret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	return middleware.SignToken([]byte(cfg.JWTSecret), cfg.JWTIssuer, user.Actor{ID: actorID, Name: name, Role: role}, ttl)
}
