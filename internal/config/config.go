package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	AppPort  string
	LogLevel string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisPass string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret string
	JWTIssuer string

	ReceiptNumberAttempts int
	MigrateOnStart        bool
}

var defaults = map[string]any{
	"APP_ENV":                 "production",
	"APP_PORT":                "8080",
	"LOG_LEVEL":               "",
	"MYSQL_HOST":              "mysql",
	"MYSQL_PORT":              "3306",
	"MYSQL_DB":                "loans",
	"MYSQL_USER":              "loans",
	"MYSQL_PASS":              "loans",
	"REDIS_ADDR":              "redis:6379",
	"REDIS_PASSWORD":          "",
	"REDIS_DB":                0,
	"IDEMPOTENCY_TTL_SECONDS": 300,
	"JWT_SECRET":              "",
	"JWT_ISSUER":              "",
	"RECEIPT_NUMBER_ATTEMPTS": 5,
	"MIGRATE_ON_START":        false,
}

// Load reads the environment over the defaults. Values that fail to parse
// are reported rather than silently replaced.
func Load() (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	c := &Config{
		AppEnv:    v.GetString("APP_ENV"),
		AppPort:   v.GetString("APP_PORT"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		MySQLHost: v.GetString("MYSQL_HOST"),
		MySQLPort: v.GetString("MYSQL_PORT"),
		MySQLDB:   v.GetString("MYSQL_DB"),
		MySQLUser: v.GetString("MYSQL_USER"),
		MySQLPass: v.GetString("MYSQL_PASS"),
		RedisAddr: v.GetString("REDIS_ADDR"),
		RedisPass: v.GetString("REDIS_PASSWORD"),
		JWTSecret: v.GetString("JWT_SECRET"),
		JWTIssuer: v.GetString("JWT_ISSUER"),
	}

	var err error
	if c.RedisDB, err = intValue(v, "REDIS_DB"); err != nil {
		return nil, err
	}
	if c.IdempTTLSecs, err = intValue(v, "IDEMPOTENCY_TTL_SECONDS"); err != nil {
		return nil, err
	}
	if c.ReceiptNumberAttempts, err = intValue(v, "RECEIPT_NUMBER_ATTEMPTS"); err != nil {
		return nil, err
	}
	if c.MigrateOnStart, err = boolValue(v, "MIGRATE_ON_START"); err != nil {
		return nil, err
	}
	return c, nil
}

func intValue(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func boolValue(v *viper.Viper, key string) (bool, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return b, nil
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be positive")
	}
	if c.ReceiptNumberAttempts < 1 {
		return errors.New("RECEIPT_NUMBER_ATTEMPTS must be at least 1")
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements for migrations, parseTime for DATETIME, clientFoundRows
	// so a no-op UPDATE still reports its matched row
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&clientFoundRows=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
