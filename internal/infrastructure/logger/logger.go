package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvDevelopment = "development"
	EnvLocal       = "local"
	EnvProduction  = "production"
)

// New builds a JSON logger for env. An empty level means debug for
// development and local, info everywhere else.
func New(env, level string) (*zap.Logger, error) {
	cfg := configFor(env)

	lvl, err := resolveLevel(env, level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.With(zap.String("env", env)), nil
}

func development(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == EnvDevelopment || env == EnvLocal
}

func resolveLevel(env, level string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(level) != "" {
		var parsed zapcore.Level
		if err := parsed.Set(level); err != nil {
			return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		return zap.NewAtomicLevelAt(parsed), nil
	}
	if development(env) {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	}
	return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
}

func configFor(env string) zap.Config {
	cfg := zap.NewProductionConfig()
	if development(env) {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}
