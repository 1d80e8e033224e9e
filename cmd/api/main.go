package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "loan-origination/internal/adapter/http"
	"loan-origination/internal/adapter/middleware"
	"loan-origination/internal/adapter/repository/mysql"
	"loan-origination/internal/config"
	"loan-origination/internal/infrastructure/cache"
	"loan-origination/internal/infrastructure/db"
	"loan-origination/internal/infrastructure/logger"
	"loan-origination/internal/infrastructure/metrics"
	appuc "loan-origination/internal/usecase/application"
	receiptuc "loan-origination/internal/usecase/receipt"
	"loan-origination/pkg/id"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// a local .env never overrides the real environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		return fmt.Errorf("mysql: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.MigrateOnStart {
		if err := db.Migrate(sqlDB, cfg.MySQLDB); err != nil {
			return err
		}
		log.Info("migrations applied", zap.String("database", cfg.MySQLDB))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	reg := metrics.NewRegistry()
	m := metrics.New(reg)

	apps := mysql.NewApplicationRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	ids := id.Random{}

	loans := appuc.NewUsecase(apps, mysql.NewAuditRepository(gdb), tx, ids,
		appuc.WithLogger(log),
		appuc.WithRecorder(m),
		appuc.WithNumberAttempts(cfg.ReceiptNumberAttempts),
	)
	receipts := receiptuc.NewUsecase(mysql.NewReceiptRepository(gdb), apps, tx, ids,
		receiptuc.WithLogger(log),
		receiptuc.WithRecorder(m),
		receiptuc.WithNumberAttempts(cfg.ReceiptNumberAttempts),
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		echomw.Recover(),
		echomw.RequestID(),
		m.Middleware(),
		echomw.RequestLoggerWithConfig(accessLog(log)),
	)

	httpadp.Router{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "mysql", Ping: sqlDB.PingContext},
			httpadp.Check{Name: "redis", Ping: cache.Pinger(rdb)},
		),
		Applications: httpadp.NewApplicationHandler(loans),
		Receipts:     httpadp.NewReceiptHandler(receipts),
		Metrics:      metrics.Handler(reg),
		Auth:         middleware.JWTAuth([]byte(cfg.JWTSecret), cfg.JWTIssuer),
		Protected:    []echo.MiddlewareFunc{middleware.Idempotency(rdb, cfg.IdempotencyTTL(), log)},
	}.Register(e)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func accessLog(log *zap.Logger) echomw.RequestLoggerConfig {
	return echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}
}
