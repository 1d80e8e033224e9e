package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type options struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
	maxIdleTime time.Duration
	logLevel    logger.LogLevel
}

type Option func(*options)

// WithPool overrides the connection pool size. In-memory sqlite needs a
// single connection so every session sees the same database.
func WithPool(maxOpen, maxIdle int) Option {
	return func(o *options) { o.maxOpen, o.maxIdle = maxOpen, maxIdle }
}

func WithLogLevel(l logger.LogLevel) Option {
	return func(o *options) { o.logLevel = l }
}

// OpenGorm connects to MySQL and verifies the connection.
func OpenGorm(dsn string, log *zap.Logger, opts ...Option) (*gorm.DB, error) {
	db, err := OpenGormWithDialector(mysql.Open(dsn), opts...)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Info("gorm: connected")
	}
	return db, nil
}

// OpenGormWithDialector opens any dialect with the service's gorm settings:
// duplicate keys are translated to gorm.ErrDuplicatedKey and the pool is
// pinged once.
func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	o := options{
		maxOpen:     30,
		maxIdle:     10,
		maxLifetime: 30 * time.Minute,
		maxIdleTime: 10 * time.Minute,
		logLevel:    logger.Warn,
	}
	for _, fn := range opts {
		fn(&o)
	}

	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(o.logLevel),
		TranslateError:       true,
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.maxOpen)
	sqlDB.SetMaxIdleConns(o.maxIdle)
	sqlDB.SetConnMaxLifetime(o.maxLifetime)
	sqlDB.SetConnMaxIdleTime(o.maxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
