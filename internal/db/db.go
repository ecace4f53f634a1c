package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultMaxAttempts     = 10
	defaultDelayBetweenTry = 2 * time.Second
)

type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: defaultMaxAttempts, Delay: defaultDelayBetweenTry}
}

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

// gormWriter sends gorm's formatted log lines to zerolog.
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn().Msgf(format, args...)
}

// NewGormLogger reports slow queries and errors through log. Release mode
// keeps only errors.
func NewGormLogger(log zerolog.Logger, ginMode string) gormlogger.Interface {
	level := gormlogger.Warn
	if ginMode == "release" {
		level = gormlogger.Error
	}

	return gormlogger.New(gormWriter{log: log.With().Str("component", "gorm").Logger()}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Open opens the configured database without checking connectivity.
func Open(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	return gorm.Open(d, &gorm.Config{Logger: NewGormLogger(log, cfg.GinMode)})
}

// ConnectWithRetry opens and pings the database until it answers or the
// policy runs out of attempts.
func ConnectWithRetry(ctx context.Context, cfg *config.Config, policy RetryPolicy, log zerolog.Logger) (*gorm.DB, error) {
	var err error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		var db *gorm.DB
		db, err = Open(cfg, log)
		if err == nil {
			err = Ping(ctx, db)
			if err == nil {
				return db, nil
			}
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", policy.MaxAttempts).
			Msg("db not ready")

		if attempt == policy.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(policy.Delay):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", policy.MaxAttempts, err)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Author{}, &model.Book{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
