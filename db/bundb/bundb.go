// db/bundb/bundb.go
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/music-backend/config"
	"github.com/Black-And-White-Club/music-backend/pkg/observability/attr"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewDB opens the connection pool described by cfg and verifies it with a ping.
// The caller owns the returned DB and must Close it.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger, debug bool) (*bun.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var db *bun.DB
	switch cfg.Driver {
	case config.DriverPostgres, "":
		logger.InfoContext(ctx, "Opening postgres connection pool")
		db = BunDB(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN))))
	case config.DriverSQLite:
		logger.InfoContext(ctx, "Opening sqlite database", attr.String("path", cfg.SQLitePath))
		sqldb, err := sql.Open("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		db = SQLiteDB(sqldb)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	configurePool(db.DB, cfg)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable sqlite foreign keys: %w", err)
		}
	}

	if debug {
		db.AddQueryHook(NewQueryLogger(logger))
	}

	return db, nil
}

// BunDB returns a new bun.DB for given sql.DB connection pool.
func BunDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

// SQLiteDB wraps an sqlite connection. SQLite allows a single writer, so the pool is capped at one connection.
func SQLiteDB(sqldb *sql.DB) *bun.DB {
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New())
}

func configurePool(sqldb *sql.DB, cfg config.DatabaseConfig) {
	if cfg.Driver == config.DriverSQLite {
		return
	}
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// QueryLogger logs every executed statement at debug level.
type QueryLogger struct {
	logger *slog.Logger
}

// NewQueryLogger returns a bun query hook writing to logger.
func NewQueryLogger(logger *slog.Logger) *QueryLogger {
	return &QueryLogger{logger: logger}
}

var _ bun.QueryHook = (*QueryLogger)(nil)

func (h *QueryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryLogger) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	attrs := []any{
		attr.ExtractCorrelationID(ctx),
		attr.String("query", event.Query),
		attr.Duration("duration", time.Since(event.StartTime)),
	}
	if event.Err != nil && event.Err != sql.ErrNoRows {
		h.logger.DebugContext(ctx, "Query failed", append(attrs, attr.Error(event.Err))...)
		return
	}
	h.logger.DebugContext(ctx, "Query executed", attrs...)
}
