// Package sqldb holds the database/sql plumbing shared by the vendor connections:
// pool setup, the startup ping and the types.Interface methods.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gaborage/go-sqlfrag/config"
	"github.com/gaborage/go-sqlfrag/database/types"
	"github.com/gaborage/go-sqlfrag/logger"
)

const (
	ConnectTimeout = 10 * time.Second
	HealthTimeout  = 5 * time.Second
)

// PingFunc verifies a freshly opened pool. Vendor packages swap it in tests.
type PingFunc func(ctx context.Context, db *sql.DB) error

// Ping is the default PingFunc.
func Ping(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}

// Conn implements types.Interface over a *sql.DB.
type Conn struct {
	db     *sql.DB
	vendor string
	log    logger.Logger
}

var _ types.Interface = (*Conn)(nil)

// New wraps an already verified pool.
func New(db *sql.DB, vendor string, log logger.Logger) *Conn {
	if log == nil {
		log = logger.Nop()
	}
	return &Conn{db: db, vendor: vendor, log: log}
}

// Connect applies pool settings, pings db within ConnectTimeout and wraps it.
// db is closed when the ping fails.
func Connect(db *sql.DB, vendor string, pool config.PoolConfig, ping PingFunc, log logger.Logger) (*Conn, error) {
	if log == nil {
		log = logger.Nop()
	}
	ApplyPool(db, pool)

	ctx, cancel := context.WithTimeout(context.Background(), ConnectTimeout)
	defer cancel()

	if err := ping(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("vendor", vendor).Msg("Failed to close database pool after ping failure")
		}
		return nil, fmt.Errorf("failed to ping %s database: %w", vendor, err)
	}
	return New(db, vendor, log), nil
}

// ApplyPool copies pool limits onto db. Zero values keep the database/sql defaults.
func ApplyPool(db *sql.DB, pool config.PoolConfig) {
	if pool.Max.Connections > 0 {
		db.SetMaxOpenConns(int(pool.Max.Connections))
	}
	if pool.Idle.Connections > 0 {
		db.SetMaxIdleConns(int(pool.Idle.Connections))
	}
	if pool.Idle.Time > 0 {
		db.SetConnMaxIdleTime(pool.Idle.Time)
	}
	if pool.Lifetime.Max > 0 {
		db.SetConnMaxLifetime(pool.Lifetime.Max)
	}
}

// Query executes a query that returns rows.
func (c *Conn) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns at most one row.
func (c *Conn) QueryRow(ctx context.Context, query string, args ...any) types.Row {
	return types.NewRowFromSQL(c.db.QueryRowContext(ctx, query, args...))
}

// Exec executes a statement without returning rows.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, query, args...)
}

// Health pings the database within HealthTimeout.
func (c *Conn) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()
	return c.db.PingContext(ctx)
}

// Stats returns pool statistics keyed for structured logging.
func (c *Conn) Stats() (map[string]any, error) {
	s := c.db.Stats()
	return map[string]any{
		"max_open_connections": s.MaxOpenConnections,
		"open_connections":     s.OpenConnections,
		"in_use":               s.InUse,
		"idle":                 s.Idle,
		"wait_count":           s.WaitCount,
		"wait_duration":        s.WaitDuration.String(),
		"max_idle_closed":      s.MaxIdleClosed,
		"max_idle_time_closed": s.MaxIdleTimeClosed,
		"max_lifetime_closed":  s.MaxLifetimeClosed,
	}, nil
}

// Close closes the pool.
func (c *Conn) Close() error {
	c.log.Info().Str("vendor", c.vendor).Msg("Closing database connection")
	return c.db.Close()
}

// DatabaseType returns the vendor identifier.
func (c *Conn) DatabaseType() string {
	return c.vendor
}

// DB exposes the underlying pool.
func (c *Conn) DB() *sql.DB {
	return c.db
}
