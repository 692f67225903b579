// Package types contains the core database interface definitions for go-sqlfrag.
// These interfaces are separate from the main database package to avoid import cycles
// and to make them easily accessible for mocking and testing.
//
//nolint:revive // Package name "types" is intentionally generic to avoid circular
package types

import (
	"context"
	"database/sql"
	"errors"
)

// Database vendor identifiers shared across the database packages.
type Vendor = string

const (
	MySQL      Vendor = "mysql"
	PostgreSQL Vendor = "postgresql"
	Oracle     Vendor = "oracle"
)

// Row represents a single result set row with basic scanning behaviour.
type Row interface {
	Scan(dest ...any) error
	Err() error
}

type sqlRowAdapter struct {
	row *sql.Row
}

// NewRowFromSQL wraps the provided *sql.Row in a Row.
// If row is nil, NewRowFromSQL returns nil.
func NewRowFromSQL(row *sql.Row) Row {
	if row == nil {
		return nil
	}
	return &sqlRowAdapter{row: row}
}

func (r *sqlRowAdapter) Scan(dest ...any) error {
	if r == nil || r.row == nil {
		return errors.New("sqlRowAdapter: underlying sql.Row is nil")
	}
	return r.row.Scan(dest...)
}

func (r *sqlRowAdapter) Err() error {
	if r == nil || r.row == nil {
		return errors.New("sqlRowAdapter: underlying sql.Row is nil")
	}
	return r.row.Err()
}

// Interface defines the connection operations the executor relies on.
// Vendor connections in database/mysql, database/postgresql and database/oracle implement it.
type Interface interface {
	Querier

	// Health and diagnostics
	Health(ctx context.Context) error
	Stats() (map[string]any, error)

	// Connection management
	Close() error
}

// Escaper resolves typed placeholder tokens (%s, %d, %f) into escaped SQL literals.
// It is the capability inline-mode builders depend on: the same operation a prepared
// statement performs, applied eagerly to produce self-contained SQL text.
//
// Implementations must be total: a value that cannot be coerced to the token's type
// degrades to a safe literal (empty string, 0) instead of failing.
type Escaper interface {
	Interpolate(template string, values ...any) string
}
