//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

import (
	"context"
	"database/sql"
)

// Querier defines the core query execution operations the fragment executor needs.
// It is deliberately small so unit tests can replace it with sqlmock or a hand-rolled fake.
//
// The query passed to these methods already uses vendor-specific placeholders:
//   - MySQL: ?
//   - PostgreSQL: $1, $2, $3
//   - Oracle: :1, :2, :3
//
// Fragment templates (%s, %d, %f) are converted by database.Executor before reaching a Querier.
type Querier interface {
	// Query executes a SQL query that returns rows, typically a SELECT statement.
	// The caller is responsible for closing the returned rows.
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// QueryRow executes a SQL query that is expected to return at most one row.
	// QueryRow always returns a non-nil value. Errors are deferred until Row's Scan method is called.
	QueryRow(ctx context.Context, query string, args ...any) Row

	// Exec executes a SQL statement that doesn't return rows, typically INSERT, UPDATE, or DELETE.
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)

	// DatabaseType returns the vendor identifier for this database connection.
	// The executor uses it to pick the placeholder format.
	DatabaseType() string
}
