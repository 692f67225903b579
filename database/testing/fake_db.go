// Package testing provides an in-memory types.Interface for tests of code that runs
// statements through database.Executor.
//
//	db := dbtest.NewFakeDB("postgresql")
//	db.ExpectQuery("FROM orders").WithArgs("completed").WillReturnRows(
//	    dbtest.NewRowSet("id").AddRow(int64(7)),
//	)
//	exec, _ := database.NewExecutor(db, logger.Nop())
//
//nolint:revive // Package name mirrors the standard library on purpose; import it with an alias.
package testing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/gaborage/go-sqlfrag/database/types"
)

// ErrUnexpectedStatement is returned when no expectation matches a statement.
var ErrUnexpectedStatement = errors.New("unexpected statement")

// Call is one statement received by a FakeDB.
type Call struct {
	SQL  string
	Args []any
}

// QueryExpectation describes the result of matching Query and QueryRow calls.
type QueryExpectation struct {
	pattern string
	args    []any
	rows    *RowSet
	err     error
}

// ExecExpectation describes the result of matching Exec calls.
type ExecExpectation struct {
	pattern  string
	args     []any
	affected int64
	lastID   int64
	err      error
}

// FakeDB implements types.Interface with programmable results. Expectations are
// reusable and matched in registration order. It is safe for concurrent use.
type FakeDB struct {
	mu     sync.Mutex
	vendor string
	strict bool

	queries []*QueryExpectation
	execs   []*ExecExpectation

	queryLog []Call
	execLog  []Call

	// rows are materialized through sqlmock so callers receive real *sql.Rows.
	mockDB *sql.DB
	mock   sqlmock.Sqlmock

	healthErr error
	closed    bool
}

var _ types.Interface = (*FakeDB)(nil)

// NewFakeDB creates a FakeDB reporting vendor from DatabaseType.
func NewFakeDB(vendor string) *FakeDB {
	acceptAll := sqlmock.QueryMatcherFunc(func(string, string) error { return nil })
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(acceptAll))
	if err != nil {
		panic(fmt.Sprintf("sqlmock: %v", err))
	}
	return &FakeDB{vendor: vendor, mockDB: mockDB, mock: mock}
}

// StrictSQLMatching requires expectation patterns to equal the SQL exactly instead of
// being contained in it.
func (db *FakeDB) StrictSQLMatching() *FakeDB {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.strict = true
	return db
}

// ExpectQuery registers a Query/QueryRow expectation for SQL containing pattern.
func (db *FakeDB) ExpectQuery(pattern string) *QueryExpectation {
	db.mu.Lock()
	defer db.mu.Unlock()
	qe := &QueryExpectation{pattern: pattern}
	db.queries = append(db.queries, qe)
	return qe
}

// ExpectExec registers an Exec expectation for SQL containing pattern.
func (db *FakeDB) ExpectExec(pattern string) *ExecExpectation {
	db.mu.Lock()
	defer db.mu.Unlock()
	ee := &ExecExpectation{pattern: pattern}
	db.execs = append(db.execs, ee)
	return ee
}

// SetHealthError makes Health return err.
func (db *FakeDB) SetHealthError(err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.healthErr = err
}

// QueryLog returns the Query and QueryRow calls received so far.
func (db *FakeDB) QueryLog() []Call {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]Call(nil), db.queryLog...)
}

// ExecLog returns the Exec calls received so far.
func (db *FakeDB) ExecLog() []Call {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]Call(nil), db.execLog...)
}

// Query returns the rows of the first matching expectation.
func (db *FakeDB) Query(_ context.Context, query string, args ...any) (*sql.Rows, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.queryLog = append(db.queryLog, Call{SQL: query, Args: args})
	qe := db.findQuery(query, args)
	if qe == nil {
		return nil, fmt.Errorf("%w: query %q with args %v", ErrUnexpectedStatement, query, args)
	}
	if qe.err != nil {
		return nil, qe.err
	}
	return db.materialize(query, qe.rows)
}

// QueryRow returns the first row of the first matching expectation.
// A missing expectation or an empty RowSet surfaces through Scan.
func (db *FakeDB) QueryRow(_ context.Context, query string, args ...any) types.Row {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.queryLog = append(db.queryLog, Call{SQL: query, Args: args})
	qe := db.findQuery(query, args)
	if qe == nil {
		return errRow{err: fmt.Errorf("%w: query %q with args %v", ErrUnexpectedStatement, query, args)}
	}
	if qe.err != nil {
		return errRow{err: qe.err}
	}

	rows := qe.rows
	if rows == nil {
		rows = NewRowSet()
	}
	db.mock.ExpectQuery(query).WillReturnRows(rows.mockRows())
	return types.NewRowFromSQL(db.mockDB.QueryRow(query))
}

// Exec returns the result of the first matching expectation.
func (db *FakeDB) Exec(_ context.Context, query string, args ...any) (sql.Result, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.execLog = append(db.execLog, Call{SQL: query, Args: args})
	for _, ee := range db.execs {
		if !db.matches(ee.pattern, ee.args, query, args) {
			continue
		}
		if ee.err != nil {
			return nil, ee.err
		}
		return sqlmock.NewResult(ee.lastID, ee.affected), nil
	}
	return nil, fmt.Errorf("%w: exec %q with args %v", ErrUnexpectedStatement, query, args)
}

// Health returns the error set with SetHealthError, or an error after Close.
func (db *FakeDB) Health(context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return sql.ErrConnDone
	}
	return db.healthErr
}

// Stats reports the number of statements received.
func (db *FakeDB) Stats() (map[string]any, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return map[string]any{
		"queries": len(db.queryLog),
		"execs":   len(db.execLog),
	}, nil
}

// Close releases the row source. Query and QueryRow fail afterwards.
func (db *FakeDB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return nil
	}
	db.closed = true
	db.mock.ExpectClose()
	return db.mockDB.Close()
}

// DatabaseType returns the vendor given to NewFakeDB.
func (db *FakeDB) DatabaseType() string {
	return db.vendor
}

func (db *FakeDB) materialize(query string, rs *RowSet) (*sql.Rows, error) {
	if rs == nil {
		rs = NewRowSet()
	}
	db.mock.ExpectQuery(query).WillReturnRows(rs.mockRows())
	return db.mockDB.Query(query)
}

func (db *FakeDB) findQuery(query string, args []any) *QueryExpectation {
	for _, qe := range db.queries {
		if db.matches(qe.pattern, qe.args, query, args) {
			return qe
		}
	}
	return nil
}

func (db *FakeDB) matches(pattern string, wantArgs []any, query string, args []any) bool {
	if !db.matchSQL(pattern, query) {
		return false
	}
	return wantArgs == nil || reflect.DeepEqual(wantArgs, normalizeArgs(args))
}

func (db *FakeDB) matchSQL(pattern, query string) bool {
	if db.strict {
		return pattern == query
	}
	return strings.Contains(query, pattern)
}

func normalizeArgs(args []any) []any {
	if args == nil {
		return []any{}
	}
	return args
}

// WithArgs restricts the expectation to calls with exactly these arguments.
func (qe *QueryExpectation) WithArgs(args ...any) *QueryExpectation {
	qe.args = normalizeArgs(args)
	return qe
}

// WillReturnRows sets the rows returned by matching calls.
func (qe *QueryExpectation) WillReturnRows(rows *RowSet) *QueryExpectation {
	qe.rows = rows
	return qe
}

// WillReturnError makes matching calls fail with err.
func (qe *QueryExpectation) WillReturnError(err error) *QueryExpectation {
	qe.err = err
	return qe
}

// WithArgs restricts the expectation to calls with exactly these arguments.
func (ee *ExecExpectation) WithArgs(args ...any) *ExecExpectation {
	ee.args = normalizeArgs(args)
	return ee
}

// WillReturnResult sets the last insert id and affected row count of matching calls.
func (ee *ExecExpectation) WillReturnResult(lastInsertID, rowsAffected int64) *ExecExpectation {
	ee.lastID = lastInsertID
	ee.affected = rowsAffected
	return ee
}

// WillReturnError makes matching calls fail with err.
func (ee *ExecExpectation) WillReturnError(err error) *ExecExpectation {
	ee.err = err
	return ee
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }
func (r errRow) Err() error        { return r.err }
