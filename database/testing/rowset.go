package testing

import (
	"database/sql/driver"
	"fmt"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

// RowSet is the result data a FakeDB query expectation returns.
//
//	rows := NewRowSet("id", "status").
//	    AddRow(int64(1), "pending").
//	    AddRow(int64(2), "shipped")
type RowSet struct {
	columns []string
	rows    [][]driver.Value
}

// NewRowSet creates an empty RowSet with the given column names.
func NewRowSet(columns ...string) *RowSet {
	return &RowSet{columns: columns}
}

// AddRow appends one row. It panics when the value count differs from the column count.
func (rs *RowSet) AddRow(values ...any) *RowSet {
	if len(values) != len(rs.columns) {
		panic(fmt.Sprintf("AddRow: expected %d values for columns %v, got %d", len(rs.columns), rs.columns, len(values)))
	}
	row := make([]driver.Value, len(values))
	for i, v := range values {
		row[i] = v
	}
	rs.rows = append(rs.rows, row)
	return rs
}

// AddRows appends count rows produced by generator.
func (rs *RowSet) AddRows(count int, generator func(i int) []any) *RowSet {
	for i := range count {
		rs.AddRow(generator(i)...)
	}
	return rs
}

// RowCount returns the number of rows.
func (rs *RowSet) RowCount() int {
	return len(rs.rows)
}

// Columns returns a copy of the column names.
func (rs *RowSet) Columns() []string {
	return append([]string(nil), rs.columns...)
}

func (rs *RowSet) mockRows() *sqlmock.Rows {
	rows := sqlmock.NewRows(rs.columns)
	for _, r := range rs.rows {
		rows.AddRow(r...)
	}
	return rows
}
