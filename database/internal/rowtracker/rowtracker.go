// Package rowtracker defers execution bookkeeping for single-row queries until the
// caller observes the row's outcome.
package rowtracker

import (
	"sync/atomic"

	"github.com/gaborage/go-sqlfrag/database/types"
)

// New wraps row so done runs exactly once, with the first Scan result or the first
// non-nil Err. A nil row or nil done returns row unchanged.
func New(row types.Row, done func(error)) types.Row {
	if row == nil || done == nil {
		return row
	}
	return &trackedRow{inner: row, done: done}
}

type trackedRow struct {
	inner    types.Row
	done     func(error)
	reported atomic.Bool
}

func (r *trackedRow) Scan(dest ...any) error {
	err := r.inner.Scan(dest...)
	r.report(err)
	return err
}

// Err reports only failures; a nil Err leaves the outcome to Scan.
func (r *trackedRow) Err() error {
	err := r.inner.Err()
	if err != nil {
		r.report(err)
	}
	return err
}

func (r *trackedRow) report(err error) {
	if r.reported.CompareAndSwap(false, true) {
		r.done(err)
	}
}
