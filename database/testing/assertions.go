package testing

import (
	"fmt"
	"strings"
	"testing"
)

// AssertQueryExecuted fails the test if no Query or QueryRow call contained pattern.
func AssertQueryExecuted(t *testing.T, db *FakeDB, pattern string) {
	t.Helper()
	if countMatching(db.QueryLog(), pattern) == 0 {
		t.Errorf("expected query containing %q, got:\n%s", pattern, formatLog(db.QueryLog()))
	}
}

// AssertQueryNotExecuted fails the test if any Query or QueryRow call contained pattern.
func AssertQueryNotExecuted(t *testing.T, db *FakeDB, pattern string) {
	t.Helper()
	if n := countMatching(db.QueryLog(), pattern); n > 0 {
		t.Errorf("expected no query containing %q, got %d:\n%s", pattern, n, formatLog(db.QueryLog()))
	}
}

// AssertQueryCount fails the test unless exactly expected queries contained pattern.
func AssertQueryCount(t *testing.T, db *FakeDB, pattern string, expected int) {
	t.Helper()
	if n := countMatching(db.QueryLog(), pattern); n != expected {
		t.Errorf("expected %d queries containing %q, got %d:\n%s", expected, pattern, n, formatLog(db.QueryLog()))
	}
}

// AssertExecExecuted fails the test if no Exec call contained pattern.
func AssertExecExecuted(t *testing.T, db *FakeDB, pattern string) {
	t.Helper()
	if countMatching(db.ExecLog(), pattern) == 0 {
		t.Errorf("expected exec containing %q, got:\n%s", pattern, formatLog(db.ExecLog()))
	}
}

// AssertExecCount fails the test unless exactly expected Exec calls contained pattern.
func AssertExecCount(t *testing.T, db *FakeDB, pattern string, expected int) {
	t.Helper()
	if n := countMatching(db.ExecLog(), pattern); n != expected {
		t.Errorf("expected %d execs containing %q, got %d:\n%s", expected, pattern, n, formatLog(db.ExecLog()))
	}
}

func countMatching(calls []Call, pattern string) int {
	n := 0
	for _, c := range calls {
		if strings.Contains(c.SQL, pattern) {
			n++
		}
	}
	return n
}

func formatLog(calls []Call) string {
	if len(calls) == 0 {
		return "  (none)"
	}
	var b strings.Builder
	for i, c := range calls {
		fmt.Fprintf(&b, "  %d. %s %v\n", i+1, c.SQL, c.Args)
	}
	return b.String()
}
