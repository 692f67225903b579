package builder

import (
	"database/sql"
	"testing"
	"time"

	dbtypes "github.com/gaborage/go-sqlfrag/database/types"
	"github.com/stretchr/testify/assert"
)

func TestLiteralEscaperInterpolate(t *testing.T) {
	mysql := LiteralEscaper{Vendor: dbtypes.MySQL}
	postgres := LiteralEscaper{Vendor: dbtypes.PostgreSQL}

	tests := []struct {
		name     string
		escaper  LiteralEscaper
		template string
		values   []any
		expected string
	}{
		{name: "string", escaper: mysql, template: "a = %s", values: []any{"x"}, expected: "a = 'x'"},
		{name: "mysql_quote", escaper: mysql, template: "a = %s", values: []any{"O'Brien"}, expected: `a = 'O\'Brien'`},
		{name: "mysql_backslash", escaper: mysql, template: "a = %s", values: []any{`C:\dir`}, expected: `a = 'C:\\dir'`},
		{name: "mysql_control_chars", escaper: mysql, template: "a = %s", values: []any{"x\ny\x00"}, expected: `a = 'x\ny\0'`},
		{name: "postgres_quote", escaper: postgres, template: "a = %s", values: []any{"O'Brien"}, expected: "a = 'O''Brien'"},
		{name: "postgres_backslash_untouched", escaper: postgres, template: "a = %s", values: []any{`C:\dir`}, expected: `a = 'C:\dir'`},
		{name: "int", escaper: mysql, template: "a = %d", values: []any{42}, expected: "a = 42"},
		{name: "int_from_string", escaper: mysql, template: "a = %d", values: []any{"17"}, expected: "a = 17"},
		{name: "int_non_numeric_is_zero", escaper: mysql, template: "a = %d", values: []any{"1 OR 1=1"}, expected: "a = 0"},
		{name: "float", escaper: mysql, template: "a = %f", values: []any{9.99}, expected: "a = 9.99"},
		{name: "float_non_numeric_is_zero", escaper: mysql, template: "a = %f", values: []any{"abc"}, expected: "a = 0"},
		{name: "bool_as_int", escaper: mysql, template: "a = %d", values: []any{true}, expected: "a = 1"},
		{name: "nil_is_null", escaper: mysql, template: "a = %s", values: []any{nil}, expected: "a = NULL"},
		{name: "missing_value_is_null", escaper: mysql, template: "a = %s AND b = %d", values: []any{"x"}, expected: "a = 'x' AND b = NULL"},
		{name: "surplus_ignored", escaper: mysql, template: "a = %d", values: []any{1, 2}, expected: "a = 1"},
		{name: "percent_literal", escaper: mysql, template: "a LIKE 'x%%' OR b = %d", values: []any{3}, expected: "a LIKE 'x%%' OR b = 3"},
		{name: "double_percent_outside_quotes", escaper: mysql, template: "a %% 2 = %d", values: []any{1}, expected: "a % 2 = 1"},
		{name: "token_inside_literal_kept", escaper: mysql, template: "a = '%s' AND b = %d", values: []any{5}, expected: "a = '%s' AND b = 5"},
		{name: "sql_null_string", escaper: mysql, template: "a = %s", values: []any{sql.NullString{}}, expected: "a = NULL"},
		{name: "sql_valid_int", escaper: mysql, template: "a = %d", values: []any{sql.NullInt64{Int64: 7, Valid: true}}, expected: "a = 7"},
		{
			name:     "time",
			escaper:  mysql,
			template: "a >= %s",
			values:   []any{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
			expected: "a >= '2024-01-02 03:04:05'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.escaper.Interpolate(tt.template, tt.values...))
		})
	}
}

func TestLiteralEscaperInlineLikeRoundTrip(t *testing.T) {
	// The inlined LIKE literal must keep the wildcard escapes intact for the server.
	got := Default().LikeClause(colTitle, "50%_off", PatternPrefix)
	assert.Equal(t, `title LIKE '50\\%\\_off%'`, got)

	got = NewQueryBuilder(dbtypes.PostgreSQL).LikeClause(colTitle, "50%_off", PatternPrefix)
	assert.Equal(t, `title LIKE '50\%\_off%'`, got)
}

func TestLiteralEscaperQuote(t *testing.T) {
	assert.Equal(t, "''", LiteralEscaper{}.Quote(""))
	assert.Equal(t, `'a\"b'`, LiteralEscaper{Vendor: dbtypes.MySQL}.Quote(`a"b`))
	assert.Equal(t, `'a"b'`, LiteralEscaper{Vendor: dbtypes.Oracle}.Quote(`a"b`))
}
