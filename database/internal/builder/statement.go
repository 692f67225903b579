package builder

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// Clauses holds the already composed clauses of a SELECT statement.
// Empty clauses are skipped.
type Clauses struct {
	Where   string
	GroupBy string
	Having  string
	OrderBy string
	Limit   string
}

// SelectStatement renders "SELECT columns FROM table" followed by each non-empty clause
// in the order WHERE, GROUP BY, HAVING, ORDER BY, LIMIT. Columns are quoted individually;
// no columns selects *. The table name is used as given.
func (qb *QueryBuilder) SelectStatement(table string, columns []string, clauses Clauses) string {
	selectList := "*"
	if len(columns) > 0 {
		selectList = strings.Join(qb.escapeIdentifiers(columns), ", ")
	}

	parts := []string{"SELECT " + selectList + " FROM " + table}
	for _, clause := range []string{clauses.Where, clauses.GroupBy, clauses.Having, clauses.OrderBy, clauses.Limit} {
		if clause != "" {
			parts = append(parts, clause)
		}
	}
	return strings.Join(parts, " ")
}

// Query pairs a deferred-mode statement with its parameters.
// It implements squirrel.Sqlizer so a composed statement can be nested in squirrel
// builders, for example as a subquery or a raw WHERE predicate.
type Query struct {
	SQL    string
	Params []any

	backslashEscapes bool
}

var _ squirrel.Sqlizer = Query{}

// NewQuery pairs template with a snapshot of params using the builder's literal rules.
func (qb *QueryBuilder) NewQuery(template string, params *Params) Query {
	return Query{
		SQL:              template,
		Params:           params.Values(),
		backslashEscapes: usesBackslashEscapes(qb.vendor),
	}
}

// ToSql returns the statement with question mark placeholders and coerced arguments.
// Literal question marks come back as ?? so an enclosing squirrel builder keeps them
// intact when it applies a Dollar or Colon format. squirrel.Question leaves ?? as written,
// so use Bind for driver-ready SQL.
//
//nolint:revive // ToSql is required by squirrel.Sqlizer interface (lowercase 's')
func (q Query) ToSql() (sql string, args []any, err error) {
	return bind(q.SQL, q.Params, q.backslashEscapes, nil)
}

// ToSQL is a convenience method with idiomatic Go naming (uppercase SQL).
func (q Query) ToSQL() (sql string, args []any, err error) {
	return q.ToSql()
}
