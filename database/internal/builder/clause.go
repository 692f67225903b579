package builder

import (
	"fmt"
	"strconv"
	"strings"

	dbtypes "github.com/gaborage/go-sqlfrag/database/types"
)

// OrderBy is one ORDER BY term. Direction is normalized when rendered.
type OrderBy struct {
	Column    string
	Direction string
}

// OrderByMap converts a column→direction map into terms ordered by column name,
// since map iteration order is not stable.
func OrderByMap(m map[string]string) []OrderBy {
	keys := sortedKeys(m)
	terms := make([]OrderBy, len(keys))
	for i, k := range keys {
		terms[i] = OrderBy{Column: k, Direction: m[k]}
	}
	return terms
}

// WhereClause joins conditions into a WHERE clause.
// Empty conditions are dropped; joiner normalizes to AND or OR.
// Returns "" when nothing is left.
func WhereClause(conditions []string, joiner string) string {
	return keywordClause("WHERE", conditions, joiner)
}

// HavingClause joins conditions into a HAVING clause with the same rules as WhereClause.
func HavingClause(conditions []string, joiner string) string {
	return keywordClause("HAVING", conditions, joiner)
}

func keywordClause(keyword string, conditions []string, joiner string) string {
	kept := make([]string, 0, len(conditions))
	for _, c := range conditions {
		if c != "" {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return keyword + " " + strings.Join(kept, " "+NormalizeJoiner(joiner)+" ")
}

// OrderByClause renders quoted columns with normalized directions, comma-joined in input order.
func (qb *QueryBuilder) OrderByClause(terms []OrderBy) string {
	if len(terms) == 0 {
		return ""
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = qb.EscapeIdentifier(t.Column) + " " + NormalizeDirection(t.Direction)
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

// GroupByClause renders quoted columns, comma-joined.
func (qb *QueryBuilder) GroupByClause(columns []string) string {
	if len(columns) == 0 {
		return ""
	}
	return "GROUP BY " + strings.Join(qb.escapeIdentifiers(columns), ", ")
}

// LimitClause renders the vendor's pagination clause. A limit of zero or less means
// no limit and renders "".
//   - MySQL: LIMIT offset, limit (offset first) or LIMIT limit
//   - PostgreSQL: LIMIT limit OFFSET offset
//   - Oracle: OFFSET offset ROWS FETCH NEXT limit ROWS ONLY
func (qb *QueryBuilder) LimitClause(limit, offset int) string {
	if limit <= 0 {
		return ""
	}

	switch qb.vendor {
	case dbtypes.PostgreSQL:
		if offset > 0 {
			return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
		}
		return "LIMIT " + strconv.Itoa(limit)
	case dbtypes.Oracle:
		return buildOraclePaginationClause(limit, offset)
	default:
		if offset > 0 {
			return fmt.Sprintf("LIMIT %d, %d", offset, limit)
		}
		return "LIMIT " + strconv.Itoa(limit)
	}
}
