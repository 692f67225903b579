// Package builder provides the SQL fragment builders behind the database package.
// It renders conditions, clauses and SELECT statements either inline (values resolved
// into escaped literals through an Escaper) or deferred (typed placeholder tokens with
// the values appended to a caller-owned Params list).
package builder

import (
	"strings"

	dbtypes "github.com/gaborage/go-sqlfrag/database/types"
)

// QueryBuilder renders vendor-aware SQL fragments.
// It holds no per-query state and may be shared between goroutines; the Params lists
// passed to its deferred methods may not.
type QueryBuilder struct {
	vendor  dbtypes.Vendor
	escaper dbtypes.Escaper
	filters *FilterMapper
	joiner  string
}

var defaultBuilder = NewQueryBuilder(dbtypes.MySQL)

// Default returns the MySQL query builder used by the package-level functions.
func Default() *QueryBuilder {
	return defaultBuilder
}

// NewQueryBuilder creates a query builder for the specified database vendor.
// Unknown vendors fall back to MySQL rendering. Inline methods use a LiteralEscaper
// for the vendor until WithEscaper replaces it.
func NewQueryBuilder(vendor dbtypes.Vendor) *QueryBuilder {
	v := normalizeVendor(vendor)
	return &QueryBuilder{
		vendor:  v,
		escaper: LiteralEscaper{Vendor: v},
		filters: NewFilterMapper(nil),
		joiner:  JoinAnd,
	}
}

// WithEscaper returns a copy of the builder whose inline methods resolve values through e.
// A nil escaper keeps the current one.
func (qb *QueryBuilder) WithEscaper(e dbtypes.Escaper) *QueryBuilder {
	clone := *qb
	if e != nil {
		clone.escaper = e
	}
	return &clone
}

// WithFilterMapper returns a copy of the builder that maps dynamic filters through m.
func (qb *QueryBuilder) WithFilterMapper(m *FilterMapper) *QueryBuilder {
	clone := *qb
	if m != nil {
		clone.filters = m
	}
	return &clone
}

// WithJoiner returns a copy of the builder whose filter WHERE clauses join with joiner.
func (qb *QueryBuilder) WithJoiner(joiner string) *QueryBuilder {
	clone := *qb
	clone.joiner = NormalizeJoiner(joiner)
	return &clone
}

// Vendor returns the database vendor string
func (qb *QueryBuilder) Vendor() string {
	return qb.vendor
}

// Escaper returns the escaper inline methods use.
func (qb *QueryBuilder) Escaper() dbtypes.Escaper {
	return qb.escaper
}

// FilterMapper returns the mapper used by BuildConditions.
func (qb *QueryBuilder) FilterMapper() *FilterMapper {
	return qb.filters
}

// EscapeIdentifier quotes a table or column identifier according to vendor rules.
// Dotted names are quoted per part, "*" and already quoted parts are left alone.
func (qb *QueryBuilder) EscapeIdentifier(identifier string) string {
	if qb.vendor == dbtypes.Oracle {
		return oracleQuoteIdentifier(identifier)
	}

	quote := `"`
	if qb.vendor == dbtypes.MySQL {
		quote = "`"
	}

	parts := strings.Split(identifier, ".")
	for i, part := range parts {
		if part == "*" {
			continue
		}
		if len(part) >= 2 && part[0] == quote[0] && part[len(part)-1] == quote[0] {
			// Already quoted, skip
			continue
		}
		parts[i] = quote + strings.ReplaceAll(part, quote, quote+quote) + quote
	}

	return strings.Join(parts, ".")
}

// escapeIdentifiers returns a new slice containing the escaped form of each identifier.
func (qb *QueryBuilder) escapeIdentifiers(columns []string) []string {
	escaped := make([]string, len(columns))
	for i, col := range columns {
		escaped[i] = qb.EscapeIdentifier(col)
	}
	return escaped
}

// Bind converts a deferred-mode template and its parameters into vendor placeholders.
func (qb *QueryBuilder) Bind(template string, params *Params) (query string, args []any, err error) {
	return Bind(qb.vendor, template, params.Values())
}

// normalizeVendor maps vendor aliases onto the supported identifiers.
func normalizeVendor(vendor dbtypes.Vendor) dbtypes.Vendor {
	switch strings.ToLower(strings.TrimSpace(vendor)) {
	case dbtypes.PostgreSQL, "postgres", "pgx":
		return dbtypes.PostgreSQL
	case dbtypes.Oracle, "ora":
		return dbtypes.Oracle
	default:
		return dbtypes.MySQL
	}
}
