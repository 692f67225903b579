package builder

import (
	"fmt"
	"strings"

	"github.com/gaborage/go-sqlfrag/internal/sqllex"
)

// oracleQuoteIdentifier quotes only what Oracle requires: reserved words (upper-cased to
// match Oracle's default identifier case) and names with characters outside [A-Za-z0-9_$#].
// Plain names stay unquoted so they keep Oracle's case-insensitive resolution.
func oracleQuoteIdentifier(column string) string {
	trimmed := strings.TrimSpace(column)
	if trimmed == "" || trimmed == "*" {
		return trimmed
	}

	if strings.Contains(trimmed, ".") {
		parts := strings.Split(trimmed, ".")
		for i, part := range parts {
			parts[i] = oracleQuoteIdentifier(part)
		}
		return strings.Join(parts, ".")
	}

	if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
		return trimmed
	}

	if sqllex.IsOracleReservedWord(trimmed) {
		return `"` + strings.ToUpper(trimmed) + `"`
	}

	if !sqllex.IsPlainIdentifier(trimmed) {
		return `"` + strings.ReplaceAll(trimmed, `"`, `""`) + `"`
	}

	return trimmed
}

// buildOraclePaginationClause constructs an Oracle 12c+ pagination clause using OFFSET and
// FETCH NEXT syntax. It is empty when limit is zero or less.
func buildOraclePaginationClause(limit, offset int) string {
	if limit <= 0 {
		return ""
	}

	parts := make([]string, 0, 2)
	if offset > 0 {
		parts = append(parts, fmt.Sprintf("OFFSET %d ROWS", offset))
	}
	parts = append(parts, fmt.Sprintf("FETCH NEXT %d ROWS ONLY", limit))

	return strings.Join(parts, " ")
}
