package builder

// Package-level functions render with the default MySQL builder: backtick identifiers,
// offset-first LIMIT and a MySQL LiteralEscaper for inline values.

// Condition renders column op value with the value inlined as an escaped literal.
func Condition(column string, value any, op string, dataType DataType) string {
	return defaultBuilder.Condition(column, value, op, dataType)
}

// ConditionSafe renders column op token and appends value to params.
func ConditionSafe(params *Params, column string, value any, op string, dataType DataType) string {
	return defaultBuilder.ConditionSafe(params, column, value, op, dataType)
}

// InClause renders column IN (...) with inlined literals; negate renders NOT IN.
func InClause(column string, values []any, negate bool) string {
	return defaultBuilder.InClause(column, values, negate)
}

// InClauseSafe renders column IN (tokens) and appends values in order.
func InClauseSafe(params *Params, column string, values []any, negate bool) string {
	return defaultBuilder.InClauseSafe(params, column, values, negate)
}

// LikeClause renders column LIKE with the escaped pattern inlined.
func LikeClause(column, value string, patternType PatternType) string {
	return defaultBuilder.LikeClause(column, value, patternType)
}

// LikeClauseSafe renders column LIKE %s and appends the escaped pattern.
func LikeClauseSafe(params *Params, column, value string, patternType PatternType) string {
	return defaultBuilder.LikeClauseSafe(params, column, value, patternType)
}

// BetweenClause renders column BETWEEN min AND max with inlined literals.
func BetweenClause(column string, lowerBound, upperBound any, dataType DataType) string {
	return defaultBuilder.BetweenClause(column, lowerBound, upperBound, dataType)
}

// BetweenClauseSafe renders column BETWEEN token AND token and appends min then max.
func BetweenClauseSafe(params *Params, column string, lowerBound, upperBound any, dataType DataType) string {
	return defaultBuilder.BetweenClauseSafe(params, column, lowerBound, upperBound, dataType)
}

// OrderByClause renders ORDER BY with backtick-quoted columns.
func OrderByClause(terms []OrderBy) string {
	return defaultBuilder.OrderByClause(terms)
}

// GroupByClause renders GROUP BY with backtick-quoted columns.
func GroupByClause(columns []string) string {
	return defaultBuilder.GroupByClause(columns)
}

// LimitClause renders MySQL's LIMIT [offset, ]limit, or "" when limit <= 0.
func LimitClause(limit, offset int) string {
	return defaultBuilder.LimitClause(limit, offset)
}

// SelectStatement assembles a SELECT with backtick-quoted columns.
func SelectStatement(table string, columns []string, clauses Clauses) string {
	return defaultBuilder.SelectStatement(table, columns, clauses)
}

// BuildConditions maps filters to inline conditions.
func BuildConditions(filters map[string]any, mapping map[string]string) []string {
	return defaultBuilder.BuildConditions(filters, mapping)
}

// BuildConditionsSafe maps filters to deferred conditions, appending values to params.
func BuildConditionsSafe(params *Params, filters map[string]any, mapping map[string]string) []string {
	return defaultBuilder.BuildConditionsSafe(params, filters, mapping)
}

// NewQuery pairs a deferred-mode template with a snapshot of params.
func NewQuery(template string, params *Params) Query {
	return defaultBuilder.NewQuery(template, params)
}
