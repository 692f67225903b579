package builder

import (
	"reflect"
	"strings"

	dbtypes "github.com/gaborage/go-sqlfrag/database/types"
)

// Template is a fragment with placeholder tokens and the values those tokens consume,
// in left-to-right order. It is the shared product of the inline and deferred builders.
type Template struct {
	SQL  string
	Args []any
}

// Safe appends the template's values to params and returns the tokenized fragment.
func (t Template) Safe(params *Params) string {
	params.Add(t.Args...)
	return t.SQL
}

// Inline resolves the template's values into literals through e.
func (t Template) Inline(e dbtypes.Escaper) string {
	if len(t.Args) == 0 {
		return t.SQL
	}
	return e.Interpolate(t.SQL, t.Args...)
}

// ConditionTemplate builds "column op token" for value.
//
// A nil value renders IS NULL when op is "=" and IS NOT NULL otherwise. An empty string
// with TypeString compares against the empty literal the same way instead of NULL.
// Neither case consumes a parameter.
func (qb *QueryBuilder) ConditionTemplate(column string, value any, op string, dataType DataType) Template {
	operator := NormalizeOperator(op)

	if isNil(value) {
		if operator == OpEq {
			return Template{SQL: column + " IS NULL"}
		}
		return Template{SQL: column + " IS NOT NULL"}
	}

	if s, ok := value.(string); ok && s == "" && dataType.Placeholder() == TokenString {
		if operator == OpEq {
			return Template{SQL: column + " = ''"}
		}
		return Template{SQL: column + " != ''"}
	}

	return Template{
		SQL:  column + " " + string(operator) + " " + dataType.Placeholder(),
		Args: []any{value},
	}
}

// InTemplate builds "column IN (...)" or "column NOT IN (...)" with one token per value.
// An empty set renders 1=0 for IN and 1=1 for NOT IN.
func (qb *QueryBuilder) InTemplate(column string, values []any, negate bool) Template {
	if len(values) == 0 {
		if negate {
			return Template{SQL: "1=1"}
		}
		return Template{SQL: "1=0"}
	}

	tokens := make([]string, len(values))
	for i, v := range values {
		tokens[i] = InferDataType(v).Placeholder()
	}

	keyword := " IN ("
	if negate {
		keyword = " NOT IN ("
	}

	args := make([]any, len(values))
	copy(args, values)
	return Template{
		SQL:  column + keyword + strings.Join(tokens, ", ") + ")",
		Args: args,
	}
}

// LikeTemplate builds "column LIKE %s" binding the escaped pattern for value.
// Oracle has no default LIKE escape character, so the escape clause is spelled out there.
func (qb *QueryBuilder) LikeTemplate(column, value string, patternType PatternType) Template {
	sql := column + " LIKE " + TokenString
	if qb.vendor == dbtypes.Oracle {
		sql += ` ESCAPE '` + LikeEscapeChar + `'`
	}
	return Template{SQL: sql, Args: []any{LikePattern(value, patternType)}}
}

// BetweenTemplate builds "column BETWEEN token AND token" binding min then max.
func (qb *QueryBuilder) BetweenTemplate(column string, lowerBound, upperBound any, dataType DataType) Template {
	token := dataType.Placeholder()
	return Template{
		SQL:  column + " BETWEEN " + token + " AND " + token,
		Args: []any{lowerBound, upperBound},
	}
}

// ========== Inline builders ==========

// Condition renders a comparison with the value resolved into an escaped literal.
func (qb *QueryBuilder) Condition(column string, value any, op string, dataType DataType) string {
	return qb.ConditionTemplate(column, value, op, dataType).Inline(qb.escaper)
}

// InClause renders an IN / NOT IN list with the values resolved into escaped literals.
func (qb *QueryBuilder) InClause(column string, values []any, negate bool) string {
	return qb.InTemplate(column, values, negate).Inline(qb.escaper)
}

// LikeClause renders a LIKE match with the escaped pattern resolved into a literal.
func (qb *QueryBuilder) LikeClause(column, value string, patternType PatternType) string {
	return qb.LikeTemplate(column, value, patternType).Inline(qb.escaper)
}

// BetweenClause renders a BETWEEN range with both bounds resolved into literals.
func (qb *QueryBuilder) BetweenClause(column string, lowerBound, upperBound any, dataType DataType) string {
	return qb.BetweenTemplate(column, lowerBound, upperBound, dataType).Inline(qb.escaper)
}

// ========== Deferred builders ==========

// ConditionSafe renders a comparison with a placeholder token and appends value to params.
func (qb *QueryBuilder) ConditionSafe(params *Params, column string, value any, op string, dataType DataType) string {
	return qb.ConditionTemplate(column, value, op, dataType).Safe(params)
}

// InClauseSafe renders an IN / NOT IN list of tokens and appends every value in order.
func (qb *QueryBuilder) InClauseSafe(params *Params, column string, values []any, negate bool) string {
	return qb.InTemplate(column, values, negate).Safe(params)
}

// LikeClauseSafe renders a LIKE match and appends the computed pattern, not the raw value.
func (qb *QueryBuilder) LikeClauseSafe(params *Params, column, value string, patternType PatternType) string {
	return qb.LikeTemplate(column, value, patternType).Safe(params)
}

// BetweenClauseSafe renders a BETWEEN range and appends lowerBound then upperBound.
func (qb *QueryBuilder) BetweenClauseSafe(params *Params, column string, lowerBound, upperBound any, dataType DataType) string {
	return qb.BetweenTemplate(column, lowerBound, upperBound, dataType).Safe(params)
}

// Values converts a typed slice into the []any the IN builders take.
func Values[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// toValueSlice expands slices and arrays held in an any. ok is false for scalars.
// []byte is treated as a scalar.
func toValueSlice(value any) (values []any, ok bool) {
	if _, isBytes := value.([]byte); isBytes {
		return nil, false
	}
	if vs, isAny := value.([]any); isAny {
		return vs, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}
