package builder

import (
	"reflect"
	"strings"
	"time"
)

// DataType selects the placeholder token a value is bound through.
type DataType string

const (
	TypeString DataType = "string"
	TypeInt    DataType = "int"
	TypeFloat  DataType = "float"
)

// Placeholder tokens understood by Bind and LiteralEscaper.
const (
	TokenString = "%s"
	TokenInt    = "%d"
	TokenFloat  = "%f"
)

// Placeholder returns the token for the data type. Unknown types render as text.
func (dt DataType) Placeholder() string {
	switch dt {
	case TypeInt:
		return TokenInt
	case TypeFloat:
		return TokenFloat
	default:
		return TokenString
	}
}

// ParseDataType maps a loose type name onto a DataType, defaulting to TypeString.
func ParseDataType(s string) DataType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int", "integer", "%d":
		return TypeInt
	case "float", "double", "decimal", "%f":
		return TypeFloat
	default:
		return TypeString
	}
}

// InferDataType picks a data type from a Go value.
// Integers, unsigned integers and booleans bind as TypeInt, floats as TypeFloat,
// everything else (strings, times, nil) as TypeString.
func InferDataType(v any) DataType {
	if v == nil {
		return TypeString
	}
	if _, ok := v.(time.Time); ok {
		return TypeString
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Bool:
		return TypeInt
	case reflect.Float32, reflect.Float64:
		return TypeFloat
	default:
		return TypeString
	}
}

// Operator is a comparison operator accepted by Condition.
type Operator string

const (
	OpEq      Operator = "="
	OpNotEq   Operator = "!="
	OpNe      Operator = "<>"
	OpGt      Operator = ">"
	OpGte     Operator = ">="
	OpLt      Operator = "<"
	OpLte     Operator = "<="
	OpLike    Operator = "LIKE"
	OpNotLike Operator = "NOT LIKE"
)

var validOperators = map[Operator]struct{}{
	OpEq: {}, OpNotEq: {}, OpNe: {}, OpGt: {}, OpGte: {}, OpLt: {}, OpLte: {}, OpLike: {}, OpNotLike: {},
}

// NormalizeOperator returns the canonical operator for op.
// Matching is case-insensitive; anything unrecognized becomes "=".
func NormalizeOperator(op string) Operator {
	candidate := Operator(strings.ToUpper(op))
	if _, ok := validOperators[candidate]; ok {
		return candidate
	}
	return OpEq
}

// Logical joiners for WHERE and HAVING.
const (
	JoinAnd = "AND"
	JoinOr  = "OR"
)

// NormalizeJoiner returns "OR" when joiner is OR in any case, otherwise "AND".
func NormalizeJoiner(joiner string) string {
	if strings.EqualFold(joiner, JoinOr) {
		return JoinOr
	}
	return JoinAnd
}

// Sort directions for ORDER BY.
const (
	Asc  = "ASC"
	Desc = "DESC"
)

// NormalizeDirection returns "DESC" when direction is DESC in any case, otherwise "ASC".
func NormalizeDirection(direction string) string {
	if strings.EqualFold(direction, Desc) {
		return Desc
	}
	return Asc
}
