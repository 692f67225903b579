package builder

import (
	"maps"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/gaborage/go-sqlfrag/internal/sqllex"
)

// FilterHandler turns one filter value into a condition template for column.
type FilterHandler func(qb *QueryBuilder, column string, value any) Template

// DefaultColumnMapping resolves the well-known filter keys when neither the call nor the
// mapper configuration names a column. Keys without a mapping use the key itself.
var DefaultColumnMapping = map[string]string{
	"search":    "title",
	"date_from": "created_at",
	"date_to":   "created_at",
}

// DefaultFilterHandlers is the dispatch table for keys with special meaning.
// Keys not listed here bind slices with IN and scalars with "=".
var DefaultFilterHandlers = map[string]FilterHandler{
	"search": func(qb *QueryBuilder, column string, value any) Template {
		text, ok := toText(value)
		if !ok {
			return Template{}
		}
		return qb.LikeTemplate(column, text, PatternSubstring)
	},
	"date_from": func(qb *QueryBuilder, column string, value any) Template {
		return qb.ConditionTemplate(column, value, string(OpGte), InferDataType(value))
	},
	"date_to": func(qb *QueryBuilder, column string, value any) Template {
		return qb.ConditionTemplate(column, value, string(OpLte), InferDataType(value))
	},
}

var filterValidate = newFilterValidator()

func newFilterValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("sqlident", func(fl validator.FieldLevel) bool {
		return sqllex.IsQualifiedIdentifier(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// FilterMapper maps request-style filter key/value pairs onto condition templates through
// a column mapping and a dispatch table keyed by filter name. A FilterMapper is immutable
// once built; Handle and WithColumns return modified copies.
type FilterMapper struct {
	columns  map[string]string
	handlers map[string]FilterHandler
}

// NewFilterMapper creates a mapper whose column mapping is DefaultColumnMapping overlaid
// with columns.
func NewFilterMapper(columns map[string]string) *FilterMapper {
	merged := maps.Clone(DefaultColumnMapping)
	maps.Copy(merged, columns)
	return &FilterMapper{
		columns:  merged,
		handlers: maps.Clone(DefaultFilterHandlers),
	}
}

// WithColumns returns a copy of the mapper with columns overlaid on its mapping.
func (m *FilterMapper) WithColumns(columns map[string]string) *FilterMapper {
	clone := m.clone()
	maps.Copy(clone.columns, columns)
	return clone
}

// Handle returns a copy of the mapper dispatching key to h. A nil h removes the key's
// handler so the key falls back to IN / "=" handling.
func (m *FilterMapper) Handle(key string, h FilterHandler) *FilterMapper {
	clone := m.clone()
	if h == nil {
		delete(clone.handlers, key)
	} else {
		clone.handlers[key] = h
	}
	return clone
}

func (m *FilterMapper) clone() *FilterMapper {
	return &FilterMapper{
		columns:  maps.Clone(m.columns),
		handlers: maps.Clone(m.handlers),
	}
}

// Column resolves key through mapping, then the mapper's columns, then the key itself.
func (m *FilterMapper) Column(key string, mapping map[string]string) string {
	if col, ok := mapping[key]; ok && col != "" {
		return col
	}
	if col, ok := m.columns[key]; ok && col != "" {
		return col
	}
	return key
}

// Templates returns one template per usable filter, ordered by filter key.
// Empty values (nil, "", false, zero numbers, empty collections) are skipped, except the
// string "0". Filters whose resolved column is not a plain or dotted identifier are skipped.
func (m *FilterMapper) Templates(qb *QueryBuilder, filters map[string]any, mapping map[string]string) []Template {
	templates := make([]Template, 0, len(filters))
	for _, key := range sortedKeys(filters) {
		value := filters[key]
		if isEmptyFilterValue(value) {
			continue
		}

		column := m.Column(key, mapping)
		if err := filterValidate.Var(column, "required,sqlident"); err != nil {
			continue
		}

		var t Template
		if h, ok := m.handlers[key]; ok {
			t = h(qb, column, value)
		} else if values, ok := toValueSlice(value); ok {
			t = qb.InTemplate(column, values, false)
		} else {
			t = qb.ConditionTemplate(column, value, string(OpEq), InferDataType(value))
		}

		if t.SQL != "" {
			templates = append(templates, t)
		}
	}
	return templates
}

// BuildConditions maps filters to inline conditions ready for WhereClause.
func (qb *QueryBuilder) BuildConditions(filters map[string]any, mapping map[string]string) []string {
	templates := qb.filters.Templates(qb, filters, mapping)
	conditions := make([]string, len(templates))
	for i, t := range templates {
		conditions[i] = t.Inline(qb.escaper)
	}
	return conditions
}

// BuildConditionsSafe maps filters to deferred conditions, appending their values to params
// in the order the conditions are returned.
func (qb *QueryBuilder) BuildConditionsSafe(params *Params, filters map[string]any, mapping map[string]string) []string {
	templates := qb.filters.Templates(qb, filters, mapping)
	conditions := make([]string, len(templates))
	for i, t := range templates {
		conditions[i] = t.Safe(params)
	}
	return conditions
}

// FilterWhere maps filters to deferred conditions and joins them into a WHERE clause with
// the builder's joiner. It returns "" when no filter applies.
func (qb *QueryBuilder) FilterWhere(params *Params, filters map[string]any, mapping map[string]string) string {
	return WhereClause(qb.BuildConditionsSafe(params, filters, mapping), qb.joiner)
}

func isEmptyFilterValue(v any) bool {
	if isNil(v) {
		return true
	}
	switch x := v.(type) {
	case string:
		return x == ""
	case bool:
		return !x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	default:
		return false
	}
}
