package builder

import (
	"testing"

	dbtypes "github.com/gaborage/go-sqlfrag/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConditionsSafe(t *testing.T) {
	tests := []struct {
		name           string
		filters        map[string]any
		mapping        map[string]string
		expected       []string
		expectedParams []any
	}{
		{
			name: "well_known_keys_sorted",
			filters: map[string]any{
				"search":    "shoes",
				"date_from": "2024-01-01",
				"date_to":   "2024-12-31",
				"status":    []any{"paid", "shipped"},
			},
			expected: []string{
				"created_at >= %s",
				"created_at <= %s",
				"title LIKE %s",
				"status IN (%s, %s)",
			},
			expectedParams: []any{"2024-01-01", "2024-12-31", "%shoes%", "paid", "shipped"},
		},
		{
			name:           "mapping_override",
			filters:        map[string]any{"search": "bag"},
			mapping:        map[string]string{"search": "p.name"},
			expected:       []string{"p.name LIKE %s"},
			expectedParams: []any{"%bag%"},
		},
		{
			name:           "search_escapes_wildcards",
			filters:        map[string]any{"search": "50%"},
			expected:       []string{"title LIKE %s"},
			expectedParams: []any{`%50\%%`},
		},
		{
			name: "falsy_values_skipped",
			filters: map[string]any{
				"a": nil,
				"b": "",
				"c": false,
				"d": 0,
				"e": []string{},
				"f": 0.0,
			},
			expected:       []string{},
			expectedParams: []any{},
		},
		{
			name:           "string_zero_kept",
			filters:        map[string]any{"flag": "0"},
			expected:       []string{"flag = %s"},
			expectedParams: []any{"0"},
		},
		{
			name:           "scalar_types_inferred",
			filters:        map[string]any{"qty": 3, "rate": 1.5},
			expected:       []string{"qty = %d", "rate = %f"},
			expectedParams: []any{3, 1.5},
		},
		{
			name:           "typed_slice_in",
			filters:        map[string]any{"id": []int{1, 2, 3}},
			expected:       []string{"id IN (%d, %d, %d)"},
			expectedParams: []any{1, 2, 3},
		},
		{
			name:           "invalid_column_skipped",
			filters:        map[string]any{"name; DROP TABLE users": "x", "ok": "y"},
			expected:       []string{"ok = %s"},
			expectedParams: []any{"y"},
		},
		{
			name:           "invalid_mapped_column_skipped",
			filters:        map[string]any{"search": "x"},
			mapping:        map[string]string{"search": "title OR 1=1"},
			expected:       []string{},
			expectedParams: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := NewParams()
			conditions := BuildConditionsSafe(params, tt.filters, tt.mapping)

			assert.Equal(t, tt.expected, conditions)
			assert.Equal(t, tt.expectedParams, params.Values())

			placeholders := 0
			for _, c := range conditions {
				placeholders += CountPlaceholders(c)
			}
			assert.Equal(t, params.Len(), placeholders)
		})
	}
}

func TestBuildConditionsInline(t *testing.T) {
	conditions := BuildConditions(map[string]any{
		"search": "O'Brien",
		"status": statusActive,
		"id":     []any{1, 2},
	}, nil)

	require.Len(t, conditions, 3)
	assert.Equal(t, "id IN (1, 2)", conditions[0])
	assert.Equal(t, `title LIKE '%O\'Brien%'`, conditions[1])
	assert.Equal(t, `status = 'active'`, conditions[2])
}

func TestFilterMapperConfiguration(t *testing.T) {
	t.Run("configured_columns", func(t *testing.T) {
		qb := Default().WithFilterMapper(NewFilterMapper(map[string]string{"search": "description"}))
		params := NewParams()

		conditions := qb.BuildConditionsSafe(params, map[string]any{"search": "x", "date_to": "2024-01-01"}, nil)

		assert.Equal(t, []string{"created_at <= %s", "description LIKE %s"}, conditions)
	})

	t.Run("call_mapping_beats_configured", func(t *testing.T) {
		m := NewFilterMapper(map[string]string{"search": "description"})
		assert.Equal(t, "summary", m.Column("search", map[string]string{"search": "summary"}))
		assert.Equal(t, "description", m.Column("search", map[string]string{"search": ""}))
		assert.Equal(t, "other", m.Column("other", nil))
	})

	t.Run("with_columns_copies", func(t *testing.T) {
		base := NewFilterMapper(nil)
		derived := base.WithColumns(map[string]string{"search": "body"})

		assert.Equal(t, "title", base.Column("search", nil))
		assert.Equal(t, "body", derived.Column("search", nil))
	})

	t.Run("custom_handler", func(t *testing.T) {
		m := NewFilterMapper(nil).Handle("min_total", func(qb *QueryBuilder, _ string, value any) Template {
			return qb.ConditionTemplate("total", value, ">=", TypeInt)
		})
		qb := Default().WithFilterMapper(m)
		params := NewParams()

		conditions := qb.BuildConditionsSafe(params, map[string]any{"min_total": 100}, nil)

		assert.Equal(t, []string{"total >= %d"}, conditions)
		assert.Equal(t, []any{100}, params.Values())
	})

	t.Run("nil_handler_restores_default_dispatch", func(t *testing.T) {
		qb := Default().WithFilterMapper(NewFilterMapper(nil).Handle("search", nil))
		params := NewParams()

		conditions := qb.BuildConditionsSafe(params, map[string]any{"search": "x"}, nil)

		assert.Equal(t, []string{"title = %s"}, conditions)
	})

	t.Run("defaults_not_mutated", func(t *testing.T) {
		NewFilterMapper(map[string]string{"search": "changed"}).Handle("search", nil)

		assert.Equal(t, "title", DefaultColumnMapping["search"])
		assert.Contains(t, DefaultFilterHandlers, "search")
	})
}

func TestBuildConditionsOracleLike(t *testing.T) {
	qb := NewQueryBuilder(dbtypes.Oracle)
	params := NewParams()

	conditions := qb.BuildConditionsSafe(params, map[string]any{"search": "x"}, nil)

	assert.Equal(t, []string{`title LIKE %s ESCAPE '\'`}, conditions)
	assert.Equal(t, 1, qb.CountPlaceholders(conditions[0]))
}

func TestFilterWhere(t *testing.T) {
	filters := map[string]any{"status": statusActive, "search": "x"}

	t.Run("default_and", func(t *testing.T) {
		params := NewParams()
		assert.Equal(t, "WHERE title LIKE %s AND status = %s", Default().FilterWhere(params, filters, nil))
		assert.Equal(t, []any{"%x%", statusActive}, params.Values())
	})

	t.Run("configured_or", func(t *testing.T) {
		params := NewParams()
		qb := NewQueryBuilder(dbtypes.PostgreSQL).WithJoiner("or")
		assert.Equal(t, "WHERE title LIKE %s OR status = %s", qb.FilterWhere(params, filters, nil))
	})

	t.Run("nothing_applies", func(t *testing.T) {
		params := NewParams()
		assert.Equal(t, "", Default().FilterWhere(params, map[string]any{"status": ""}, nil))
		assert.Zero(t, params.Len())
	})
}
