// Package database builds parameterized SQL fragments and runs the statements assembled
// from them.
//
// Fragments are rendered in one of two modes. Inline builders (Condition, InClause, ...)
// resolve values into escaped literals through an Escaper. Deferred builders
// (ConditionSafe, InClauseSafe, ...) emit typed placeholder tokens (%s, %d, %f) and append
// the values to a caller-owned Params list, which an Executor later binds to the vendor's
// native placeholders.
package database

import (
	"github.com/gaborage/go-sqlfrag/config"
	"github.com/gaborage/go-sqlfrag/database/internal/builder"
	"github.com/gaborage/go-sqlfrag/logger"
)

// Re-export the internal builder types as the public API
type (
	QueryBuilder   = builder.QueryBuilder
	Params         = builder.Params
	Template       = builder.Template
	OrderBy        = builder.OrderBy
	Clauses        = builder.Clauses
	Query          = builder.Query
	DataType       = builder.DataType
	Operator       = builder.Operator
	PatternType    = builder.PatternType
	FilterMapper   = builder.FilterMapper
	FilterHandler  = builder.FilterHandler
	LiteralEscaper = builder.LiteralEscaper
)

// Re-export internal constants
const (
	TypeString = builder.TypeString
	TypeInt    = builder.TypeInt
	TypeFloat  = builder.TypeFloat

	PatternPrefix    = builder.PatternPrefix
	PatternSuffix    = builder.PatternSuffix
	PatternSubstring = builder.PatternSubstring
	PatternExact     = builder.PatternExact

	OpEq      = builder.OpEq
	OpNotEq   = builder.OpNotEq
	OpNe      = builder.OpNe
	OpGt      = builder.OpGt
	OpGte     = builder.OpGte
	OpLt      = builder.OpLt
	OpLte     = builder.OpLte
	OpLike    = builder.OpLike
	OpNotLike = builder.OpNotLike

	JoinAnd = builder.JoinAnd
	JoinOr  = builder.JoinOr
	Asc     = builder.Asc
	Desc    = builder.Desc

	LikeEscapeChar = builder.LikeEscapeChar
	DateTimeLayout = builder.DateTimeLayout
)

// Re-export internal functions as public API.
// Package-level builders render with the MySQL defaults.
var (
	NewQueryBuilder = builder.NewQueryBuilder
	NewParams       = builder.NewParams
	NewFilterMapper = builder.NewFilterMapper

	EscapeLikeWildcards   = builder.EscapeLikeWildcards
	UnescapeLikeWildcards = builder.UnescapeLikeWildcards
	LikePattern           = builder.LikePattern
	ParsePatternType      = builder.ParsePatternType
	ParseDataType         = builder.ParseDataType
	InferDataType         = builder.InferDataType
	NormalizeOperator     = builder.NormalizeOperator
	NormalizeJoiner       = builder.NormalizeJoiner
	NormalizeDirection    = builder.NormalizeDirection
	CountPlaceholders     = builder.CountPlaceholders

	Condition           = builder.Condition
	ConditionSafe       = builder.ConditionSafe
	InClause            = builder.InClause
	InClauseSafe        = builder.InClauseSafe
	LikeClause          = builder.LikeClause
	LikeClauseSafe      = builder.LikeClauseSafe
	BetweenClause       = builder.BetweenClause
	BetweenClauseSafe   = builder.BetweenClauseSafe
	WhereClause         = builder.WhereClause
	HavingClause        = builder.HavingClause
	OrderByClause       = builder.OrderByClause
	OrderByMap          = builder.OrderByMap
	GroupByClause       = builder.GroupByClause
	LimitClause         = builder.LimitClause
	SelectStatement     = builder.SelectStatement
	BuildConditions     = builder.BuildConditions
	BuildConditionsSafe = builder.BuildConditionsSafe
	NewQuery            = builder.NewQuery
	Bind                = builder.Bind
)

// Values converts a typed slice into the []any the IN builders take.
func Values[T any](values []T) []any {
	return builder.Values(values)
}

// NewQueryBuilderFromConfig creates a query builder for cfg.BuilderVendor() whose dynamic
// filters use the configured column mapping and joiner.
func NewQueryBuilderFromConfig(cfg *config.Config, log logger.Logger) *QueryBuilder {
	qb := builder.NewQueryBuilder(cfg.BuilderVendor()).
		WithFilterMapper(builder.NewFilterMapper(cfg.Builder.Columns)).
		WithJoiner(cfg.Builder.Joiner)

	if log != nil {
		log.Debug().
			Str("vendor", qb.Vendor()).
			Str("joiner", builder.NormalizeJoiner(cfg.Builder.Joiner)).
			Int("column_mappings", len(cfg.Builder.Columns)).
			Msg("Query builder configured")
	}
	return qb
}
