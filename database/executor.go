package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/gaborage/go-sqlfrag/database/internal/builder"
	"github.com/gaborage/go-sqlfrag/database/internal/rowtracker"
	"github.com/gaborage/go-sqlfrag/database/types"
	"github.com/gaborage/go-sqlfrag/logger"
)

// Executor defaults
const (
	DefaultSlowQueryThreshold = 200 * time.Millisecond
	DefaultMaxQueryLength     = 1000
)

// BoundStatement is a deferred-mode template bound to a vendor: SQL carries the vendor's
// native placeholders and Args the coerced parameters in placeholder order.
type BoundStatement struct {
	Template string
	SQL      string
	Args     []any
}

// Executor binds deferred-mode templates and runs them on a Querier.
// Every execution is logged at debug level (warn when slow, error when failed), traced as
// an OpenTelemetry client span with call metrics, and recorded into the request's
// logger.WithQueryStats context when present.
// An Executor is safe for concurrent use when its Querier is.
type Executor struct {
	db      types.Querier
	vendor  string
	escaper builder.LiteralEscaper
	log     logger.Logger

	slowQueryThreshold time.Duration
	maxQueryLength     int
	logArgs            bool

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	telemetry      telemetry
}

// ExecutorOption customizes an Executor.
type ExecutorOption func(*Executor)

// WithSlowQueryThreshold sets the duration above which statements are logged at warn level.
func WithSlowQueryThreshold(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.slowQueryThreshold = d
		}
	}
}

// WithMaxQueryLength truncates logged SQL to n characters. Zero or less disables truncation.
func WithMaxQueryLength(n int) ExecutorOption {
	return func(e *Executor) {
		e.maxQueryLength = n
	}
}

// WithArgLogging includes bound arguments in execution logs. Arguments are logged under
// the "args" key, which the logger's sensitive data filter can be configured to mask.
func WithArgLogging() ExecutorOption {
	return func(e *Executor) {
		e.logArgs = true
	}
}

// WithTracerProvider sets the provider for statement spans. The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) ExecutorOption {
	return func(e *Executor) {
		e.tracerProvider = tp
	}
}

// WithMeterProvider sets the provider for statement metrics. The global provider is used by default.
func WithMeterProvider(mp metric.MeterProvider) ExecutorOption {
	return func(e *Executor) {
		e.meterProvider = mp
	}
}

// NewExecutor creates an Executor rendering placeholders for db.DatabaseType().
func NewExecutor(db types.Querier, log logger.Logger, opts ...ExecutorOption) (*Executor, error) {
	if db == nil {
		return nil, types.ErrNilQuerier
	}

	vendor := db.DatabaseType()
	if err := ValidateDatabaseType(vendor); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.Nop()
	}

	e := &Executor{
		db:                 db,
		vendor:             vendor,
		escaper:            builder.LiteralEscaper{Vendor: vendor},
		log:                log,
		slowQueryThreshold: DefaultSlowQueryThreshold,
		maxQueryLength:     DefaultMaxQueryLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.telemetry = newTelemetry(e.tracerProvider, e.meterProvider)
	return e, nil
}

// Vendor returns the database vendor the executor binds for.
func (e *Executor) Vendor() string {
	return e.vendor
}

// QueryBuilder returns a builder for the executor's vendor whose inline methods escape
// through the executor.
func (e *Executor) QueryBuilder() *QueryBuilder {
	return builder.NewQueryBuilder(e.vendor).WithEscaper(e)
}

// Interpolate implements Escaper with the literal rules of the executor's vendor.
func (e *Executor) Interpolate(template string, values ...any) string {
	return e.escaper.Interpolate(template, values...)
}

var _ Escaper = (*Executor)(nil)

// Prepare binds template and params to the vendor's placeholders.
// It fails with types.ErrParamCountMismatch or types.ErrUnsupportedParam.
func (e *Executor) Prepare(template string, params *Params) (BoundStatement, error) {
	query, args, err := builder.Bind(e.vendor, template, params.Values())
	if err != nil {
		return BoundStatement{}, fmt.Errorf("failed to bind statement: %w", err)
	}
	return BoundStatement{Template: template, SQL: query, Args: args}, nil
}

// Query runs a bound statement that returns rows. The caller closes the rows.
func (e *Executor) Query(ctx context.Context, stmt BoundStatement) (*sql.Rows, error) {
	start := time.Now()
	rows, err := e.db.Query(ctx, stmt.SQL, stmt.Args...)
	e.track(ctx, stmt, start, -1, err)
	return rows, err
}

// QueryRow runs a bound statement expected to return at most one row.
// Errors are deferred to the row's Scan; the execution is logged once Scan is called.
func (e *Executor) QueryRow(ctx context.Context, stmt BoundStatement) Row {
	start := time.Now()
	row := e.db.QueryRow(ctx, stmt.SQL, stmt.Args...)
	return rowtracker.New(row, func(err error) {
		e.track(ctx, stmt, start, -1, err)
	})
}

// Exec runs a bound statement that returns no rows.
func (e *Executor) Exec(ctx context.Context, stmt BoundStatement) (sql.Result, error) {
	start := time.Now()
	result, err := e.db.Exec(ctx, stmt.SQL, stmt.Args...)
	e.track(ctx, stmt, start, rowsAffected(result, err), err)
	return result, err
}

// QueryTemplate prepares template with params and runs it with Query.
func (e *Executor) QueryTemplate(ctx context.Context, template string, params *Params) (*sql.Rows, error) {
	stmt, err := e.Prepare(template, params)
	if err != nil {
		return nil, err
	}
	return e.Query(ctx, stmt)
}

// ExecTemplate prepares template with params and runs it with Exec.
func (e *Executor) ExecTemplate(ctx context.Context, template string, params *Params) (sql.Result, error) {
	stmt, err := e.Prepare(template, params)
	if err != nil {
		return nil, err
	}
	return e.Exec(ctx, stmt)
}

// track logs a finished execution and records it in the context's query statistics.
// affected is -1 for statements that return rows.
func (e *Executor) track(ctx context.Context, stmt BoundStatement, start time.Time, affected int64, err error) {
	elapsed := time.Since(start)
	logger.RecordQuery(ctx, elapsed)
	e.telemetry.record(ctx, e.vendor, stmt.SQL, start, elapsed, err)

	fields := map[string]any{
		"vendor":      e.vendor,
		"duration_ms": elapsed.Milliseconds(),
		"query":       truncate(stmt.SQL, e.maxQueryLength),
		"params":      len(stmt.Args),
	}
	if affected >= 0 {
		fields["rows_affected"] = affected
	}
	if e.logArgs && len(stmt.Args) > 0 {
		fields["args"] = sanitizeArgs(stmt.Args, e.maxQueryLength)
	}
	log := e.log.WithFields(fields)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		log.Debug().Msg("Statement returned no rows")
	case err != nil:
		log.Error().Err(err).Msg("Statement failed")
	case elapsed > e.slowQueryThreshold:
		log.Warn().Msgf("Slow statement detected (%s)", elapsed)
	default:
		log.Debug().Msg("Statement executed")
	}
}

func rowsAffected(result sql.Result, err error) int64 {
	if result == nil || err != nil {
		return 0
	}
	n, affErr := result.RowsAffected()
	if affErr != nil {
		return 0
	}
	return n
}

// truncate shortens s to at most maxLen runes, ending in "..." when there is room.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// sanitizeArgs renders args for logging: long strings are truncated and byte slices
// replaced by their length.
func sanitizeArgs(args []any, maxLen int) []any {
	out := slices.Clone(args)
	for i, arg := range out {
		switch v := arg.(type) {
		case string:
			out[i] = truncate(v, maxLen)
		case []byte:
			out[i] = fmt.Sprintf("<bytes len=%d>", len(v))
		}
	}
	return out
}
