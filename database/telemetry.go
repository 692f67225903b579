package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/gaborage/go-sqlfrag/database"

	metricCalls    = "db.client.calls"
	metricDuration = "db.client.operation.duration"

	maxSpanQueryLength = 2000
	defaultOperation   = "query"
)

// telemetry holds the span and metric instruments of one Executor.
// Instruments that fail to register are left nil and skipped.
type telemetry struct {
	tracer   trace.Tracer
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) telemetry {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	meter := mp.Meter(instrumentationName)
	calls, err := meter.Int64Counter(metricCalls,
		metric.WithDescription("Number of statements run by the executor"),
		metric.WithUnit("{call}"))
	if err != nil {
		calls = nil
	}
	duration, err := meter.Float64Histogram(metricDuration,
		metric.WithDescription("Duration of statements run by the executor"),
		metric.WithUnit("s"))
	if err != nil {
		duration = nil
	}

	return telemetry{
		tracer:   tp.Tracer(instrumentationName),
		calls:    calls,
		duration: duration,
	}
}

// record emits a client span starting at start and the call metrics for one statement.
// sql.ErrNoRows is an empty result, not a failure.
func (t telemetry) record(ctx context.Context, vendor, query string, start time.Time, elapsed time.Duration, err error) {
	operation := operationName(query)
	failed := err != nil && !errors.Is(err, sql.ErrNoRows)

	_, span := t.tracer.Start(ctx, "db."+operation,
		trace.WithTimestamp(start),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	span.SetAttributes(
		systemName(vendor),
		semconv.DBQueryText(truncate(query, maxSpanQueryLength)),
		semconv.DBOperationName(operation),
	)
	if failed {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End(trace.WithTimestamp(start.Add(elapsed)))

	attrs := metric.WithAttributes(
		systemName(vendor),
		semconv.DBOperationName(operation),
		attribute.Bool("error", failed),
	)
	if t.calls != nil {
		t.calls.Add(ctx, 1, attrs)
	}
	if t.duration != nil {
		t.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

// operationName returns the lowercased leading SQL verb, or "query" for anything else.
func operationName(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return defaultOperation
	}
	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete", "merge", "with":
		return op
	default:
		return defaultOperation
	}
}

func systemName(vendor string) attribute.KeyValue {
	switch vendor {
	case PostgreSQL:
		return semconv.DBSystemNamePostgreSQL
	case Oracle:
		return semconv.DBSystemNameOracleDB
	default:
		return semconv.DBSystemNameMySQL
	}
}
