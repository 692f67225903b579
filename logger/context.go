package logger

import (
	"context"
	"sync/atomic"
	"time"
)

type contextKey string

// queryStatsKey is the context key for per-request query statistics
const queryStatsKey contextKey = "query_stats"

type queryStats struct {
	count   atomic.Int64
	elapsed atomic.Int64
}

// WithQueryStats returns a context that accumulates the number and total duration of
// statements the executor runs under it. Safe for concurrent use.
func WithQueryStats(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryStatsKey, &queryStats{})
}

func statsFrom(ctx context.Context) *queryStats {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(queryStatsKey).(*queryStats)
	return s
}

// RecordQuery adds one statement taking elapsed to the context's statistics.
// It does nothing when ctx carries no statistics.
func RecordQuery(ctx context.Context, elapsed time.Duration) {
	if s := statsFrom(ctx); s != nil {
		s.count.Add(1)
		s.elapsed.Add(int64(elapsed))
	}
}

// QueryCount returns the number of statements recorded in ctx.
func QueryCount(ctx context.Context) int64 {
	if s := statsFrom(ctx); s != nil {
		return s.count.Load()
	}
	return 0
}

// QueryElapsed returns the total duration of the statements recorded in ctx.
func QueryElapsed(ctx context.Context) time.Duration {
	if s := statsFrom(ctx); s != nil {
		return time.Duration(s.elapsed.Load())
	}
	return 0
}
