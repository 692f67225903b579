package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueryStats(t *testing.T) {
	ctx := WithQueryStats(context.Background())

	RecordQuery(ctx, 2*time.Millisecond)
	RecordQuery(ctx, 3*time.Millisecond)

	assert.Equal(t, int64(2), QueryCount(ctx))
	assert.Equal(t, 5*time.Millisecond, QueryElapsed(ctx))
}

func TestQueryStatsWithoutTracking(t *testing.T) {
	ctx := context.Background()

	RecordQuery(ctx, time.Second)

	assert.Zero(t, QueryCount(ctx))
	assert.Zero(t, QueryElapsed(ctx))
	assert.Zero(t, QueryCount(nil)) //nolint:staticcheck // nil context is tolerated
}

func TestQueryStatsConcurrent(t *testing.T) {
	ctx := WithQueryStats(context.Background())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordQuery(ctx, time.Microsecond)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), QueryCount(ctx))
	assert.Equal(t, 50*time.Microsecond, QueryElapsed(ctx))
}
