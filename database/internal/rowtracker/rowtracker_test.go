package rowtracker

import (
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRow struct {
	mock.Mock
}

func (m *mockRow) Scan(dest ...any) error {
	return m.Called(dest).Error(0)
}

func (m *mockRow) Err() error {
	return m.Called().Error(0)
}

func TestNewPassthrough(t *testing.T) {
	assert.Nil(t, New(nil, func(error) {}))

	inner := &mockRow{}
	assert.Same(t, inner, New(inner, nil))
}

func TestScanReportsOnce(t *testing.T) {
	inner := &mockRow{}
	inner.On("Scan", mock.Anything).Return(nil).Twice()

	var calls int
	var got error = errors.New("unset")
	tracked := New(inner, func(err error) {
		calls++
		got = err
	})

	var id int
	require.NoError(t, tracked.Scan(&id))
	require.NoError(t, tracked.Scan(&id))

	assert.Equal(t, 1, calls)
	assert.NoError(t, got)
	inner.AssertExpectations(t)
}

func TestScanReportsError(t *testing.T) {
	inner := &mockRow{}
	inner.On("Scan", mock.Anything).Return(sql.ErrNoRows)

	var got error
	tracked := New(inner, func(err error) { got = err })

	err := tracked.Scan()
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.ErrorIs(t, got, sql.ErrNoRows)
}

func TestErr(t *testing.T) {
	t.Run("nil error does not report", func(t *testing.T) {
		inner := &mockRow{}
		inner.On("Err").Return(nil)

		called := false
		tracked := New(inner, func(error) { called = true })

		assert.NoError(t, tracked.Err())
		assert.False(t, called)
	})

	t.Run("failure reports and suppresses later scan", func(t *testing.T) {
		boom := errors.New("connection reset")
		inner := &mockRow{}
		inner.On("Err").Return(boom)
		inner.On("Scan", mock.Anything).Return(boom)

		var calls int
		tracked := New(inner, func(err error) {
			calls++
			assert.ErrorIs(t, err, boom)
		})

		assert.ErrorIs(t, tracked.Err(), boom)
		assert.ErrorIs(t, tracked.Scan(), boom)
		assert.Equal(t, 1, calls)
	})
}

func TestConcurrentScan(t *testing.T) {
	inner := &mockRow{}
	inner.On("Scan", mock.Anything).Return(nil)

	var calls atomic.Int32
	tracked := New(inner, func(error) { calls.Add(1) })

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tracked.Scan()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
