package async_test

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/saasbilling/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	res, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, res)
	assert.True(t, f.IsComplete())
}

func TestAsync_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called atomic.Bool
	f := async.Async(ctx, 1, func(context.Context, int) (int, error) {
		called.Store(true)
		return 1, nil
	})
	_, err := f.Await()
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called.Load())
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		<-release
		return 0, nil
	})
	_, err := f.AwaitWithTimeout(10 * time.Millisecond)
	require.ErrorIs(t, err, async.ErrTimeout)
	assert.False(t, f.IsComplete())
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	double := func(_ context.Context, n int) (int, error) {
		if n < 0 {
			return 0, boom
		}
		return n * 2, nil
	}

	res, err := async.WaitAll(
		async.Async(context.Background(), 1, double),
		async.Async(context.Background(), 2, double),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, res)

	_, err = async.WaitAll(
		async.Async(context.Background(), 1, double),
		async.Async(context.Background(), -1, double),
	)
	require.ErrorIs(t, err, boom)
}

func TestSettle(t *testing.T) {
	t.Parallel()

	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}

	var inFlight, peak atomic.Int32
	out := async.Settle(context.Background(), items, 3, func(_ context.Context, n int) (string, error) {
		cur := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		if n%5 == 0 {
			return "", errors.New("failed " + strconv.Itoa(n))
		}
		return strconv.Itoa(n), nil
	})

	require.Len(t, out, len(items))
	assert.LessOrEqual(t, peak.Load(), int32(3))

	failed := 0
	for i, o := range out {
		assert.Equal(t, i, o.Input, "outcomes keep input order")
		if o.Err != nil {
			failed++
			continue
		}
		assert.Equal(t, strconv.Itoa(i), o.Result)
	}
	assert.Equal(t, 4, failed, "every failure is reported and nothing stops early")
}

func TestSettle_Empty(t *testing.T) {
	t.Parallel()

	out := async.Settle(context.Background(), []string(nil), 0, func(context.Context, string) (int, error) {
		return 0, nil
	})
	assert.Empty(t, out)
}

func TestSettle_CanceledMidRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	done := make(chan []async.Outcome[int, int])
	go func() {
		done <- async.Settle(ctx, items, 2, func(_ context.Context, n int) (int, error) {
			if n == 3 {
				cancel()
			}
			return n, nil
		})
	}()

	var out []async.Outcome[int, int]
	select {
	case out = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Settle did not return after cancellation")
	}
	require.Len(t, out, len(items))
	for i, o := range out {
		if o.Err != nil {
			assert.ErrorIs(t, o.Err, context.Canceled)
			continue
		}
		assert.Equal(t, i, o.Result)
	}
	assert.ErrorIs(t, out[len(out)-1].Err, context.Canceled)
}

func TestSettle_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := async.Settle(ctx, []int{1, 2, 3}, 1, func(context.Context, int) (int, error) {
		return 1, nil
	})
	for _, o := range out {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}
