package modal

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastAutoClosesAfterCountdown(t *testing.T) {
	toast := NewToast(3)
	closed := make(chan time.Time, 1)
	opened := time.Now()
	toast.Open(context.Background(), "Saved", "Product added successfully.", func() { closed <- time.Now() })

	v, ok := toast.View()
	require.True(t, ok)
	assert.Equal(t, 3, v.Remaining)

	select {
	case at := <-closed:
		elapsed := at.Sub(opened)
		assert.InDelta(t, 3*time.Second, elapsed, float64(time.Second))
	case <-time.After(5 * time.Second):
		t.Fatal("toast did not close")
	}
	_, ok = toast.View()
	assert.False(t, ok)
}

func TestToastCountsDown(t *testing.T) {
	toast := NewToast(3)
	toast.interval = 20 * time.Millisecond
	var calls int32
	toast.Open(context.Background(), "Saved", "", func() { atomic.AddInt32(&calls, 1) })

	assert.Eventually(t, func() bool {
		v, ok := toast.View()
		return ok && v.Remaining < 3
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
}

func TestToastManualCloseRunsCallbackOnce(t *testing.T) {
	toast := NewToast(3)
	toast.interval = 10 * time.Millisecond
	var calls int32
	toast.Open(context.Background(), "Saved", "", func() { atomic.AddInt32(&calls, 1) })
	toast.Close()
	toast.Close()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestToastStopsWithContext(t *testing.T) {
	toast := NewToast(1)
	toast.interval = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	var calls int32
	toast.Open(ctx, "Saved", "", func() { atomic.AddInt32(&calls, 1) })
	cancel()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestToastReopenRestarts(t *testing.T) {
	toast := NewToast(2)
	toast.interval = 30 * time.Millisecond
	var first, second int32
	toast.Open(context.Background(), "A", "", func() { atomic.AddInt32(&first, 1) })
	toast.Open(context.Background(), "B", "", func() { atomic.AddInt32(&second, 1) })

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&second) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&first))
}
