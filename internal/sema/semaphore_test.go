package sema

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemaphore_InitialPermitsAreConsumed(t *testing.T) {
	ctx := context.Background()
	s := New("mutex", 1)

	require.NoError(t, s.Acquire(ctx))
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, int64(1), s.Acquires())
	assert.Equal(t, int64(0), s.Releases())
}

func TestSemaphore_ReleaseWakesParkedWaiter(t *testing.T) {
	s := New("start_hunt", 0)

	done := make(chan error, 1)
	go func() { done <- s.Acquire(context.Background()) }()

	require.Eventually(t, func() bool { return s.Waiting() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, s.Release())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatalf("waiter was not woken by Release")
	}
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0, s.Waiting())
}

func TestSemaphore_ReleaseWithoutWaitersAccumulates(t *testing.T) {
	s := New("dinner_done", 0)
	require.NoError(t, s.ReleaseN(3))
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, int64(3), s.Releases())

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Acquire(context.Background()))
	}
	assert.Equal(t, 0, s.Count())
}

func TestSemaphore_WaitersAreServedInArrivalOrder(t *testing.T) {
	s := New("fifo", 0)

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, s.Acquire(context.Background()))
			mu.Lock()
			order = append(order, id)
			mu.Unlock()
		}(i)
		want := i + 1
		require.Eventually(t, func() bool { return s.Waiting() == want }, time.Second, time.Millisecond)
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Release())
		want := i + 1
		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(order) == want
		}, time.Second, time.Millisecond)
	}
	wg.Wait()
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestSemaphore_AcquireHonoursContext(t *testing.T) {
	s := New("barrier", 0)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.Acquire(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 0, s.Waiting())

	// A later release must not be swallowed by the abandoned waiter.
	require.NoError(t, s.Release())
	assert.Equal(t, 1, s.Count())
}

func TestSemaphore_CancelledContextWinsOverAvailablePermits(t *testing.T) {
	s := New("dinner_done", 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Acquire(ctx), context.Canceled)
	assert.Equal(t, 2, s.Count())
}

func TestSemaphore_CloseFailsWaitersAndLaterCalls(t *testing.T) {
	s := New("start_hunt", 0)

	done := make(chan error, 1)
	go func() { done <- s.Acquire(context.Background()) }()
	require.Eventually(t, func() bool { return s.Waiting() == 1 }, time.Second, time.Millisecond)

	s.Close()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrClosed)
		assert.Contains(t, err.Error(), "start_hunt")
	case <-time.After(time.Second):
		t.Fatalf("close did not wake waiter")
	}

	assert.ErrorIs(t, s.Release(), ErrClosed)
	assert.ErrorIs(t, s.Acquire(context.Background()), ErrClosed)
	s.Close()
}
