package watch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, feed *Feed[T]) []T {
	t.Helper()
	select {
	case rows, ok := <-feed.C:
		require.True(t, ok, "feed closed early: %v", feed.Err())
		return rows
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestObserveEmitsAfterPublish(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	var version atomic.Int64
	feed := Observe(ctx, hub, func(context.Context) ([]int64, error) {
		return []int64{version.Load()}, nil
	}, "clients")

	assert.Equal(t, []int64{0}, receive(t, feed))

	version.Store(1)
	hub.Publish("clients")
	assert.Equal(t, []int64{1}, receive(t, feed))

	version.Store(2)
	hub.Publish("cases", "clients")
	assert.Equal(t, []int64{2}, receive(t, feed))
}

func TestObserveIgnoresOtherTables(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	var calls atomic.Int64
	feed := Observe(ctx, hub, func(context.Context) ([]int64, error) {
		return []int64{calls.Add(1)}, nil
	}, "cases")

	receive(t, feed)
	hub.Publish("clients")

	select {
	case rows := <-feed.C:
		t.Fatalf("unexpected snapshot %v", rows)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, int64(1), calls.Load())
}

func TestObserveClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	feed := Observe(ctx, hub, func(context.Context) ([]string, error) {
		return []string{"x"}, nil
	}, "clients")

	receive(t, feed)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-feed.C:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	assert.NoError(t, feed.Err())
	assert.Eventually(t, func() bool { return hub.Subscribers("clients") == 0 }, time.Second, 5*time.Millisecond)
}

func TestObserveReportsQueryError(t *testing.T) {
	boom := errors.New("boom")
	feed := Observe(context.Background(), NewHub(), func(context.Context) ([]string, error) {
		return nil, boom
	}, "clients")

	_, ok := <-feed.C
	assert.False(t, ok)
	assert.ErrorIs(t, feed.Err(), boom)
}

func TestPublishCoalesces(t *testing.T) {
	hub := NewHub()
	signal, cancel := hub.Subscribe("clients")
	defer cancel()

	hub.Publish("clients")
	hub.Publish("clients")
	hub.Publish("clients")

	<-signal
	select {
	case <-signal:
		t.Fatal("signals should coalesce")
	default:
	}
}
