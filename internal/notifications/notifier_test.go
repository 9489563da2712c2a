package notifications

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	rdb := setupRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var received []PostEvent
	require.NoError(t, n.StartSubscriber(ctx, func(ev PostEvent) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, ev)
	}))

	// Give the subscription a moment to establish.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, n.PublishPostEvent(ctx, PostEvent{
		Type:  EventPostCreated,
		ID:    "p1",
		Slug:  "hello-world",
		Title: "Hello World",
	}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, EventPostCreated, received[0].Type)
	assert.Equal(t, "p1", received[0].ID)
	assert.Equal(t, "hello-world", received[0].Slug)
	assert.False(t, received[0].At.IsZero())
}

func TestSubscriberDropsMalformedPayloads(t *testing.T) {
	rdb := setupRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var received []PostEvent
	require.NoError(t, n.StartSubscriber(ctx, func(ev PostEvent) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, ev)
	}))
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, rdb.Publish(ctx, postEventsChannel, "not json").Err())
	require.NoError(t, n.PublishPostEvent(ctx, PostEvent{Type: EventPostDeleted, ID: "p2"}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, EventPostDeleted, received[0].Type)
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	ctx := context.Background()

	assert.NoError(t, n.PublishPostEvent(ctx, PostEvent{Type: EventPostCreated}))
	assert.NoError(t, n.StartSubscriber(ctx, func(PostEvent) {
		t.Fatal("no events should be delivered by a nil notifier")
	}))

	disabled := NewNotifier(nil)
	assert.NoError(t, disabled.PublishPostEvent(ctx, PostEvent{Type: EventPostUpdated}))
}

func TestSubscriberStopsOnContextCancel(t *testing.T) {
	rdb := setupRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	count := 0
	require.NoError(t, n.StartSubscriber(ctx, func(PostEvent) {
		mu.Lock()
		defer mu.Unlock()
		count++
	}))
	time.Sleep(50 * time.Millisecond)

	cancel()
	time.Sleep(50 * time.Millisecond)

	_ = n.PublishPostEvent(context.Background(), PostEvent{Type: EventPostCreated, ID: "late"})
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, count)
}
