// Package notifications delivers post change events to connected clients.
package notifications

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"
	"time"

	"github.com/redis/go-redis/v9"
)

// Post event types published on the events channel.
const (
	EventPostCreated = "post.created"
	EventPostUpdated = "post.updated"
	EventPostDeleted = "post.deleted"
)

// postEventsChannel is the Redis pub/sub channel for post changes.
const postEventsChannel = "events:posts"

// PostEvent is the wire payload for a post change notification.
type PostEvent struct {
	Type  string    `json:"type"`
	ID    string    `json:"post_id"`
	Slug  string    `json:"slug,omitempty"`
	Title string    `json:"title,omitempty"`
	At    time.Time `json:"at"`
}

// Notifier publishes post events into Redis. A nil Redis client disables
// publishing without failing callers.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishPostEvent sends a post change event to the events channel.
func (n *Notifier) PublishPostEvent(ctx context.Context, ev PostEvent) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, postEventsChannel, payload).Err()
}

// StartSubscriber subscribes to the post events channel and calls onEvent for
// each incoming event until ctx is cancelled. Malformed payloads are dropped.
func (n *Notifier) StartSubscriber(ctx context.Context, onEvent func(PostEvent)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, postEventsChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev PostEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Printf("notifications: dropping malformed event: %v", err)
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in event subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onEvent(ev)
				}()
			}
		}
	}()

	return nil
}
