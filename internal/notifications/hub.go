package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"inkwell/internal/observability"

	"github.com/gofiber/websocket/v2"
)

// maxConns caps the number of simultaneous event feed connections.
const maxConns = 1024

// Hub fans post events out to every connected websocket client. It is fed by
// the Redis subscriber so events reach clients on every server instance.
type Hub struct {
	mu    sync.RWMutex
	conns map[*Client]struct{}

	shutdown chan struct{}
	once     sync.Once
}

// NewHub creates a new event feed hub.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[*Client]struct{}),
		shutdown: make(chan struct{}),
	}
}

// Register adds a connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.conns) >= maxConns {
		return nil, errors.New("server connection limit reached")
	}

	client := newClient(h, conn)
	h.conns[client] = struct{}{}
	observability.EventFeedConnections.Inc()
	return client, nil
}

// Unregister removes a connection from the hub.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[client]; ok {
		delete(h.conns, client)
		close(client.send)
		observability.EventFeedConnections.Dec()
	}
}

// Broadcast delivers an event to every connected client.
func (h *Hub) Broadcast(ev PostEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("event feed: failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.conns {
		client.trySend(payload)
	}
	observability.EventFeedEvents.WithLabelValues(ev.Type).Inc()
}

// StartWiring subscribes the hub to the notifier's event channel.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartSubscriber(ctx, h.Broadcast)
}

// Shutdown closes every connected client.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.once.Do(func() { close(h.shutdown) })

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.conns {
		close(client.send)
		delete(h.conns, client)
		observability.EventFeedConnections.Dec()
	}
	return nil
}

// ConnCount returns the number of active connections.
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
