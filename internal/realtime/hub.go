package realtime

import (
	"sync"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active subscriber connections and broadcasts catalog
// events (currently only seed notifications) to all of them. There is
// no per-user keying: the event stream is a public firehose.
type Hub struct {
	mu      sync.RWMutex
	clients map[Client]struct{}
}

// NewHub constructs an empty hub. One hub is created at startup and
// injected where needed; there is no package-level singleton.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[Client]struct{}),
	}
}

// Register adds a subscriber.
func (h *Hub) Register(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes a subscriber.
func (h *Hub) Unregister(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// Broadcast sends a message to every subscriber.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if ok := c.Send(message); !ok {
			// client write failed; let the handler clean it up on its side
		}
	}
}
