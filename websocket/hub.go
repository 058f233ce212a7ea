// file: websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"fest-registration/logger"
	"fest-registration/notify"
)

// Hub tracks open dashboard connections and broadcasts events to them.
type Hub struct {
	mu          sync.Mutex
	connections map[*Connection]bool
	upgrader    websocket.Upgrader
}

var _ notify.Publisher = (*Hub)(nil)

// NewHub creates a hub. checkOrigin may be nil to require same-origin
// requests, which is gorilla's default.
func NewHub(checkOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Publish broadcasts e to every connection. A connection whose buffer is
// full is dropped rather than allowed to hold up the rest.
func (h *Hub) Publish(_ context.Context, e notify.Event) error {
	msg, err := json.Marshal(e)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		select {
		case c.send <- msg:
		default:
			logger.Warn.Printf("Dropping slow live-feed connection %v (admin %q)", c.conn.RemoteAddr(), c.admin)
			h.removeLocked(c)
		}
	}
	return nil
}

// Count is the number of open connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// Close disconnects every client.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		h.removeLocked(c)
	}
	return nil
}

func (h *Hub) register(c *Connection) {
	h.mu.Lock()
	h.connections[c] = true
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Connection) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(c *Connection) {
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}
