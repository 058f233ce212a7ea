// Package websocket pushes live changes to connected admin dashboards.
// file: websocket/connection.go
package websocket

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"fest-registration/logger"
)

// WSConn is the part of *websocket.Conn a Connection uses.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	Close() error
	RemoteAddr() net.Addr
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Connection represents one dashboard tab.
type Connection struct {
	hub   *Hub
	conn  WSConn
	send  chan []byte
	admin string
}

// Configuration constants.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// ServeWs upgrades the request and attaches the connection to the hub.
// The caller has already authenticated admin.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request, admin string) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return
	}
	logger.Info.Printf("[ServeWs] Live feed opened for admin %q from %v", admin, wsConn.RemoteAddr())

	c := &Connection{
		hub:   h,
		conn:  wsConn,
		send:  make(chan []byte, sendBuffer),
		admin: admin,
	}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

// readPump only services control frames; dashboards never send data.
func (c *Connection) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn.Printf("[readPump] Read error from %v: %v", c.conn.RemoteAddr(), err)
			}
			return
		}
	}
}

// writePump delivers queued messages and periodic pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn.Printf("[writePump] Error writing to %v: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn.Printf("[writePump] Ping error for %v: %v", c.conn.RemoteAddr(), err)
				return
			}
		}
	}
}
