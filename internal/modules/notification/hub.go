package notification

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// Hub keeps one live websocket per user. A newer connection replaces the older one.
type Hub struct {
	clients map[int64]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*client),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.clients[userID]; exists && old.conn != conn {
		_ = old.conn.Close()
	}

	h.clients[userID] = &client{conn: conn}
}

// Unregister drops conn for userID; it is a no-op when conn was already replaced.
func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.clients[userID]; exists && c.conn == conn {
		_ = c.conn.Close()
		delete(h.clients, userID)
	}
}

// SendToUser reports whether the message was delivered to a live connection.
func (h *Hub) SendToUser(userID int64, message any) bool {
	h.mutex.RLock()
	c, exists := h.clients[userID]
	h.mutex.RUnlock()

	if !exists {
		return false
	}

	if err := c.writeJSON(message); err != nil {
		h.Unregister(userID, c.conn)
		return false
	}

	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.clients[userID]
	return exists
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, c := range h.clients {
		_ = c.conn.Close()
		delete(h.clients, userID)
	}
}
