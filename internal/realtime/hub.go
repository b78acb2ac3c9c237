package realtime

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	log "github.com/sirupsen/logrus"
)

// Hub tracks open WebSocket connections and broadcasts to all of them. It
// knows nothing about what the messages mean, so the same type serves both the
// refresh-signal endpoint and the legacy raw-broadcast channel.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

// Upgrade gates a route group so only WebSocket upgrade requests pass.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler returns the connection handler for a websocket route. The read loop
// exists only to notice the client going away; inbound messages are ignored.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		h.register(c)
		defer h.unregister(c)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}

func (h *Hub) register(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *Hub) unregister(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
	c.Close()
}

// Broadcast writes msg to every open connection. A failed write drops that
// connection; its read loop will clean up.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Debugf("dropping websocket client: %v", err)
			delete(h.conns, c)
			c.Close()
		}
	}
}

// RefreshSignal is what subscribed clients receive when the transaction table
// changes; it tells them to re-fetch, nothing more.
var RefreshSignal = []byte(`{"event":"transactions_changed"}`)
