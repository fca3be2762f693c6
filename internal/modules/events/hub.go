package events

import (
	"sync"

	"roomledger/internal/modules/reservation"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// subscriber pairs a connection with its write lock. Gorilla connections
// support at most one concurrent writer, and Publish runs from request
// goroutines and the expiry timer at once.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) send(e reservation.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(e)
}

// Hub fan-outs reservation lifecycle events to connected WebSocket clients.
// One connection per user; a newer connection replaces the older one.
type Hub struct {
	connections map[int64]*subscriber
	mutex       sync.RWMutex
	log         *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[int64]*subscriber),
		log:         log,
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[userID]; exists && old != nil {
		_ = old.conn.Close()
	}

	h.connections[userID] = &subscriber{conn: conn}
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if sub, exists := h.connections[userID]; exists && sub != nil {
		_ = sub.conn.Close()
		delete(h.connections, userID)
	}
}

// drop removes sub only if it is still the user's current subscriber, so a
// reconnect that happened after a Publish snapshot survives.
func (h *Hub) drop(userID int64, sub *subscriber) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if current, exists := h.connections[userID]; exists && current == sub {
		_ = sub.conn.Close()
		delete(h.connections, userID)
	}
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[userID]
	return exists
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

// Publish implements reservation.EventSink. Delivery is best effort:
// dead connections are dropped, everyone else still gets the event.
func (h *Hub) Publish(e reservation.Event) {
	h.mutex.RLock()
	subs := make(map[int64]*subscriber, len(h.connections))
	for id, sub := range h.connections {
		subs[id] = sub
	}
	h.mutex.RUnlock()

	for userID, sub := range subs {
		if sub == nil {
			continue
		}
		if err := sub.send(e); err != nil {
			h.log.Debug("dropping stale event subscriber",
				zap.Int64("user_id", userID),
				zap.Error(err))
			h.drop(userID, sub)
		}
	}
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, sub := range h.connections {
		if sub != nil {
			_ = sub.conn.Close()
		}
		delete(h.connections, userID)
	}
}
