package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"equiprent/internal/domain"
)

const (
	EventReservationCreated  = "reservation_created"
	EventReservationApproved = "reservation_approved"
	EventReservationRejected = "reservation_rejected"
)

// Event is the JSON frame pushed to connected staff sockets.
type Event struct {
	Type        string              `json:"type"`
	Reservation *domain.Reservation `json:"reservation"`
	Timestamp   time.Time           `json:"timestamp"`
}

// Hub holds one websocket connection per staff user and broadcasts
// reservation lifecycle events to all of them. All methods are safe for
// concurrent use.
type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[userID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[userID] = conn
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[userID]; exists {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

// Broadcast writes the event to every connected staff socket. Connections
// that fail to accept the write are dropped.
func (h *Hub) Broadcast(event Event) {
	h.mutex.RLock()
	targets := make(map[int64]*websocket.Conn, len(h.connections))
	for userID, conn := range h.connections {
		targets[userID] = conn
	}
	h.mutex.RUnlock()

	for userID, conn := range targets {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			h.Unregister(userID)
		}
	}
}

func (h *Hub) ReservationCreated(res *domain.Reservation) {
	h.Broadcast(Event{Type: EventReservationCreated, Reservation: res, Timestamp: time.Now().UTC()})
}

func (h *Hub) ReservationApproved(res *domain.Reservation) {
	h.Broadcast(Event{Type: EventReservationApproved, Reservation: res, Timestamp: time.Now().UTC()})
}

func (h *Hub) ReservationRejected(res *domain.Reservation) {
	h.Broadcast(Event{Type: EventReservationRejected, Reservation: res, Timestamp: time.Now().UTC()})
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}
