package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Notification is the event payload pushed over a websocket connection.
type Notification struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Notification types
const (
	NotificationNewAppointment    = "new_appointment"
	NotificationStatusChange      = "appointment_status_change"
	NotificationAppointmentUpdate = "appointment_updated"
	NotificationLowStock          = "low_stock_alert"
)

const hubWriteTimeout = 5 * time.Second

// NotificationHub fans out events to connected websocket clients keyed by
// user id. Delivery is best-effort: disconnected or slow clients are
// dropped, never retried, and a failed send never fails the caller.
// Writes are serialized per connection; gorilla/websocket supports at most
// one concurrent writer.
type NotificationHub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*websocket.Conn]*sync.Mutex
	log     *logrus.Logger
	closed  bool
}

func NewNotificationHub(log *logrus.Logger) *NotificationHub {
	return &NotificationHub{
		clients: make(map[uuid.UUID]map[*websocket.Conn]*sync.Mutex),
		log:     log,
	}
}

// Register attaches a connection for the given user. A user may hold
// several connections at once (multiple tabs or devices).
func (h *NotificationHub) Register(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		conn.Close()
		return
	}
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]*sync.Mutex)
	}
	h.clients[userID][conn] = &sync.Mutex{}
	h.log.Debugf("Websocket connected for user %s (%d connections)", userID, len(h.clients[userID]))
}

// Unregister detaches and closes a connection.
func (h *NotificationHub) Unregister(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[userID]; ok {
		if _, held := conns[conn]; held {
			delete(conns, conn)
			conn.Close()
		}
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Send pushes a notification to every connection a user holds. Connections
// that fail to accept the write are dropped from the hub.
func (h *NotificationHub) Send(userID uuid.UUID, n Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}

	type target struct {
		conn *websocket.Conn
		mu   *sync.Mutex
	}

	h.mu.RLock()
	targets := make([]target, 0, len(h.clients[userID]))
	for conn, mu := range h.clients[userID] {
		targets = append(targets, target{conn: conn, mu: mu})
	}
	h.mu.RUnlock()

	for _, t := range targets {
		t.mu.Lock()
		t.conn.SetWriteDeadline(time.Now().Add(hubWriteTimeout))
		err := t.conn.WriteJSON(n)
		t.mu.Unlock()
		if err != nil {
			h.log.Warnf("Failed to push %s notification to user %s: %+v", n.Type, userID, err)
			h.Unregister(userID, t.conn)
		}
	}
}

// SendToUsers pushes the same notification to a set of users.
func (h *NotificationHub) SendToUsers(userIDs []uuid.UUID, n Notification) {
	for _, userID := range userIDs {
		h.Send(userID, n)
	}
}

// ConnectedUsers returns the number of users with at least one connection.
func (h *NotificationHub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every connection and rejects new registrations.
func (h *NotificationHub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for userID, conns := range h.clients {
		for conn := range conns {
			conn.Close()
		}
		delete(h.clients, userID)
	}
	h.log.Info("Notification hub stopped")
}
