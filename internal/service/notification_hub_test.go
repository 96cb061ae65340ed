package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// dialHub spins up a websocket endpoint that registers every accepted
// connection with the hub under the given user id, then dials it.
func dialHub(t *testing.T, hub *NotificationHub, userID uuid.UUID) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(userID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial hub: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	// Registration runs in the server goroutine after the handshake.
	deadline := time.Now().Add(time.Second)
	for hub.ConnectedUsers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("connection was never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return client
}

func TestHubDeliversToRegisteredUser(t *testing.T) {
	hub := NewNotificationHub(logrus.New())
	userID := uuid.New()
	client := dialHub(t, hub, userID)

	hub.Send(userID, Notification{
		Type: NotificationLowStock,
		Data: map[string]interface{}{"item": "contrast dye"},
	})

	client.SetReadDeadline(time.Now().Add(time.Second))
	var got Notification
	if err := client.ReadJSON(&got); err != nil {
		t.Fatalf("failed to read notification: %v", err)
	}
	if got.Type != NotificationLowStock {
		t.Errorf("type = %q, want %q", got.Type, NotificationLowStock)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp was not stamped on send")
	}
}

func TestHubSerializesConcurrentSends(t *testing.T) {
	hub := NewNotificationHub(logrus.New())
	userID := uuid.New()
	client := dialHub(t, hub, userID)

	const sends = 25
	var wg sync.WaitGroup
	for i := 0; i < sends; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Send(userID, Notification{Type: NotificationNewAppointment})
		}()
	}
	wg.Wait()

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < sends; i++ {
		var got Notification
		if err := client.ReadJSON(&got); err != nil {
			t.Fatalf("read %d of %d failed: %v", i+1, sends, err)
		}
	}
}

func TestHubSendToUnknownUserIsNoOp(t *testing.T) {
	hub := NewNotificationHub(logrus.New())
	hub.Send(uuid.New(), Notification{Type: NotificationStatusChange})
	if n := hub.ConnectedUsers(); n != 0 {
		t.Errorf("connected users = %d, want 0", n)
	}
}

func TestHubShutdownClosesConnections(t *testing.T) {
	hub := NewNotificationHub(logrus.New())
	userID := uuid.New()
	client := dialHub(t, hub, userID)

	hub.Shutdown()

	if n := hub.ConnectedUsers(); n != 0 {
		t.Errorf("connected users after shutdown = %d, want 0", n)
	}
	client.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := client.ReadMessage(); err == nil {
		t.Error("expected the server side of the connection to be closed")
	}

	// New registrations are rejected once the hub is stopped.
	dialRejected := dialHubExpectNoRegistration(t, hub, userID)
	if dialRejected {
		t.Error("registration succeeded after shutdown")
	}
}

func dialHubExpectNoRegistration(t *testing.T, hub *NotificationHub, userID uuid.UUID) bool {
	t.Helper()

	upgrader := websocket.Upgrader{}
	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(userID, conn)
		close(registered)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial hub: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	<-registered
	return hub.ConnectedUsers() != 0
}
