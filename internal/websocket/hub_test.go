package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestClient(h *Hub, userID uuid.UUID) *Client {
	return &Client{Hub: h, UserID: userID, Send: make(chan []byte, 1)}
}

func waitRegistered(t *testing.T, h *Hub, userID uuid.UUID, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		n := len(h.clients[userID])
		h.mu.RUnlock()
		if n == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("user %s never reached %d registered connections", userID, want)
}

func assertSendClosed(t *testing.T, c *Client) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-c.Send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("client Send channel never closed after reap")
		}
	}
}

func TestSendReapsSlowClientOnce(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	userID := uuid.New()
	client := newTestClient(hub, userID)
	hub.register <- client
	waitRegistered(t, hub, userID, 1)

	// Fill the buffer so the next delivery hits the slow path.
	client.Send <- []byte("stuck")

	hub.Send(userID, Notification{Kind: "estimate_completed", SentAt: time.Now()})
	assertSendClosed(t, client)
	waitRegistered(t, hub, userID, 0)

	// A second delivery must find no client and must not panic on the
	// already-closed channel.
	hub.Send(userID, Notification{Kind: "estimate_completed", SentAt: time.Now()})
}

func TestBroadcastReapsMultipleSlowClients(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	userA := uuid.New()
	userB := uuid.New()
	a := newTestClient(hub, userA)
	b := newTestClient(hub, userB)
	hub.register <- a
	hub.register <- b
	waitRegistered(t, hub, userA, 1)
	waitRegistered(t, hub, userB, 1)

	a.Send <- []byte("stuck")
	b.Send <- []byte("stuck")

	hub.Broadcast(Notification{Kind: "estimate_completed", SentAt: time.Now()})

	assertSendClosed(t, a)
	assertSendClosed(t, b)
	waitRegistered(t, hub, userA, 0)
	waitRegistered(t, hub, userB, 0)
}
