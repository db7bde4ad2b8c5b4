package socket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

// startWsServer upgrades every request, wires a Client for the given user into
// the hub and runs both pumps, mirroring the websocket handler.
func startWsServer(t *testing.T, hub *Hub, userID uuid.UUID, clients chan<- *Client) *httptest.Server {
	t.Helper()
	log := testLogger(t)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		ctx, cancel := context.WithCancel(context.Background())
		client := NewClient(conn, hub, userID, cancel, log)
		hub.Subscribe(client, []string{"user:" + userID.String()})
		clients <- client
		go client.ReadLoop(ctx)
		go client.WriteLoop(ctx)
	}))
}

func dialWs(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func subscriberCount(h *Hub, channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// A disconnect makes both pumps run their deferred cleanup. The second
// cleanup must be a no-op, not a double close of the outbound channel.
func TestClientDisconnectTearsDownOnce(t *testing.T) {
	hub := NewHub(testLogger(t))
	userID := uuid.New()
	clients := make(chan *Client, 1)
	srv := startWsServer(t, hub, userID, clients)
	defer srv.Close()

	conn := dialWs(t, srv)
	client := <-clients
	channel := "user:" + userID.String()
	if got := subscriberCount(hub, channel); got != 1 {
		t.Fatalf("subscribers before disconnect = %d, want 1", got)
	}

	if err := conn.Close(); err != nil {
		t.Fatalf("closing dialer conn: %v", err)
	}
	waitFor(t, "hub eviction", func() bool {
		return subscriberCount(hub, channel) == 0
	})

	// Both pumps have exited by now; one more close must also be safe.
	client.close()
}

// Two open sockets for one user must coexist in the hub, and tearing one down
// must not evict the other.
func TestHubKeepsConcurrentSessionsPerUser(t *testing.T) {
	hub := NewHub(testLogger(t))
	userID := uuid.New()
	clients := make(chan *Client, 2)
	srv := startWsServer(t, hub, userID, clients)
	defer srv.Close()

	first := dialWs(t, srv)
	second := dialWs(t, srv)
	defer second.Close()
	<-clients
	<-clients

	channel := "user:" + userID.String()
	if got := subscriberCount(hub, channel); got != 2 {
		t.Fatalf("subscribers with two sessions = %d, want 2", got)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("closing first conn: %v", err)
	}
	waitFor(t, "first session eviction", func() bool {
		return subscriberCount(hub, channel) == 1
	})

	hub.localBroadcast(Message{Channel: channel, Payload: "ping"})

	_ = second.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := second.ReadJSON(&msg); err != nil {
		t.Fatalf("surviving session read: %v", err)
	}
	if msg.Channel != channel || msg.Payload != "ping" {
		t.Fatalf("surviving session got %+v", msg)
	}
}
