package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"movetrack/internal/broadcast"
)

func dialGPS(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func waitForSubscribers(t *testing.T, hub *broadcast.Hub, key string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount(key) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("subscriber count for key %s never reached %d", key, want)
}

func TestViewerReceivesPublishedReading(t *testing.T) {
	hub := broadcast.NewHub(4, zap.NewNop())
	wsServer := NewServer(hub, time.Second, zap.NewNop())
	server := httptest.NewServer(http.HandlerFunc(wsServer.HandleGPS))
	defer server.Close()

	conn := dialGPS(t, server, "?operator_id=5")
	defer conn.Close()

	waitForSubscribers(t, hub, "5", 1)
	hub.Publish("5", []byte(`{"operatorId":5,"lat":37.5}`))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if msgType != websocket.TextMessage {
		t.Errorf("message type = %d, want text", msgType)
	}
	if string(msg) != `{"operatorId":5,"lat":37.5}` {
		t.Errorf("message = %q, want published payload", msg)
	}
}

func TestViewerIsolatedByOperatorKey(t *testing.T) {
	hub := broadcast.NewHub(4, zap.NewNop())
	wsServer := NewServer(hub, time.Second, zap.NewNop())
	server := httptest.NewServer(http.HandlerFunc(wsServer.HandleGPS))
	defer server.Close()

	conn := dialGPS(t, server, "?operator_id=7")
	defer conn.Close()
	waitForSubscribers(t, hub, "7", 1)

	hub.Publish("5", []byte("other operator"))

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, msg, err := conn.ReadMessage(); err == nil {
		t.Errorf("viewer of key 7 received %q, want nothing", msg)
	}
}

func TestDisconnectUnsubscribesViewer(t *testing.T) {
	hub := broadcast.NewHub(4, zap.NewNop())
	wsServer := NewServer(hub, time.Second, zap.NewNop())
	server := httptest.NewServer(http.HandlerFunc(wsServer.HandleGPS))
	defer server.Close()

	conn := dialGPS(t, server, "?operator_id=5")
	waitForSubscribers(t, hub, "5", 1)

	conn.Close()
	waitForSubscribers(t, hub, "5", 0)
}

func TestMissingOperatorIDIsRejected(t *testing.T) {
	hub := broadcast.NewHub(4, zap.NewNop())
	wsServer := NewServer(hub, time.Second, zap.NewNop())
	server := httptest.NewServer(http.HandlerFunc(wsServer.HandleGPS))
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
