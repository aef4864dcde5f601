package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/internal/event"
	"github.com/aashishh4323/Guard-X/internal/jamming"
	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

func newTestClient() *Client {
	return &Client{
		remote: "test",
		send:   make(chan Message, 2),
		logger: zap.NewNop(),
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	h := NewHub(zap.NewNop())

	c := newTestClient()
	h.Register(c)
	if got := h.ClientCount(); got != 1 {
		t.Errorf("ClientCount() = %d, want 1", got)
	}

	h.Unregister(c)
	if got := h.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %d, want 0", got)
	}

	// Unregistering twice must not panic or double-close the channel.
	h.Unregister(c)
}

func TestHub_BroadcastDeliversToAllClients(t *testing.T) {
	h := NewHub(zap.NewNop())
	c1 := newTestClient()
	c2 := newTestClient()
	h.Register(c1)
	h.Register(c2)

	msg := Message{Type: MessageJammingCleared, Timestamp: time.Now()}
	h.Broadcast(msg)

	for i, c := range []*Client{c1, c2} {
		select {
		case got := <-c.send:
			if got.Type != MessageJammingCleared {
				t.Errorf("client %d got type %s, want %s", i, got.Type, MessageJammingCleared)
			}
		default:
			t.Errorf("client %d received nothing", i)
		}
	}
}

func TestHub_BroadcastDropsWhenBufferFull(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := newTestClient() // buffer of 2
	h.Register(c)

	for i := 0; i < 5; i++ {
		h.Broadcast(Message{Type: MessageDroneAlert})
	}

	if got := len(c.send); got != 2 {
		t.Errorf("buffered messages = %d, want 2 (rest dropped)", got)
	}
}

func TestHandler_ForwardsJammingEvents(t *testing.T) {
	bus := event.NewBus(zap.NewNop())
	h := NewHandler(bus, zap.NewNop())

	c := newTestClient()
	h.hub.Register(c)

	err := bus.Publish(context.Background(), plugin.Event{
		Topic:     jamming.TopicJammingDetected,
		Source:    "security",
		Timestamp: time.Now(),
		Payload:   jamming.Event{ID: "evt-1", Type: "test", Severity: jamming.SeverityMedium},
	})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case got := <-c.send:
		if got.Type != MessageJammingDetected {
			t.Errorf("message type = %s, want %s", got.Type, MessageJammingDetected)
		}
		je, ok := got.Data.(jamming.Event)
		if !ok {
			t.Fatalf("data type = %T, want jamming.Event", got.Data)
		}
		if je.ID != "evt-1" {
			t.Errorf("event ID = %q, want evt-1", je.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("no message forwarded from bus")
	}
}

func TestHandler_EndToEndStream(t *testing.T) {
	bus := event.NewBus(zap.NewNop())
	h := NewHandler(bus, zap.NewNop())

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/events"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	// Wait for the server to register the client before publishing.
	deadline := time.Now().Add(2 * time.Second)
	for h.hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered with hub")
		}
		time.Sleep(5 * time.Millisecond)
	}

	bus.Publish(context.Background(), plugin.Event{
		Topic:     jamming.TopicJammingCleared,
		Source:    "security",
		Timestamp: time.Now(),
	})

	var msg Message
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if msg.Type != MessageJammingCleared {
		t.Errorf("message type = %s, want %s", msg.Type, MessageJammingCleared)
	}
}
