package ws

import (
	"context"
	"net/http"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/aashishh4323/Guard-X/internal/fleet"
	"github.com/aashishh4323/Guard-X/internal/jamming"
	"github.com/aashishh4323/Guard-X/pkg/plugin"
)

// Handler provides the WebSocket endpoint streaming security and fleet
// events to dashboard clients.
type Handler struct {
	hub    *Hub
	bus    plugin.EventBus
	logger *zap.Logger
}

// Compile-time check that Handler implements the server interface.
var _ interface {
	RegisterRoutes(mux *http.ServeMux)
} = (*Handler)(nil)

// NewHandler creates a WebSocket handler and subscribes to bus events.
func NewHandler(bus plugin.EventBus, logger *zap.Logger) *Handler {
	h := &Handler{
		hub:    NewHub(logger),
		bus:    bus,
		logger: logger,
	}
	h.subscribeToEvents()
	return h
}

// RegisterRoutes registers WebSocket routes on the server mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/ws/events", h.handleEventStream)
}

// handleEventStream upgrades the connection and streams events until the
// client disconnects.
func (h *Handler) handleEventStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Error("websocket accept failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:   conn,
		remote: r.RemoteAddr,
		send:   make(chan Message, 256),
		logger: h.logger,
	}

	h.hub.Register(client)

	ctx := r.Context()
	done := make(chan struct{})
	go func() {
		client.writePump(ctx)
		close(done)
	}()

	// readPump blocks until client disconnects.
	client.readPump(ctx)

	h.hub.Unregister(client)
	conn.Close(websocket.StatusNormalClosure, "")
	<-done
}

// subscribeToEvents forwards security and fleet bus events to all
// connected clients.
func (h *Handler) subscribeToEvents() {
	if h.bus == nil {
		return
	}

	h.bus.Subscribe(jamming.TopicJammingDetected, func(_ context.Context, event plugin.Event) {
		je, ok := event.Payload.(jamming.Event)
		if !ok {
			return
		}
		h.hub.Broadcast(Message{
			Type:      MessageJammingDetected,
			Timestamp: event.Timestamp,
			Data:      je,
		})
	})

	h.bus.Subscribe(jamming.TopicJammingCleared, func(_ context.Context, event plugin.Event) {
		h.hub.Broadcast(Message{
			Type:      MessageJammingCleared,
			Timestamp: event.Timestamp,
		})
	})

	h.bus.Subscribe(fleet.TopicDroneAlert, func(_ context.Context, event plugin.Event) {
		alert, ok := event.Payload.(fleet.Alert)
		if !ok {
			return
		}
		h.hub.Broadcast(Message{
			Type:      MessageDroneAlert,
			Timestamp: event.Timestamp,
			Data:      alert,
		})
	})

	h.logger.Info("subscribed to security and fleet events for WebSocket broadcasting")
}
