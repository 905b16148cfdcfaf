package gateway

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/soyeahso/wagate/internal/logging"
)

// EventHub fans processed webhook events out to websocket observers.
// Slow observers are dropped rather than allowed to stall delivery.
type EventHub struct {
	mu      sync.Mutex
	clients map[*hubClient]struct{}
	log     *logging.Logger
	seq     int64
}

type hubClient struct {
	conn *websocket.Conn
	send chan map[string]any
}

const hubClientBuffer = 32

// NewEventHub creates an empty hub.
func NewEventHub(log *logging.Logger) *EventHub {
	return &EventHub{
		clients: make(map[*hubClient]struct{}),
		log:     log.Sub("events"),
	}
}

// Publish sends one event to every connected observer.
func (h *EventHub) Publish(event, session string, result map[string]any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	msg := map[string]any{
		"seq":       h.seq,
		"event":     event,
		"session":   session,
		"result":    result,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warn().Msg("dropping slow event observer")
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Count returns the number of connected observers.
func (h *EventHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *EventHub) add(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *EventHub) remove(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// closeAll disconnects every observer, used during shutdown.
func (h *EventHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
}

// serve runs the write loop for one observer connection. Returns when
// the client disconnects or is dropped.
func (h *EventHub) serve(conn *websocket.Conn) {
	c := &hubClient{conn: conn, send: make(chan map[string]any, hubClientBuffer)}
	h.add(c)
	defer func() {
		h.remove(c)
		conn.Close()
	}()

	// Reader goroutine: observers send nothing, but reading surfaces
	// close frames and keeps ping/pong flowing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug().Err(err).Msg("event observer write failed")
				return
			}
		case <-done:
			return
		}
	}
}
