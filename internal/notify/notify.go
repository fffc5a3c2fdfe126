// Package notify pushes user-visible notifications, such as failed
// persistence writes, to connected browsers over WebSocket.
package notify

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/persist"
)

// Notification kinds.
const (
	KindPersistFailed = "persist.failed"
	KindInfo          = "info"
)

const (
	pingInterval = 25 * time.Second
	writeTimeout = 10 * time.Second
	sendBuffer   = 16
)

// Notification is one message sent to every connected client.
type Notification struct {
	ID      uuid.UUID `json:"id"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	ItemID  int64     `json:"item_id,omitempty"`
	Time    time.Time `json:"time"`
}

// client owns one connection. Only its write pump writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
}

func (c *client) write(messageType int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(messageType, data)
}

// Hub fans notifications out to connected clients.
type Hub struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:      log.With().Str("component", "notify").Logger(),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  make(map[*client]struct{}),
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues n for every client, filling in its id and time. It never
// waits on a connection: a client whose queue is full is disconnected.
func (h *Hub) Publish(n Notification) Notification {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Time.IsZero() {
		n.Time = time.Now().UTC()
	}
	msg, err := json.Marshal(n)
	if err != nil {
		h.log.Error().Err(err).Msg("encoding notification")
		return n
	}

	var stalled []*client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		h.log.Warn().Msg("dropping client with full notification queue")
		h.unregister(c)
	}
	return n
}

// PersistFailed publishes a failed persistence write.
func (h *Hub) PersistFailed(err error) {
	n := Notification{Kind: KindPersistFailed, Message: err.Error()}
	var perr *persist.PersistenceError
	if errors.As(err, &perr) {
		n.ItemID = perr.ItemID
	}
	h.Publish(n)
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := newClient(conn)
	h.register(c)
	go h.writePump(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.unregister(c)
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		var err error
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			err = c.write(websocket.TextMessage, msg)
		case <-t.C:
			err = c.write(websocket.PingMessage, nil)
		}
		if err != nil {
			h.unregister(c)
			return
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.log.Debug().Int("clients", h.Clients()).Msg("client connected")
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		close(c.done)
		c.conn.Close()
	}
}
