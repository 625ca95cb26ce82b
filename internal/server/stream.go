package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rxtech-lab/argo-paper-agent/internal/logger"
	"go.uber.org/zap"
)

// streamBufferSize is how many decisions may wait for delivery before new ones are dropped.
const streamBufferSize = 256

// Hub fans decisions out to every connected websocket client.
type Hub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
	upgrader  websocket.Upgrader
	lock      sync.Mutex
	logger    *logger.Logger
}

// NewHub creates a hub. Call Run to start delivering messages.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, streamBufferSize),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		lock:   sync.Mutex{},
		logger: log,
	}
}

// Run delivers broadcast messages until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-h.broadcast:
			h.lock.Lock()
			for client := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					client.Close()
					delete(h.clients, client)
				}
			}
			h.lock.Unlock()
		}
	}
}

// Broadcast queues msg for every client. It never blocks; when the queue is full the message is dropped.
func (h *Hub) Broadcast(msg []byte) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		h.logger.Warn("Decision stream queue full, dropping message")

		return false
	}
}

// ServeHTTP upgrades the request and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))

		return
	}

	h.lock.Lock()
	h.clients[conn] = true
	h.lock.Unlock()

	// clients only listen; reading is needed to notice when they go away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(conn)

				return
			}
		}
	}()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.lock.Lock()
	defer h.lock.Unlock()

	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if _, ok := h.clients[conn]; ok {
		conn.Close()
		delete(h.clients, conn)
	}
}
