package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultOverlayInterval is the broadcast period for overlay clients.
const DefaultOverlayInterval = 33 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// OverlayHandler broadcasts session snapshots via WebSocket. It is
// read-only: messages from clients are discarded.
type OverlayHandler struct {
	source   Overlay
	interval time.Duration

	// clients maps each connection to whether it still needs the first
	// snapshot.
	clients map[*websocket.Conn]bool
	mu      sync.Mutex

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewOverlayHandler creates an OverlayHandler and starts its broadcaster.
func NewOverlayHandler(source Overlay, interval time.Duration) *OverlayHandler {
	if interval <= 0 {
		interval = DefaultOverlayInterval
	}
	h := &OverlayHandler{
		source:   source,
		interval: interval,
		clients:  make(map[*websocket.Conn]bool),
		stopCh:   make(chan struct{}),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *OverlayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer h.remove(conn)

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *OverlayHandler) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// Clients returns the number of connected overlay clients.
func (h *OverlayHandler) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close stops the broadcaster. Open connections are left to their readers.
func (h *OverlayHandler) Close() {
	h.stopOnce.Do(func() { close(h.stopCh) })
}

// broadcast sends each new snapshot to all clients. New clients get the
// latest snapshot on their first tick even if nothing new was published.
func (h *OverlayHandler) broadcast() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
		}

		fresh, hasFresh := h.source.Take()
		latest, hasLatest := h.source.Latest()

		var freshMsg, latestMsg []byte
		if hasFresh {
			freshMsg, _ = json.Marshal(fresh)
		}
		if hasLatest {
			latestMsg, _ = json.Marshal(latest)
		}

		h.mu.Lock()
		for conn, pending := range h.clients {
			msg := freshMsg
			if msg == nil && pending {
				msg = latestMsg
			}
			if msg == nil {
				continue
			}

			conn.SetWriteDeadline(time.Now().Add(time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				delete(h.clients, conn)
				conn.Close()
				continue
			}
			h.clients[conn] = false
		}
		h.mu.Unlock()
	}
}
