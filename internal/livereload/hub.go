// Package livereload tells connected browsers to reload when the site
// directory changes.
package livereload

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Path is the websocket endpoint the client script connects to.
const Path = "/livereload"

// Script is injected before </body> of every rendered page while watching.
const Script = `<script>(function(){var p=location.protocol==="https:"?"wss://":"ws://";` +
	`var ws=new WebSocket(p+location.host+"` + Path + `");` +
	`ws.onmessage=function(e){if(e.data==="reload"){location.reload();}};})();</script>`

const writeWait = 5 * time.Second

// Hub keeps the set of connected browsers.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

// NewHub returns an empty Hub. A nil logger uses slog.Default().
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dev server only serves local pages.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[string]*websocket.Conn),
	}
}

// ServeHTTP upgrades the request and holds the connection until the
// browser goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("livereload upgrade failed", "error", err)
		return
	}

	id := uuid.New().String()
	h.add(id, conn)
	h.logger.Debug("livereload client connected", "client", id, "remote", r.RemoteAddr)

	defer func() {
		h.remove(id)
		h.logger.Debug("livereload client disconnected", "client", id)
	}()

	// Browsers never send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends msg to every client. Clients that fail the write are
// dropped. It returns the number of clients reached.
func (h *Hub) Broadcast(msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for id, conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			h.logger.Debug("livereload write failed", "client", id, "error", err)
			_ = conn.Close()
			delete(h.clients, id)
			continue
		}
		sent++
	}
	return sent
}

// Reload broadcasts the reload message.
func (h *Hub) Reload() int {
	n := h.Broadcast("reload")
	h.logger.Info("reload sent", "clients", n)
	return n
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, id)
	}
}

func (h *Hub) add(id string, conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[id] = conn
	h.mu.Unlock()
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	if conn, ok := h.clients[id]; ok {
		_ = conn.Close()
		delete(h.clients, id)
	}
	h.mu.Unlock()
}
