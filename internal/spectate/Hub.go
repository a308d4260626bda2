// Package spectate streams live session frames to read-only websocket
// viewers.
package spectate

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Mshel/typejumper/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans session frames out to every connected spectator.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run owns client registration until ctx is cancelled, then disconnects
// everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Info("Spectator connected", "client", client.ID, "session", client.SessionID)

		case client := <-h.unregister:
			h.remove(client)
			log.Info("Spectator disconnected", "client", client.ID)

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish sends a frame to every spectator following its session. Slow
// spectators miss frames rather than stalling the game loop.
func (h *Hub) Publish(frame game.Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.clients) == 0 {
		return
	}

	msgType := TypeFrame
	if frame.Stats.State == game.StateGameOver {
		msgType = TypeGameOver
	}
	data, err := newMessage(msgType, frame.SessionID, frame)
	if err != nil {
		log.Error("Failed to encode frame", "session", frame.SessionID, "err", err)
		return
	}

	for client := range h.clients {
		if !client.follows(frame.SessionID) {
			continue
		}
		select {
		case client.send <- data:
		default:
			log.Debug("Spectator buffer full, dropping frame", "client", client.ID)
		}
	}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a spectator connection. The optional
// "session" query parameter narrows the stream to one session.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("Spectator upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	client := newClient(uuid.NewString(), r.URL.Query().Get("session"), h, conn)
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
