package notify

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"ride-tracker/internal/rides/domain"
	"ride-tracker/internal/shared/util"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans recorded ride events out to connected websocket clients. The
// admin gate runs before the upgrade, so every connection here is already
// authorized.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	logger  *util.Logger
}

func NewHub(logger *util.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		logger:  logger,
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("EventFeed", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Drain the connection; we only send. A read error means the client is
	// gone.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
}

// Broadcast sends the event to every connected client, dropping clients
// whose writes fail.
func (h *Hub) Broadcast(event domain.RideEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[conn] {
		conn.Close()
		delete(h.clients, conn)
	}
}
