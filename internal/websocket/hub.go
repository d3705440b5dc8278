package websocket

import (
	"log"
	"sync"
	"time"
)

// Hub maintains the set of live client connections, one registry slot per
// user. Registering a second connection for the same user overwrites the
// slot; the older socket stays open but no longer receives pushes.
type Hub struct {
	// Registered clients, keyed by user ID.
	Clients map[int64]*Client

	// Outbound fan-out to every registered client.
	Broadcast chan []byte

	// Register requests from authenticated clients.
	Register chan *Client

	// Unregister requests from disconnecting clients.
	Unregister chan *Client

	// Mutex to protect concurrent access to the clients map.
	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[int64]*Client),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's processing loop.
func (h *Hub) Run() {
	log.Println("WebSocket Hub started.")
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if previous, ok := h.Clients[client.UserID]; ok && previous != client {
				log.Printf("WebSocket: replacing live connection for user %d", client.UserID)
			}
			h.Clients[client.UserID] = client
			h.mu.Unlock()
			log.Printf("WebSocket: client registered for user %d", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			// Only evict the slot if this client still owns it; a stale
			// socket closing must not drop its replacement.
			if current, ok := h.Clients[client.UserID]; ok && current == client {
				delete(h.Clients, client.UserID)
				log.Printf("WebSocket: client unregistered for user %d", client.UserID)
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.RLock()
			for userID, client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					// Fire-and-forget: a client that cannot keep up just
					// misses this message.
					log.Printf("WebSocket: send buffer full for user %d, message dropped", userID)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastMessage queues a payload for fan-out to every live connection.
// Delivery is at-most-once with no confirmation.
func (h *Hub) BroadcastMessage(payload []byte) {
	select {
	case h.Broadcast <- payload:
	case <-time.After(1 * time.Second):
		log.Println("WebSocket: timeout queuing broadcast, hub busy")
	}
}

// Registered reports whether a user currently holds a registry slot.
func (h *Hub) Registered(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.Clients[userID]
	return ok
}

// ConnectionCount returns the number of registered live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients)
}
