package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"paste-swamp/internal/websocket"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: check against Config.AllowedOrigins
		return true
	},
}

// HandleWebSocket upgrades the connection and starts the client pumps. The
// connection starts anonymous; the client claims a user ID with an auth
// frame, which is when it lands in the broadcast registry.
func (s *Server) HandleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}

		connID := uuid.NewString()[:8]
		client := websocket.NewClient(s.Hub, connID, conn)
		log.Printf("WebSocket connection %s established", connID)

		go client.WritePump()
		go client.ReadPump()

		welcome, err := json.Marshal(websocket.NewConnectionMessage())
		if err == nil {
			client.Send <- welcome
		}
	}
}
