package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Wire messages for the /ws channel.
type (
	// ConnectionMessage greets a client right after the upgrade.
	ConnectionMessage struct {
		Type    string `json:"type"`
		Status  string `json:"status"`
		Message string `json:"message"`
	}

	// AuthMessage is the client frame that claims a user ID and registers
	// the connection for pushes.
	AuthMessage struct {
		Type   string `json:"type"`
		UserID int64  `json:"userId"`
	}

	// AdminPasteNotice is pushed to every live connection when an admin
	// paste is created.
	AdminPasteNotice struct {
		Type       string `json:"type"`
		Message    string `json:"message"`
		PasteID    int64  `json:"pasteId"`
		AuthorName string `json:"authorName"`
	}
)

func NewConnectionMessage() *ConnectionMessage {
	return &ConnectionMessage{
		Type:    "connection",
		Status:  "connected",
		Message: "Connected to paste-swamp live notifications",
	}
}

func NewAdminPasteNotice(pasteID int64, authorName string) *AdminPasteNotice {
	return &AdminPasteNotice{
		Type:       "admin_paste",
		Message:    "An admin paste was just published",
		PasteID:    pasteID,
		AuthorName: authorName,
	}
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// connID identifies the socket in logs before the client authenticates.
	connID string

	// The user ID this client represents. Zero until the auth frame.
	UserID int64

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan []byte

	authenticated bool
}

func NewClient(hub *Hub, connID string, conn *websocket.Conn) *Client {
	return &Client{
		Hub:    hub,
		connID: connID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
}

// ReadPump pumps messages from the websocket connection. The only inbound
// frame acted on is the auth message, which registers the client with the
// hub under the claimed user ID.
func (c *Client) ReadPump() {
	defer func() {
		if c.authenticated {
			c.Hub.Unregister <- c
		}
		c.Conn.Close()
		log.Printf("WebSocket ReadPump stopped for conn %s", c.connID)
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error for conn %s: %v", c.connID, err)
			}
			break
		}

		var auth AuthMessage
		if err := json.Unmarshal(message, &auth); err != nil || auth.Type != "auth" {
			log.Printf("WebSocket: ignoring frame from conn %s", c.connID)
			continue
		}
		if auth.UserID <= 0 {
			continue
		}
		// One slot per socket: further auth frames cannot re-home the
		// connection, or the old slots would leak in the registry.
		if c.authenticated {
			log.Printf("WebSocket: conn %s already registered, ignoring auth frame", c.connID)
			continue
		}

		c.UserID = auth.UserID
		c.authenticated = true
		c.Hub.Register <- c
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		log.Printf("WebSocket WritePump stopped for conn %s", c.connID)
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error for conn %s: %v", c.connID, err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("WebSocket ping error for conn %s: %v", c.connID, err)
				return
			}
		}
	}
}
