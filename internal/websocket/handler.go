package websocket

import (
	syncpkg "kurazhelp-be/internal/sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, UserID: userID, Send: make(chan []byte, 256)}

	// Snapshots flow session -> send buffer -> writePump.
	client.Session = syncpkg.NewSession(userID, client.enqueue)

	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
