package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs runs one socket session for userID until the peer goes away.
func ServeWs(hub *Hub, c *websocket.Conn, userID string) {
	client := NewClient(hub, c, userID)
	hub.Register(client)

	go client.writePump()
	client.readPump()
}
