package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RequireWebSocketUpgrade rejects plain HTTP requests on WebSocket routes.
func (s *Server) RequireWebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// WebSocketEventsHandler handles WebSocket connections for the live
// post-event feed. Clients receive every post created/updated/deleted
// event published through Redis; inbound messages are ignored.
func (s *Server) WebSocketEventsHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		if s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"event feed unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(conn)
		if err != nil {
			log.Printf("WebSocket events: registration failed: %v", err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		// ReadPump blocks until the client disconnects and unregisters.
		client.ReadPump()
	})
}
