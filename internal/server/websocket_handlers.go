// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"tapcard/internal/middleware"
	"tapcard/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebsocketHandler handles WebSocket connections for circle notifications.
// Invite and connection events for the authenticated user are pushed here.
func (s *Server) WebsocketHandler() fiber.Handler {
	// Presence transitions fan out to the user's accepted connections so
	// their contact lists can show online state.
	if s.hub != nil {
		s.hub.SetPresenceCallbacks(
			func(userID uuid.UUID) { s.notifyPresence(userID, true) },
			func(userID uuid.UUID) { s.notifyPresence(userID, false) },
		)
	}

	wsLog := observability.NewWSLogger()

	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		ctx := context.Background()

		// Get userID from context locals (set by WebSocketAuthRequired middleware)
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			wsLog.LogError(ctx, uuid.Nil, errors.New("unauthenticated connection attempt"), "connect")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uuid.UUID)

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			wsLog.LogError(ctx, userID, err, "register")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}
		wsLog.LogConnect(ctx, userID)

		// Send welcome message
		welcome := map[string]interface{}{
			"type": "connected",
			"payload": map[string]interface{}{
				"user_id":      userID,
				"connected_at": time.Now().UTC().Format(time.RFC3339Nano),
			},
		}
		if welcomeJSON, err := json.Marshal(welcome); err == nil {
			client.TrySend(welcomeJSON)
		}

		// Start write pump in a goroutine
		go client.WritePump()

		// Read pump runs in the main handler goroutine (blocking)
		client.ReadPump()

		wsLog.LogDisconnect(ctx, userID, "read pump closed")
	})
}

// notifyPresence pushes a presence change to every accepted connection of the
// user that is currently online. Best effort only.
func (s *Server) notifyPresence(userID uuid.UUID, online bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connections, _, err := s.circleService.Connections(ctx, userID)
	if err != nil {
		slog.Error("presence fanout failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	for i := range connections {
		s.publishUserEvent(connections[i].ID, EventPresenceChanged, map[string]interface{}{
			"user_id": userID,
			"online":  online,
			"sent_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}
