package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"tapcard/internal/notifications"

	"github.com/google/uuid"
)

// Event type constants prevent typos in event names.
const (
	EventInviteReceived    = notifications.EventInviteReceived
	EventInviteAccepted    = notifications.EventInviteAccepted
	EventConnectionRemoved = notifications.EventConnectionRemoved
	EventInviteRejected    = "invite_rejected"
	EventPresenceChanged   = "presence_changed"
)

// publishCircleEvent delivers a circle state change to one user: directly
// through the local hub, and via Redis so other instances pick it up too.
func (s *Server) publishCircleEvent(userID uuid.UUID, event notifications.CircleEvent) {
	if event.SentAt.IsZero() {
		event.SentAt = time.Now().UTC()
	}
	if s.hub != nil {
		eventJSON, err := json.Marshal(event)
		if err != nil {
			slog.Error("failed to marshal circle event",
				slog.String("type", event.Type),
				slog.String("error", err.Error()),
			)
			return
		}
		s.hub.Broadcast(userID, string(eventJSON))
	}
	if s.notifier != nil {
		if err := s.notifier.PublishCircleEvent(context.Background(), userID, event); err != nil {
			slog.Error("failed to publish circle event",
				slog.String("type", event.Type),
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *Server) publishUserEvent(userID uuid.UUID, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal event",
			slog.String("type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, message); err != nil {
			slog.Error("failed to publish event",
				slog.String("type", eventType),
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}
