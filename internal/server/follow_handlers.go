// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"tapcard/internal/models"
	"tapcard/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// followCompatFlag gates the legacy follow/unfollow routes. Old clients keep
// working while the flag is on; turning it off retires the shim without a deploy.
const followCompatFlag = "follow_compat"

// FollowUser handles POST /api/follow/:userId
// Legacy alias for a circle invite, kept for pre-circle clients.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	if !s.featureFlags.Enabled(followCompatFlag, userID) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Route", c.Path()))
	}

	targetUserID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	circle, err := s.circleService.Invite(ctx, userID, targetUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishCircleEvent(circle.ReceiverID, notifications.CircleEvent{
		Type:       EventInviteReceived,
		CircleID:   circle.ID,
		FromUserID: userID,
		FromName:   circle.Requester.Username,
	})

	return c.Status(fiber.StatusCreated).JSON(circle)
}

// UnfollowUser handles DELETE /api/unfollow/:userId
// Legacy alias for removing a connection.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	if !s.featureFlags.Enabled(followCompatFlag, userID) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Route", c.Path()))
	}

	targetUserID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.circleService.Remove(ctx, userID, targetUserID); err != nil {
		return respondServiceError(c, err)
	}

	s.publishCircleEvent(targetUserID, notifications.CircleEvent{
		Type:       EventConnectionRemoved,
		FromUserID: userID,
	})

	return c.SendStatus(fiber.StatusOK)
}
