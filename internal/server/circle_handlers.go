// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"tapcard/internal/models"
	"tapcard/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// InviteToCircle handles POST /api/circle/invite/:userId
// @Summary Invite a user to your circle
// @Description Create a pending circle invite to another user
// @Tags circle
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Target user ID"
// @Success 201 {object} models.Circle
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /circle/invite/{userId} [post]
func (s *Server) InviteToCircle(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	targetUserID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	circle, err := s.circleService.Invite(ctx, userID, targetUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Notify the receiver so their UI updates immediately.
	s.publishCircleEvent(circle.ReceiverID, notifications.CircleEvent{
		Type:       EventInviteReceived,
		CircleID:   circle.ID,
		FromUserID: userID,
		FromName:   circle.Requester.Username,
	})

	return c.Status(fiber.StatusCreated).JSON(circle)
}

// AcceptCircleInvite handles POST /api/circle/accept/:userId
// @Summary Accept a circle invite
// @Description Accept a pending invite received from the given user
// @Tags circle
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Inviter user ID"
// @Success 200 {object} models.Circle
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /circle/accept/{userId} [post]
func (s *Server) AcceptCircleInvite(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	otherUserID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	circle, err := s.circleService.Accept(ctx, userID, otherUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Tell the requester their invite was accepted.
	s.publishCircleEvent(circle.RequesterID, notifications.CircleEvent{
		Type:       EventInviteAccepted,
		CircleID:   circle.ID,
		FromUserID: userID,
		FromName:   circle.Receiver.Username,
	})

	return c.JSON(circle)
}

// RejectCircleInvite handles POST /api/circle/reject/:userId
// @Summary Reject a circle invite
// @Description Reject a pending invite received from the given user
// @Tags circle
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Inviter user ID"
// @Success 200 {object} models.Circle
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /circle/reject/{userId} [post]
func (s *Server) RejectCircleInvite(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	otherUserID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	circle, err := s.circleService.Reject(ctx, userID, otherUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Rejections are silent for the requester on purpose; only the receiver's
	// own clients get the state change.
	s.publishUserEvent(userID, EventInviteRejected, map[string]interface{}{
		"user_id": otherUserID,
		"sent_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(circle)
}

// RemoveFromCircle handles DELETE /api/circle/remove/:userId
// @Summary Remove a connection
// @Description Remove an accepted connection with the given user
// @Tags circle
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Connected user ID"
// @Success 200
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /circle/remove/{userId} [delete]
func (s *Server) RemoveFromCircle(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	targetUserID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.circleService.Remove(ctx, userID, targetUserID); err != nil {
		return respondServiceError(c, err)
	}

	// Both sides see the relationship disappear.
	s.publishCircleEvent(userID, notifications.CircleEvent{
		Type:       EventConnectionRemoved,
		FromUserID: targetUserID,
	})
	s.publishCircleEvent(targetUserID, notifications.CircleEvent{
		Type:       EventConnectionRemoved,
		FromUserID: userID,
	})

	return c.SendStatus(fiber.StatusOK)
}

// GetPendingInvites handles GET /api/circle/pending
// @Summary List pending invites
// @Description List pending invites received by and sent by the caller
// @Tags circle
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.PendingInvites
// @Router /circle/pending [get]
func (s *Server) GetPendingInvites(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	pending, err := s.circleService.Pending(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(pending)
}

// GetConnectionStatus handles GET /api/circle/status/:userId
// @Summary Connection status with a user
// @Description Report the relationship state between the caller and the given user
// @Tags circle
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Other user ID"
// @Success 200 {object} service.ConnectionStatus
// @Failure 404 {object} object{error=string}
// @Router /circle/status/{userId} [get]
func (s *Server) GetConnectionStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	otherUserID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	status, err := s.circleService.Status(ctx, userID, otherUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(status)
}

// GetConnections handles GET /api/circle/connections/:userId
// @Summary List a user's connections
// @Description List the accepted connections of the given user
// @Tags circle
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} object{connections=[]models.PublicProfile,total_count=int}
// @Failure 404 {object} object{error=string}
// @Router /circle/connections/{userId} [get]
func (s *Server) GetConnections(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	users, count, err := s.circleService.Connections(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	connections := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		connections = append(connections, users[i].Public())
	}

	return c.JSON(fiber.Map{
		"connections": connections,
		"total_count": count,
	})
}
