// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"tapcard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RecordAnalyticsEvent handles POST /api/analytics
// @Summary Record an analytics event
// @Description Record a profile interaction. user_id targets another profile (e.g. link_click on someone's card); it defaults to the caller.
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{user_id=string,event_type=string,event_data=string} true "Event"
// @Success 201 {object} models.AnalyticsEvent
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /analytics [post]
func (s *Server) RecordAnalyticsEvent(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var req struct {
		UserID    *uuid.UUID `json:"user_id"`
		EventType string     `json:"event_type"`
		EventData string     `json:"event_data"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Events belong to the profile they happened on, which is usually
	// someone else's when the caller scanned or clicked a card.
	ownerID := userID
	if req.UserID != nil && *req.UserID != uuid.Nil {
		ownerID = *req.UserID
	}

	event, err := s.analyticsService.RecordEvent(ctx, ownerID, req.EventType, req.EventData)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// GetAnalyticsEvents handles GET /api/analytics
// @Summary List own analytics events
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.AnalyticsEvent
// @Router /analytics [get]
func (s *Server) GetAnalyticsEvents(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	page := parsePagination(c, 50)

	events, err := s.analyticsService.ListEvents(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(events)
}

// GetAnalyticsStats handles GET /api/analytics/stats
// @Summary Get own analytics stats
// @Description Per-type event counts for the caller's profile
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AnalyticsSummary
// @Router /analytics/stats [get]
func (s *Server) GetAnalyticsStats(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	summary, err := s.analyticsService.GetSummary(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(summary)
}
