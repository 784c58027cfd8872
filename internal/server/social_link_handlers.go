// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"tapcard/internal/models"
	"tapcard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSocialLinks handles GET /api/social-links
func (s *Server) GetSocialLinks(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	links, err := s.profileService.ListSocialLinks(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(links)
}

// CreateSocialLink handles POST /api/social-links
// @Summary Add a social link
// @Tags social-links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.SocialLinkInput true "Social link"
// @Success 201 {object} models.SocialLink
// @Failure 400 {object} object{error=string}
// @Router /social-links [post]
func (s *Server) CreateSocialLink(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var in service.SocialLinkInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	link, err := s.profileService.CreateSocialLink(ctx, userID, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(link)
}

// UpdateSocialLink handles PUT /api/social-links/:id
func (s *Server) UpdateSocialLink(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	linkID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var in service.SocialLinkInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	link, err := s.profileService.UpdateSocialLink(ctx, userID, linkID, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(link)
}

// DeleteSocialLink handles DELETE /api/social-links/:id
func (s *Server) DeleteSocialLink(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	linkID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.profileService.DeleteSocialLink(ctx, userID, linkID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
