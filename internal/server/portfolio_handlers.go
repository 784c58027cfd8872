// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"tapcard/internal/models"
	"tapcard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPortfolioItems handles GET /api/portfolio
func (s *Server) GetPortfolioItems(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	items, err := s.profileService.ListPortfolioItems(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(items)
}

// CreatePortfolioItem handles POST /api/portfolio
// @Summary Add a portfolio item
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PortfolioInput true "Portfolio item"
// @Success 201 {object} models.PortfolioItem
// @Failure 400 {object} object{error=string}
// @Router /portfolio [post]
func (s *Server) CreatePortfolioItem(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var in service.PortfolioInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.profileService.CreatePortfolioItem(ctx, userID, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdatePortfolioItem handles PUT /api/portfolio/:id
func (s *Server) UpdatePortfolioItem(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	itemID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var in service.PortfolioInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.profileService.UpdatePortfolioItem(ctx, userID, itemID, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(item)
}

// DeletePortfolioItem handles DELETE /api/portfolio/:id
func (s *Server) DeletePortfolioItem(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	itemID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.profileService.DeletePortfolioItem(ctx, userID, itemID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
