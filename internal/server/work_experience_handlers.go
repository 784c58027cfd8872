// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"tapcard/internal/models"
	"tapcard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetWorkExperiences handles GET /api/work-experience
func (s *Server) GetWorkExperiences(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	entries, err := s.profileService.ListWorkExperiences(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(entries)
}

// CreateWorkExperience handles POST /api/work-experience
// @Summary Add a work experience entry
// @Tags work-experience
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.WorkExperienceInput true "Work experience"
// @Success 201 {object} models.WorkExperience
// @Failure 400 {object} object{error=string}
// @Router /work-experience [post]
func (s *Server) CreateWorkExperience(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var in service.WorkExperienceInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.profileService.CreateWorkExperience(ctx, userID, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// UpdateWorkExperience handles PUT /api/work-experience/:id
func (s *Server) UpdateWorkExperience(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	entryID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var in service.WorkExperienceInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.profileService.UpdateWorkExperience(ctx, userID, entryID, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(entry)
}

// DeleteWorkExperience handles DELETE /api/work-experience/:id
func (s *Server) DeleteWorkExperience(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	entryID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.profileService.DeleteWorkExperience(ctx, userID, entryID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
