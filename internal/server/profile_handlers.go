// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"tapcard/internal/models"
	"tapcard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/user/profile
// @Summary Get own profile
// @Description Return the authenticated user's full profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} object{error=string}
// @Router /user/profile [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	user, err := s.userRepo.GetByIDWithProfile(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/user/profile
// @Summary Update own profile
// @Description Update username, fullname, bio and date of birth
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{username=string,fullname=string,bio=string,dob=string} true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} object{error=string}
// @Router /user/profile [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var req struct {
		Username *string    `json:"username"`
		Fullname *string    `json:"fullname"`
		Bio      *string    `json:"bio"`
		DOB      *time.Time `json:"dob"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
		Fullname: req.Fullname,
		Bio:      req.Bio,
		DOB:      req.DOB,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
// @Summary Get a public profile
// @Description Return the public profile card for the given user
// @Tags profile
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} service.PublicProfileView
// @Failure 404 {object} object{error=string}
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.GetPublicProfile(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Profile views feed the owner's analytics. Best effort only; a failed
	// write must not break the profile page.
	if _, recErr := s.analyticsService.RecordEvent(ctx, userID, models.EventTypeProfileView, ""); recErr != nil {
		_ = recErr
	}

	return c.JSON(profile)
}

// GetDashboard handles GET /api/user/dashboard
// @Summary Get the dashboard payload
// @Description Return profile summary, social links, analytics stats and circle counts in one call
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} object{error=string}
// @Router /user/dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	dashboard, err := s.dashboardService.Get(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(dashboard)
}
