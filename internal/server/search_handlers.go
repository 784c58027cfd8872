// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SearchUsers handles GET /api/search?q=
// @Summary Search users
// @Description Search the user directory by username, fullname or email. Results carry the caller's connection status with each user.
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{results=[]service.SearchResult,count=int}
// @Router /search [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	query := strings.TrimSpace(c.Query("q"))
	page := parsePagination(c, 20)

	results, err := s.userService.SearchUsers(ctx, userID, query, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"results": results,
		"count":   len(results),
	})
}
