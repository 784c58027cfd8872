// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetQRCode handles GET /api/user/qr-code
// @Summary Get the profile QR code
// @Description Return the stored QR code, generating one on first access
// @Tags qr
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.QRCode
// @Failure 401 {object} object{error=string}
// @Router /user/qr-code [get]
func (s *Server) GetQRCode(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	qr, err := s.qrService.Get(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(qr)
}

// RegenerateQRCode handles POST /api/user/qr-code/regenerate
// @Summary Regenerate the profile QR code
// @Tags qr
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.QRCode
// @Failure 401 {object} object{error=string}
// @Router /user/qr-code/regenerate [post]
func (s *Server) RegenerateQRCode(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	qr, err := s.qrService.Generate(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(qr)
}
