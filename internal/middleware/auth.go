// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"context"
	"strings"

	"tapcard/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	cfg *config.Config
	rdb *redis.Client
)

// InitMiddleware initializes authentication middleware with the given config
// and Redis client. The Redis client is used for the token revocation list and
// may be nil in tests.
func InitMiddleware(c *config.Config, r *redis.Client) {
	cfg = c
	rdb = r
}

// unauthorized writes a 401 response with the given message.
func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
	})
}

// validateToken parses the JWT, checks the revocation list and returns the
// authenticated user ID. A non-empty second return value is the reason the
// token was rejected.
func validateToken(tokenString string) (uuid.UUID, string) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "Invalid or expired token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "Invalid token claims"
	}

	// Reject tokens that were revoked via logout.
	if jti, ok := claims["jti"].(string); ok && jti != "" && rdb != nil {
		if exists, err := rdb.Exists(context.Background(), "jti_blacklist:"+jti).Result(); err == nil && exists > 0 {
			return uuid.Nil, "Token has been revoked"
		}
	}

	subClaim, ok := claims["sub"]
	if !ok {
		return uuid.Nil, "Invalid token structure - missing subject"
	}

	subStr, ok := subClaim.(string)
	if !ok {
		return uuid.Nil, "Invalid token subject type"
	}

	userID, err := uuid.Parse(subStr)
	if err != nil {
		return uuid.Nil, "Invalid user ID in token"
	}

	return userID, ""
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return unauthorized(c, "Authorization header required")
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return unauthorized(c, "Invalid authorization header format")
	}

	userID, reason := validateToken(parts[1])
	if reason != "" {
		return unauthorized(c, reason)
	}

	c.Locals("userID", userID)
	// Sync to UserContext for logging and downstream services.
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
	return c.Next()
}

// WebSocketAuthRequired validates JWT tokens from query parameters for
// WebSocket connections, falling back to the Authorization header.
func WebSocketAuthRequired(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Token required")
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Invalid authorization header format")
		}
		token = parts[1]
	}

	userID, reason := validateToken(token)
	if reason != "" {
		return unauthorized(c, reason)
	}

	c.Locals("userID", userID)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
	return c.Next()
}
