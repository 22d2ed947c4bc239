// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/app/services"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate validates the Bearer access token and stores the user id
// in request locals for downstream handlers
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.FailEnvelope("Authorization header is required"))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.FailEnvelope("Invalid authorization header format. Expected 'Bearer <token>'"))
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.FailEnvelope("Access token is required"))
		}

		claims, err := m.tokenService.ValidateAccessToken(token)
		if err != nil {
			message := "Token validation failed"
			if errors.Is(err, services.ErrTokenExpired) {
				message = "Access token has expired"
			} else if errors.Is(err, services.ErrTokenInvalid) {
				message = "Invalid access token"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.FailEnvelope(message))
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("token_id", claims.TokenID)
		c.Locals("token_claims", claims)

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}
