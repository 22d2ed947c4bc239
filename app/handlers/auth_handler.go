// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/openmusic/api/app/dto"
	businessflow "github.com/openmusic/api/business_flow"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Login(c fiber.Ctx) error
	RefreshAccessToken(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authFlow  businessflow.AuthFlow
	validator *validator.Validate
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authFlow businessflow.AuthFlow) *AuthHandler {
	return &AuthHandler{
		authFlow:  authFlow,
		validator: validator.New(),
	}
}

// Login handles POST /authentications
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return FailResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
			Status:  dto.StatusFail,
			Message: "Validation failed",
			Data:    validationMessages(err),
		})
	}

	result, err := h.authFlow.Login(createRequestContext(c, "/authentications"), &req, clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "login", err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Authentication created", result)
}

// RefreshAccessToken handles PUT /authentications
func (h *AuthHandler) RefreshAccessToken(c fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return FailResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
			Status:  dto.StatusFail,
			Message: "Validation failed",
			Data:    validationMessages(err),
		})
	}

	result, err := h.authFlow.RefreshAccessToken(createRequestContext(c, "/authentications"), &req, clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "refresh access token", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Access token renewed", result)
}

// Logout handles DELETE /authentications
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return FailResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
			Status:  dto.StatusFail,
			Message: "Validation failed",
			Data:    validationMessages(err),
		})
	}

	if err := h.authFlow.Logout(createRequestContext(c, "/authentications"), &req, clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "logout", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Refresh token deleted", nil)
}
