// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/openmusic/api/app/dto"
	businessflow "github.com/openmusic/api/business_flow"
)

// UserHandlerInterface defines the contract for user handlers
type UserHandlerInterface interface {
	CreateUser(c fiber.Ctx) error
}

// UserHandler handles user registration HTTP requests
type UserHandler struct {
	userFlow  businessflow.UserFlow
	validator *validator.Validate
}

// NewUserHandler creates a new user handler
func NewUserHandler(userFlow businessflow.UserFlow) *UserHandler {
	return &UserHandler{
		userFlow:  userFlow,
		validator: validator.New(),
	}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var req dto.UserRequest
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

	result, err := h.userFlow.CreateUser(createRequestContext(c, "/users"), &req, clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "create user", err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "User registered", result)
}
