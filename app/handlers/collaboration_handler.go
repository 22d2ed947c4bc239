// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/openmusic/api/app/dto"
	businessflow "github.com/openmusic/api/business_flow"
)

// CollaborationHandlerInterface defines the contract for collaboration handlers
type CollaborationHandlerInterface interface {
	AddCollaboration(c fiber.Ctx) error
	DeleteCollaboration(c fiber.Ctx) error
}

// CollaborationHandler handles playlist sharing HTTP requests
type CollaborationHandler struct {
	collaborationFlow businessflow.CollaborationFlow
	validator         *validator.Validate
}

// NewCollaborationHandler creates a new collaboration handler
func NewCollaborationHandler(collaborationFlow businessflow.CollaborationFlow) *CollaborationHandler {
	return &CollaborationHandler{
		collaborationFlow: collaborationFlow,
		validator:         validator.New(),
	}
}

// AddCollaboration handles POST /collaborations
func (h *CollaborationHandler) AddCollaboration(c fiber.Ctx) error {
	var req dto.CollaborationRequest
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

	result, err := h.collaborationFlow.AddCollaboration(createRequestContext(c, "/collaborations"), authenticatedUserID(c), &req, clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "add collaboration", err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Collaboration added", result)
}

// DeleteCollaboration handles DELETE /collaborations
func (h *CollaborationHandler) DeleteCollaboration(c fiber.Ctx) error {
	var req dto.CollaborationRequest
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

	if err := h.collaborationFlow.DeleteCollaboration(createRequestContext(c, "/collaborations"), authenticatedUserID(c), &req, clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "delete collaboration", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Collaboration deleted", nil)
}
