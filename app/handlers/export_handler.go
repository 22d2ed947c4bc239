// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/openmusic/api/app/dto"
	businessflow "github.com/openmusic/api/business_flow"
)

// ExportHandlerInterface defines the contract for export handlers
type ExportHandlerInterface interface {
	ExportPlaylist(c fiber.Ctx) error
}

// ExportHandler handles playlist export HTTP requests
type ExportHandler struct {
	exportFlow businessflow.ExportFlow
	validator  *validator.Validate
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportFlow businessflow.ExportFlow) *ExportHandler {
	return &ExportHandler{
		exportFlow: exportFlow,
		validator:  validator.New(),
	}
}

// ExportPlaylist handles POST /export/playlists/:id. The 201 acknowledges
// that the export is queued, not that the email was delivered.
func (h *ExportHandler) ExportPlaylist(c fiber.Ctx) error {
	playlistID := c.Params("id")

	var req dto.ExportRequest
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

	if err := h.exportFlow.ExportPlaylist(createRequestContext(c, "/export/playlists/:id"), playlistID, authenticatedUserID(c), &req, clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "export playlist", err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Export request queued", nil)
}
