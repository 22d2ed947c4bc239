// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/openmusic/api/app/dto"
	businessflow "github.com/openmusic/api/business_flow"
)

// AlbumHandlerInterface defines the contract for album handlers
type AlbumHandlerInterface interface {
	CreateAlbum(c fiber.Ctx) error
	GetAlbum(c fiber.Ctx) error
	UpdateAlbum(c fiber.Ctx) error
	DeleteAlbum(c fiber.Ctx) error
}

// AlbumHandler handles album-related HTTP requests
type AlbumHandler struct {
	albumFlow businessflow.AlbumFlow
	validator *validator.Validate
}

// NewAlbumHandler creates a new album handler
func NewAlbumHandler(albumFlow businessflow.AlbumFlow) *AlbumHandler {
	return &AlbumHandler{
		albumFlow: albumFlow,
		validator: validator.New(),
	}
}

// CreateAlbum handles POST /albums
func (h *AlbumHandler) CreateAlbum(c fiber.Ctx) error {
	var req dto.AlbumRequest
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

	result, err := h.albumFlow.CreateAlbum(createRequestContext(c, "/albums"), &req, clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "create album", err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Album created", result)
}

// GetAlbum handles GET /albums/:id
func (h *AlbumHandler) GetAlbum(c fiber.Ctx) error {
	albumID := c.Params("id")

	album, err := h.albumFlow.GetAlbum(createRequestContext(c, "/albums/:id"), albumID, clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "get album", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "", dto.AlbumData{Album: *album})
}

// UpdateAlbum handles PUT /albums/:id
func (h *AlbumHandler) UpdateAlbum(c fiber.Ctx) error {
	albumID := c.Params("id")

	var req dto.AlbumRequest
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

	if err := h.albumFlow.UpdateAlbum(createRequestContext(c, "/albums/:id"), albumID, &req, clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "update album", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Album updated", nil)
}

// DeleteAlbum handles DELETE /albums/:id
func (h *AlbumHandler) DeleteAlbum(c fiber.Ctx) error {
	albumID := c.Params("id")

	if err := h.albumFlow.DeleteAlbum(createRequestContext(c, "/albums/:id"), albumID, clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "delete album", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Album deleted", nil)
}
