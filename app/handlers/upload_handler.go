// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/gofiber/fiber/v3"
	businessflow "github.com/openmusic/api/business_flow"
)

// UploadHandlerInterface defines the contract for upload handlers
type UploadHandlerInterface interface {
	UploadAlbumCover(c fiber.Ctx) error
}

// UploadHandler handles album cover upload HTTP requests
type UploadHandler struct {
	uploadFlow businessflow.UploadFlow
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadFlow businessflow.UploadFlow) *UploadHandler {
	return &UploadHandler{uploadFlow: uploadFlow}
}

// UploadAlbumCover handles POST /albums/:id/covers with a multipart
// "cover" file field
func (h *UploadHandler) UploadAlbumCover(c fiber.Ctx) error {
	albumID := c.Params("id")

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		return FailResponse(c, fiber.StatusBadRequest, "Cover file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return FailResponse(c, fiber.StatusBadRequest, "Cover file is unreadable")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	result, err := h.uploadFlow.UploadAlbumCover(
		createRequestContext(c, "/albums/:id/covers"),
		albumID,
		fileHeader.Filename,
		contentType,
		file,
		fileHeader.Size,
		clientMetadata(c),
	)
	if err != nil {
		return FlowErrorResponse(c, "upload album cover", err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Cover uploaded", result)
}
