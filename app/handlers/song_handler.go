// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/openmusic/api/app/dto"
	businessflow "github.com/openmusic/api/business_flow"
)

// SongHandlerInterface defines the contract for song handlers
type SongHandlerInterface interface {
	CreateSong(c fiber.Ctx) error
	ListSongs(c fiber.Ctx) error
	GetSong(c fiber.Ctx) error
	UpdateSong(c fiber.Ctx) error
	DeleteSong(c fiber.Ctx) error
}

// SongHandler handles song-related HTTP requests
type SongHandler struct {
	songFlow  businessflow.SongFlow
	validator *validator.Validate
}

// NewSongHandler creates a new song handler
func NewSongHandler(songFlow businessflow.SongFlow) *SongHandler {
	return &SongHandler{
		songFlow:  songFlow,
		validator: validator.New(),
	}
}

// CreateSong handles POST /songs
func (h *SongHandler) CreateSong(c fiber.Ctx) error {
	var req dto.SongRequest
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

	result, err := h.songFlow.CreateSong(createRequestContext(c, "/songs"), &req, clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "create song", err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Song created", result)
}

// ListSongs handles GET /songs with optional title and performer filters
func (h *SongHandler) ListSongs(c fiber.Ctx) error {
	filter := dto.SongListFilter{
		Title:     c.Query("title"),
		Performer: c.Query("performer"),
	}

	songs, err := h.songFlow.ListSongs(createRequestContext(c, "/songs"), filter, clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "list songs", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "", dto.SongsData{Songs: songs})
}

// GetSong handles GET /songs/:id
func (h *SongHandler) GetSong(c fiber.Ctx) error {
	songID := c.Params("id")

	song, err := h.songFlow.GetSong(createRequestContext(c, "/songs/:id"), songID, clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "get song", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "", dto.SongData{Song: *song})
}

// UpdateSong handles PUT /songs/:id
func (h *SongHandler) UpdateSong(c fiber.Ctx) error {
	songID := c.Params("id")

	var req dto.SongRequest
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

	if err := h.songFlow.UpdateSong(createRequestContext(c, "/songs/:id"), songID, &req, clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "update song", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Song updated", nil)
}

// DeleteSong handles DELETE /songs/:id
func (h *SongHandler) DeleteSong(c fiber.Ctx) error {
	songID := c.Params("id")

	if err := h.songFlow.DeleteSong(createRequestContext(c, "/songs/:id"), songID, clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "delete song", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Song deleted", nil)
}
