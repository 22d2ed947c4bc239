// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/openmusic/api/app/dto"
	businessflow "github.com/openmusic/api/business_flow"
)

// PlaylistHandlerInterface defines the contract for playlist handlers
type PlaylistHandlerInterface interface {
	CreatePlaylist(c fiber.Ctx) error
	ListPlaylists(c fiber.Ctx) error
	DeletePlaylist(c fiber.Ctx) error
	AddSongToPlaylist(c fiber.Ctx) error
	GetSongsFromPlaylist(c fiber.Ctx) error
	DeleteSongFromPlaylist(c fiber.Ctx) error
	GetActivities(c fiber.Ctx) error
}

// PlaylistHandler handles playlist-related HTTP requests
type PlaylistHandler struct {
	playlistFlow businessflow.PlaylistFlow
	validator    *validator.Validate
}

// NewPlaylistHandler creates a new playlist handler
func NewPlaylistHandler(playlistFlow businessflow.PlaylistFlow) *PlaylistHandler {
	return &PlaylistHandler{
		playlistFlow: playlistFlow,
		validator:    validator.New(),
	}
}

// CreatePlaylist handles POST /playlists
func (h *PlaylistHandler) CreatePlaylist(c fiber.Ctx) error {
	var req dto.PlaylistRequest
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

	result, err := h.playlistFlow.CreatePlaylist(createRequestContext(c, "/playlists"), authenticatedUserID(c), &req, clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "create playlist", err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Playlist created", result)
}

// ListPlaylists handles GET /playlists
func (h *PlaylistHandler) ListPlaylists(c fiber.Ctx) error {
	playlists, err := h.playlistFlow.ListPlaylists(createRequestContext(c, "/playlists"), authenticatedUserID(c), clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "list playlists", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "", dto.PlaylistsData{Playlists: playlists})
}

// DeletePlaylist handles DELETE /playlists/:id
func (h *PlaylistHandler) DeletePlaylist(c fiber.Ctx) error {
	playlistID := c.Params("id")

	if err := h.playlistFlow.DeletePlaylist(createRequestContext(c, "/playlists/:id"), playlistID, authenticatedUserID(c), clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "delete playlist", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Playlist deleted", nil)
}

// AddSongToPlaylist handles POST /playlists/:id/songs
func (h *PlaylistHandler) AddSongToPlaylist(c fiber.Ctx) error {
	playlistID := c.Params("id")

	var req dto.PlaylistSongRequest
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

	if err := h.playlistFlow.AddSongToPlaylist(createRequestContext(c, "/playlists/:id/songs"), playlistID, authenticatedUserID(c), &req, clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "add song to playlist", err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Song added to playlist", nil)
}

// GetSongsFromPlaylist handles GET /playlists/:id/songs
func (h *PlaylistHandler) GetSongsFromPlaylist(c fiber.Ctx) error {
	playlistID := c.Params("id")

	playlist, err := h.playlistFlow.GetSongsFromPlaylist(createRequestContext(c, "/playlists/:id/songs"), playlistID, authenticatedUserID(c), clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "get playlist songs", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "", dto.PlaylistSongsData{Playlist: *playlist})
}

// DeleteSongFromPlaylist handles DELETE /playlists/:id/songs
func (h *PlaylistHandler) DeleteSongFromPlaylist(c fiber.Ctx) error {
	playlistID := c.Params("id")

	var req dto.PlaylistSongRequest
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

	if err := h.playlistFlow.DeleteSongFromPlaylist(createRequestContext(c, "/playlists/:id/songs"), playlistID, authenticatedUserID(c), &req, clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "delete song from playlist", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Song removed from playlist", nil)
}

// GetActivities handles GET /playlists/:id/activities
func (h *PlaylistHandler) GetActivities(c fiber.Ctx) error {
	playlistID := c.Params("id")

	activities, err := h.playlistFlow.GetActivities(createRequestContext(c, "/playlists/:id/activities"), playlistID, authenticatedUserID(c), clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "get playlist activities", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "", activities)
}
