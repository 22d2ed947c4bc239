// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/openmusic/api/app/dto"
	businessflow "github.com/openmusic/api/business_flow"
)

// DataSourceHeader marks responses served from the cache
const DataSourceHeader = "X-Data-Source"

// LikeHandlerInterface defines the contract for album like handlers
type LikeHandlerInterface interface {
	AddLike(c fiber.Ctx) error
	DeleteLike(c fiber.Ctx) error
	GetLikesCount(c fiber.Ctx) error
}

// LikeHandler handles album like HTTP requests
type LikeHandler struct {
	likeFlow businessflow.LikeFlow
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(likeFlow businessflow.LikeFlow) *LikeHandler {
	return &LikeHandler{likeFlow: likeFlow}
}

// AddLike handles POST /albums/:id/likes
func (h *LikeHandler) AddLike(c fiber.Ctx) error {
	albumID := c.Params("id")

	if err := h.likeFlow.AddLike(createRequestContext(c, "/albums/:id/likes"), authenticatedUserID(c), albumID, clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "add like", err)
	}

	return SuccessResponse(c, fiber.StatusCreated, "Album liked", nil)
}

// DeleteLike handles DELETE /albums/:id/likes
func (h *LikeHandler) DeleteLike(c fiber.Ctx) error {
	albumID := c.Params("id")

	if err := h.likeFlow.DeleteLike(createRequestContext(c, "/albums/:id/likes"), authenticatedUserID(c), albumID, clientMetadata(c)); err != nil {
		return FlowErrorResponse(c, "delete like", err)
	}

	return SuccessResponse(c, fiber.StatusOK, "Like removed", nil)
}

// GetLikesCount handles GET /albums/:id/likes. Responses served from the
// cache carry the X-Data-Source: cache header.
func (h *LikeHandler) GetLikesCount(c fiber.Ctx) error {
	albumID := c.Params("id")

	count, fromCache, err := h.likeFlow.GetLikesCount(createRequestContext(c, "/albums/:id/likes"), albumID, clientMetadata(c))
	if err != nil {
		return FlowErrorResponse(c, "get likes count", err)
	}

	if fromCache {
		c.Set(DataSourceHeader, "cache")
	}
	return SuccessResponse(c, fiber.StatusOK, "", dto.LikesData{Likes: count})
}
