// Package businessflow contains the core business logic and use cases for album likes
package businessflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/openmusic/api/app/services"
	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
	"github.com/openmusic/api/utils"
	"gorm.io/gorm"
)

// likesCacheKey is the cache key of the like counter for an album
func likesCacheKey(albumID string) string {
	return fmt.Sprintf("likes:%s", albumID)
}

// LikeFlow defines operations for album likes and the cached counter
type LikeFlow interface {
	AddLike(ctx context.Context, userID, albumID string, metadata *ClientMetadata) error
	DeleteLike(ctx context.Context, userID, albumID string, metadata *ClientMetadata) error
	// GetLikesCount returns the like count and whether it was served
	// from the cache.
	GetLikesCount(ctx context.Context, albumID string, metadata *ClientMetadata) (int64, bool, error)
}

// LikeFlowImpl implements LikeFlow
type LikeFlowImpl struct {
	likeRepo  repository.UserAlbumLikeRepository
	albumRepo repository.AlbumRepository
	cache     services.CacheService
	cacheTTL  time.Duration
	db        *gorm.DB
}

// NewLikeFlow constructs a LikeFlow caching counters for cacheTTL
func NewLikeFlow(
	likeRepo repository.UserAlbumLikeRepository,
	albumRepo repository.AlbumRepository,
	cache services.CacheService,
	cacheTTL time.Duration,
	db *gorm.DB,
) LikeFlow {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Minute
	}
	return &LikeFlowImpl{
		likeRepo:  likeRepo,
		albumRepo: albumRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		db:        db,
	}
}

// AddLike records that a user likes an album, at most once per pair.
// The existence check and the insert are separate statements; concurrent
// duplicate attempts are caught by the unique index instead.
func (l *LikeFlowImpl) AddLike(ctx context.Context, userID, albumID string, metadata *ClientMetadata) error {
	if _, err := getAlbum(ctx, l.albumRepo, albumID); err != nil {
		return err
	}

	liked, err := l.likeRepo.ExistsByPair(ctx, userID, albumID)
	if err != nil {
		return NewBusinessError("ADD_LIKE_FAILED", "Failed to check existing like", err)
	}
	if liked {
		return ErrAlreadyLiked
	}

	like := &models.UserAlbumLike{
		ID:        utils.NewID("like"),
		UserID:    userID,
		AlbumID:   albumID,
		CreatedAt: utils.UTCNow(),
	}
	if err := l.likeRepo.Save(ctx, like); err != nil {
		if repository.IsDuplicateKeyError(err) {
			return ErrAlreadyLiked
		}
		return NewBusinessError("ADD_LIKE_FAILED", "Failed to add like", err)
	}

	l.invalidate(ctx, albumID)
	return nil
}

// DeleteLike removes a user's like from an album
func (l *LikeFlowImpl) DeleteLike(ctx context.Context, userID, albumID string, metadata *ClientMetadata) error {
	rows, err := l.likeRepo.DeleteByPair(ctx, userID, albumID)
	if err != nil {
		return NewBusinessError("DELETE_LIKE_FAILED", "Failed to delete like", err)
	}
	if rows == 0 {
		return ErrLikeNotFound
	}

	l.invalidate(ctx, albumID)
	return nil
}

// GetLikesCount serves the like counter cache-first. On a miss the count
// is read from the database and cached with the configured TTL. Cache
// failures degrade to the database instead of failing the request.
func (l *LikeFlowImpl) GetLikesCount(ctx context.Context, albumID string, metadata *ClientMetadata) (int64, bool, error) {
	var cached int64
	err := l.cache.Get(ctx, likesCacheKey(albumID), &cached)
	if err == nil {
		return cached, true, nil
	}
	if !errors.Is(err, services.ErrCacheMiss) {
		log.Printf("likes cache read failed for album %s: %v", albumID, err)
	}

	count, err := l.likeRepo.CountByAlbum(ctx, albumID)
	if err != nil {
		return 0, false, NewBusinessError("GET_LIKES_FAILED", "Failed to count likes", err)
	}

	if err := l.cache.Set(ctx, likesCacheKey(albumID), count, l.cacheTTL); err != nil {
		log.Printf("likes cache write failed for album %s: %v", albumID, err)
	}
	return count, false, nil
}

// invalidate drops the cached counter so the next read recomputes it
func (l *LikeFlowImpl) invalidate(ctx context.Context, albumID string) {
	if err := l.cache.Delete(ctx, likesCacheKey(albumID)); err != nil {
		log.Printf("failed to invalidate likes cache for album %s: %v", albumID, err)
	}
}
