// Package businessflow contains the core business logic and use cases for albums
package businessflow

import (
	"context"
	"log"

	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/app/services"
	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
	"github.com/openmusic/api/utils"
	"gorm.io/gorm"
)

// AlbumFlow defines operations for album management
type AlbumFlow interface {
	CreateAlbum(ctx context.Context, req *dto.AlbumRequest, metadata *ClientMetadata) (*dto.AlbumIDData, error)
	GetAlbum(ctx context.Context, albumID string, metadata *ClientMetadata) (*dto.AlbumDetail, error)
	UpdateAlbum(ctx context.Context, albumID string, req *dto.AlbumRequest, metadata *ClientMetadata) error
	DeleteAlbum(ctx context.Context, albumID string, metadata *ClientMetadata) error
}

// AlbumFlowImpl implements AlbumFlow
type AlbumFlowImpl struct {
	albumRepo repository.AlbumRepository
	songRepo  repository.SongRepository
	cache     services.CacheService
	db        *gorm.DB
}

// NewAlbumFlow constructs an AlbumFlow
func NewAlbumFlow(
	albumRepo repository.AlbumRepository,
	songRepo repository.SongRepository,
	cache services.CacheService,
	db *gorm.DB,
) AlbumFlow {
	return &AlbumFlowImpl{
		albumRepo: albumRepo,
		songRepo:  songRepo,
		cache:     cache,
		db:        db,
	}
}

// CreateAlbum inserts a new album and returns its generated identifier
func (a *AlbumFlowImpl) CreateAlbum(ctx context.Context, req *dto.AlbumRequest, metadata *ClientMetadata) (*dto.AlbumIDData, error) {
	album := &models.Album{
		ID:        utils.NewID("album"),
		Name:      req.Name,
		Year:      req.Year,
		CreatedAt: utils.UTCNow(),
		UpdatedAt: utils.UTCNow(),
	}

	if err := a.albumRepo.Save(ctx, album); err != nil {
		return nil, NewBusinessError("CREATE_ALBUM_FAILED", "Failed to create album", err)
	}

	return &dto.AlbumIDData{AlbumID: album.ID}, nil
}

// GetAlbum returns the album together with its songs
func (a *AlbumFlowImpl) GetAlbum(ctx context.Context, albumID string, metadata *ClientMetadata) (*dto.AlbumDetail, error) {
	album, err := getAlbum(ctx, a.albumRepo, albumID)
	if err != nil {
		return nil, err
	}

	songs, err := a.songRepo.ByFilter(ctx, models.SongFilter{AlbumID: &albumID}, "created_at ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("GET_ALBUM_FAILED", "Failed to load album songs", err)
	}

	return &dto.AlbumDetail{
		ID:       album.ID,
		Name:     album.Name,
		Year:     album.Year,
		CoverURL: album.CoverURL,
		Songs:    ToSongListItems(songs),
	}, nil
}

// UpdateAlbum rewrites name and year of an existing album
func (a *AlbumFlowImpl) UpdateAlbum(ctx context.Context, albumID string, req *dto.AlbumRequest, metadata *ClientMetadata) error {
	rows, err := a.albumRepo.Update(ctx, albumID, req.Name, req.Year)
	if err != nil {
		return NewBusinessError("UPDATE_ALBUM_FAILED", "Failed to update album", err)
	}
	if rows == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// DeleteAlbum removes an album. The likes counter cache for the album is
// invalidated best-effort; a stale entry expires on its own TTL.
func (a *AlbumFlowImpl) DeleteAlbum(ctx context.Context, albumID string, metadata *ClientMetadata) error {
	rows, err := a.albumRepo.Delete(ctx, albumID)
	if err != nil {
		return NewBusinessError("DELETE_ALBUM_FAILED", "Failed to delete album", err)
	}
	if rows == 0 {
		return ErrAlbumNotFound
	}

	if err := a.cache.Delete(ctx, likesCacheKey(albumID)); err != nil {
		log.Printf("failed to invalidate likes cache for album %s: %v", albumID, err)
	}
	return nil
}
