// Package businessflow contains the core business logic and use cases for songs
package businessflow

import (
	"context"

	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
	"github.com/openmusic/api/utils"
	"gorm.io/gorm"
)

// SongFlow defines operations for song management
type SongFlow interface {
	CreateSong(ctx context.Context, req *dto.SongRequest, metadata *ClientMetadata) (*dto.SongIDData, error)
	ListSongs(ctx context.Context, filter dto.SongListFilter, metadata *ClientMetadata) ([]dto.SongListItem, error)
	GetSong(ctx context.Context, songID string, metadata *ClientMetadata) (*dto.SongDetail, error)
	UpdateSong(ctx context.Context, songID string, req *dto.SongRequest, metadata *ClientMetadata) error
	DeleteSong(ctx context.Context, songID string, metadata *ClientMetadata) error
}

// SongFlowImpl implements SongFlow
type SongFlowImpl struct {
	songRepo  repository.SongRepository
	albumRepo repository.AlbumRepository
	db        *gorm.DB
}

// NewSongFlow constructs a SongFlow
func NewSongFlow(songRepo repository.SongRepository, albumRepo repository.AlbumRepository, db *gorm.DB) SongFlow {
	return &SongFlowImpl{
		songRepo:  songRepo,
		albumRepo: albumRepo,
		db:        db,
	}
}

// CreateSong inserts a new song. When an album is referenced it must exist.
func (s *SongFlowImpl) CreateSong(ctx context.Context, req *dto.SongRequest, metadata *ClientMetadata) (*dto.SongIDData, error) {
	if req.AlbumID != nil {
		if _, err := getAlbum(ctx, s.albumRepo, *req.AlbumID); err != nil {
			return nil, err
		}
	}

	song := &models.Song{
		ID:        utils.NewID("song"),
		Title:     req.Title,
		Year:      req.Year,
		Genre:     req.Genre,
		Performer: req.Performer,
		Duration:  req.Duration,
		AlbumID:   req.AlbumID,
		CreatedAt: utils.UTCNow(),
		UpdatedAt: utils.UTCNow(),
	}

	if err := s.songRepo.Save(ctx, song); err != nil {
		return nil, NewBusinessError("CREATE_SONG_FAILED", "Failed to create song", err)
	}

	return &dto.SongIDData{SongID: song.ID}, nil
}

// ListSongs returns compact song rows, optionally narrowed by title and
// performer substrings combined with AND
func (s *SongFlowImpl) ListSongs(ctx context.Context, filter dto.SongListFilter, metadata *ClientMetadata) ([]dto.SongListItem, error) {
	modelFilter := models.SongFilter{}
	if filter.Title != "" {
		modelFilter.Title = &filter.Title
	}
	if filter.Performer != "" {
		modelFilter.Performer = &filter.Performer
	}

	songs, err := s.songRepo.ByFilter(ctx, modelFilter, "created_at ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("LIST_SONGS_FAILED", "Failed to list songs", err)
	}

	return ToSongListItems(songs), nil
}

// GetSong returns the full song shape
func (s *SongFlowImpl) GetSong(ctx context.Context, songID string, metadata *ClientMetadata) (*dto.SongDetail, error) {
	song, err := getSong(ctx, s.songRepo, songID)
	if err != nil {
		return nil, err
	}

	detail := ToSongDetail(song)
	return &detail, nil
}

// UpdateSong replaces every mutable field of an existing song
func (s *SongFlowImpl) UpdateSong(ctx context.Context, songID string, req *dto.SongRequest, metadata *ClientMetadata) error {
	if req.AlbumID != nil {
		if _, err := getAlbum(ctx, s.albumRepo, *req.AlbumID); err != nil {
			return err
		}
	}

	song := &models.Song{
		ID:        songID,
		Title:     req.Title,
		Year:      req.Year,
		Genre:     req.Genre,
		Performer: req.Performer,
		Duration:  req.Duration,
		AlbumID:   req.AlbumID,
	}

	rows, err := s.songRepo.Update(ctx, song)
	if err != nil {
		return NewBusinessError("UPDATE_SONG_FAILED", "Failed to update song", err)
	}
	if rows == 0 {
		return ErrSongNotFound
	}
	return nil
}

// DeleteSong removes a song
func (s *SongFlowImpl) DeleteSong(ctx context.Context, songID string, metadata *ClientMetadata) error {
	rows, err := s.songRepo.Delete(ctx, songID)
	if err != nil {
		return NewBusinessError("DELETE_SONG_FAILED", "Failed to delete song", err)
	}
	if rows == 0 {
		return ErrSongNotFound
	}
	return nil
}
