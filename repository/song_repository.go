// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"

	"github.com/openmusic/api/models"
	"github.com/openmusic/api/utils"
	"gorm.io/gorm"
)

// SongRepositoryImpl implements SongRepository interface
type SongRepositoryImpl struct {
	*BaseRepository[models.Song, models.SongFilter]
}

// NewSongRepository creates a new song repository
func NewSongRepository(db *gorm.DB) SongRepository {
	return &SongRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Song, models.SongFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query.
// Title and Performer filter on case-insensitive substrings.
func (r *SongRepositoryImpl) applyFilter(query *gorm.DB, filter models.SongFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Title != nil {
		query = query.Where("title ILIKE ?", "%"+*filter.Title+"%")
	}
	if filter.Performer != nil {
		query = query.Where("performer ILIKE ?", "%"+*filter.Performer+"%")
	}
	if filter.AlbumID != nil {
		query = query.Where("album_id = ?", *filter.AlbumID)
	}
	return query
}

// ByFilter retrieves songs based on filter criteria
func (r *SongRepositoryImpl) ByFilter(ctx context.Context, filter models.SongFilter, orderBy string, limit, offset int) ([]*models.Song, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Song{}), filter)

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var songs []*models.Song
	if err := query.Find(&songs).Error; err != nil {
		return nil, err
	}
	return songs, nil
}

// Count returns the number of songs matching the filter
func (r *SongRepositoryImpl) Count(ctx context.Context, filter models.SongFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Song{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any song matching the filter exists
func (r *SongRepositoryImpl) Exists(ctx context.Context, filter models.SongFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update rewrites the song's mutable fields; returns rows matched
func (r *SongRepositoryImpl) Update(ctx context.Context, song *models.Song) (int64, error) {
	if song == nil || song.ID == "" {
		return 0, errors.New("song payload is nil or missing ID")
	}

	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return 0, err
	}
	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	updates := map[string]any{
		"title":      song.Title,
		"year":       song.Year,
		"genre":      song.Genre,
		"performer":  song.Performer,
		"updated_at": utils.UTCNow(),
	}
	if song.Duration != nil {
		updates["duration"] = *song.Duration
	}
	if song.AlbumID != nil {
		updates["album_id"] = *song.AlbumID
	}

	result := db.Model(&models.Song{}).
		Where("id = ?", song.ID).
		Updates(updates)
	if result.Error != nil {
		err = result.Error
		return 0, err
	}
	return result.RowsAffected, nil
}

// Delete removes a song by ID; returns rows matched
func (r *SongRepositoryImpl) Delete(ctx context.Context, id string) (int64, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return 0, err
	}
	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	result := db.Where("id = ?", id).Delete(&models.Song{})
	if result.Error != nil {
		err = result.Error
		return 0, err
	}
	return result.RowsAffected, nil
}

// ByPlaylistID returns the songs belonging to a playlist through its
// membership rows, ordered by when they were added
func (r *SongRepositoryImpl) ByPlaylistID(ctx context.Context, playlistID string) ([]*models.Song, error) {
	db := r.getDB(ctx)

	var songs []*models.Song
	err := db.Model(&models.Song{}).
		Joins("JOIN playlist_songs ON playlist_songs.song_id = songs.id").
		Where("playlist_songs.playlist_id = ?", playlistID).
		Order("playlist_songs.created_at ASC").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	return songs, nil
}
