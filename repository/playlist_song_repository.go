// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/openmusic/api/models"
	"gorm.io/gorm"
)

// PlaylistSongRepositoryImpl implements PlaylistSongRepository interface
type PlaylistSongRepositoryImpl struct {
	*BaseRepository[models.PlaylistSong, models.PlaylistSongFilter]
}

// NewPlaylistSongRepository creates a new playlist membership repository
func NewPlaylistSongRepository(db *gorm.DB) PlaylistSongRepository {
	return &PlaylistSongRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PlaylistSong, models.PlaylistSongFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *PlaylistSongRepositoryImpl) applyFilter(query *gorm.DB, filter models.PlaylistSongFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PlaylistID != nil {
		query = query.Where("playlist_id = ?", *filter.PlaylistID)
	}
	if filter.SongID != nil {
		query = query.Where("song_id = ?", *filter.SongID)
	}
	return query
}

// ByFilter retrieves membership rows based on filter criteria
func (r *PlaylistSongRepositoryImpl) ByFilter(ctx context.Context, filter models.PlaylistSongFilter, orderBy string, limit, offset int) ([]*models.PlaylistSong, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PlaylistSong{}), filter)

	if orderBy == "" {
		orderBy = "created_at ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.PlaylistSong
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of membership rows matching the filter
func (r *PlaylistSongRepositoryImpl) Count(ctx context.Context, filter models.PlaylistSongFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PlaylistSong{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any membership row matching the filter exists
func (r *PlaylistSongRepositoryImpl) Exists(ctx context.Context, filter models.PlaylistSongFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByPair removes the membership row for a (playlist, song) pair; returns rows matched
func (r *PlaylistSongRepositoryImpl) DeleteByPair(ctx context.Context, playlistID, songID string) (int64, error) {
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

	result := db.Where("playlist_id = ? AND song_id = ?", playlistID, songID).
		Delete(&models.PlaylistSong{})
	if result.Error != nil {
		err = result.Error
		return 0, err
	}
	return result.RowsAffected, nil
}

// ExistsByPair checks whether a (playlist, song) membership exists
func (r *PlaylistSongRepositoryImpl) ExistsByPair(ctx context.Context, playlistID, songID string) (bool, error) {
	return r.Exists(ctx, models.PlaylistSongFilter{
		PlaylistID: &playlistID,
		SongID:     &songID,
	})
}
