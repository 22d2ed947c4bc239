// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/openmusic/api/models"
	"gorm.io/gorm"
)

// PlaylistActivityRepositoryImpl implements PlaylistActivityRepository interface
type PlaylistActivityRepositoryImpl struct {
	db *gorm.DB
}

// NewPlaylistActivityRepository creates a new activity log repository
func NewPlaylistActivityRepository(db *gorm.DB) PlaylistActivityRepository {
	return &PlaylistActivityRepositoryImpl{db: db}
}

func (r *PlaylistActivityRepositoryImpl) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db
}

// Append writes a new activity entry. The log is append-only.
func (r *PlaylistActivityRepositoryImpl) Append(ctx context.Context, activity *models.PlaylistActivity) error {
	db := r.getDB(ctx)
	if err := db.Create(activity).Error; err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}

// ByPlaylistID returns activity entries joined with usernames and song
// titles, oldest first
func (r *PlaylistActivityRepositoryImpl) ByPlaylistID(ctx context.Context, playlistID string) ([]models.ActivityEntry, error) {
	db := r.getDB(ctx)

	var entries []models.ActivityEntry
	err := db.Model(&models.PlaylistActivity{}).
		Select("users.username, songs.title, playlist_song_activities.action, playlist_song_activities.time").
		Joins("LEFT JOIN users ON playlist_song_activities.user_id = users.id").
		Joins("LEFT JOIN songs ON playlist_song_activities.song_id = songs.id").
		Where("playlist_song_activities.playlist_id = ?", playlistID).
		Order("playlist_song_activities.time ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of activity entries matching the filter
func (r *PlaylistActivityRepositoryImpl) Count(ctx context.Context, filter models.PlaylistActivityFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.PlaylistActivity{})

	if filter.PlaylistID != nil {
		query = query.Where("playlist_id = ?", *filter.PlaylistID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
