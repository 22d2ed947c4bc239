// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/openmusic/api/models"
	"gorm.io/gorm"
)

// PlaylistRepositoryImpl implements PlaylistRepository interface
type PlaylistRepositoryImpl struct {
	*BaseRepository[models.Playlist, models.PlaylistFilter]
}

// NewPlaylistRepository creates a new playlist repository
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &PlaylistRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Playlist, models.PlaylistFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *PlaylistRepositoryImpl) applyFilter(query *gorm.DB, filter models.PlaylistFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	return query
}

// ByFilter retrieves playlists based on filter criteria
func (r *PlaylistRepositoryImpl) ByFilter(ctx context.Context, filter models.PlaylistFilter, orderBy string, limit, offset int) ([]*models.Playlist, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Playlist{}), filter)

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

	var playlists []*models.Playlist
	if err := query.Find(&playlists).Error; err != nil {
		return nil, err
	}
	return playlists, nil
}

// Count returns the number of playlists matching the filter
func (r *PlaylistRepositoryImpl) Count(ctx context.Context, filter models.PlaylistFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Playlist{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any playlist matching the filter exists
func (r *PlaylistRepositoryImpl) Exists(ctx context.Context, filter models.PlaylistFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a playlist by ID; returns rows matched
func (r *PlaylistRepositoryImpl) Delete(ctx context.Context, id string) (int64, error) {
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

	result := db.Where("id = ?", id).Delete(&models.Playlist{})
	if result.Error != nil {
		err = result.Error
		return 0, err
	}
	return result.RowsAffected, nil
}

// ListForUser returns playlists the user owns or collaborates on, with
// the owner's username, deduplicated across the two access paths
func (r *PlaylistRepositoryImpl) ListForUser(ctx context.Context, userID string) ([]models.PlaylistSummary, error) {
	db := r.getDB(ctx)

	var summaries []models.PlaylistSummary
	err := db.Model(&models.Playlist{}).
		Select("DISTINCT playlists.id, playlists.name, users.username").
		Joins("LEFT JOIN users ON playlists.owner_id = users.id").
		Joins("LEFT JOIN collaborations ON collaborations.playlist_id = playlists.id").
		Where("playlists.owner_id = ? OR collaborations.user_id = ?", userID, userID).
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
