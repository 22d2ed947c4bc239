// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/openmusic/api/models"
	"gorm.io/gorm"
)

// CollaborationRepositoryImpl implements CollaborationRepository interface
type CollaborationRepositoryImpl struct {
	*BaseRepository[models.Collaboration, models.CollaborationFilter]
}

// NewCollaborationRepository creates a new collaboration repository
func NewCollaborationRepository(db *gorm.DB) CollaborationRepository {
	return &CollaborationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Collaboration, models.CollaborationFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *CollaborationRepositoryImpl) applyFilter(query *gorm.DB, filter models.CollaborationFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PlaylistID != nil {
		query = query.Where("playlist_id = ?", *filter.PlaylistID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	return query
}

// ByFilter retrieves collaborations based on filter criteria
func (r *CollaborationRepositoryImpl) ByFilter(ctx context.Context, filter models.CollaborationFilter, orderBy string, limit, offset int) ([]*models.Collaboration, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Collaboration{}), filter)

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

	var collaborations []*models.Collaboration
	if err := query.Find(&collaborations).Error; err != nil {
		return nil, err
	}
	return collaborations, nil
}

// Count returns the number of collaborations matching the filter
func (r *CollaborationRepositoryImpl) Count(ctx context.Context, filter models.CollaborationFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Collaboration{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any collaboration matching the filter exists
func (r *CollaborationRepositoryImpl) Exists(ctx context.Context, filter models.CollaborationFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByPair removes the grant for a (playlist, user) pair; returns rows matched
func (r *CollaborationRepositoryImpl) DeleteByPair(ctx context.Context, playlistID, userID string) (int64, error) {
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

	result := db.Where("playlist_id = ? AND user_id = ?", playlistID, userID).
		Delete(&models.Collaboration{})
	if result.Error != nil {
		err = result.Error
		return 0, err
	}
	return result.RowsAffected, nil
}

// ExistsByPair checks whether a (playlist, user) grant exists
func (r *CollaborationRepositoryImpl) ExistsByPair(ctx context.Context, playlistID, userID string) (bool, error) {
	return r.Exists(ctx, models.CollaborationFilter{
		PlaylistID: &playlistID,
		UserID:     &userID,
	})
}
