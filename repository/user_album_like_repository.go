// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/openmusic/api/models"
	"gorm.io/gorm"
)

// UserAlbumLikeRepositoryImpl implements UserAlbumLikeRepository interface
type UserAlbumLikeRepositoryImpl struct {
	*BaseRepository[models.UserAlbumLike, models.UserAlbumLikeFilter]
}

// NewUserAlbumLikeRepository creates a new like repository
func NewUserAlbumLikeRepository(db *gorm.DB) UserAlbumLikeRepository {
	return &UserAlbumLikeRepositoryImpl{
		BaseRepository: NewBaseRepository[models.UserAlbumLike, models.UserAlbumLikeFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *UserAlbumLikeRepositoryImpl) applyFilter(query *gorm.DB, filter models.UserAlbumLikeFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.AlbumID != nil {
		query = query.Where("album_id = ?", *filter.AlbumID)
	}
	return query
}

// ByFilter retrieves likes based on filter criteria
func (r *UserAlbumLikeRepositoryImpl) ByFilter(ctx context.Context, filter models.UserAlbumLikeFilter, orderBy string, limit, offset int) ([]*models.UserAlbumLike, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.UserAlbumLike{}), filter)

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

	var likes []*models.UserAlbumLike
	if err := query.Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// Count returns the number of likes matching the filter
func (r *UserAlbumLikeRepositoryImpl) Count(ctx context.Context, filter models.UserAlbumLikeFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.UserAlbumLike{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any like matching the filter exists
func (r *UserAlbumLikeRepositoryImpl) Exists(ctx context.Context, filter models.UserAlbumLikeFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByPair removes the like for a (user, album) pair; returns rows matched
func (r *UserAlbumLikeRepositoryImpl) DeleteByPair(ctx context.Context, userID, albumID string) (int64, error) {
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

	result := db.Where("user_id = ? AND album_id = ?", userID, albumID).
		Delete(&models.UserAlbumLike{})
	if result.Error != nil {
		err = result.Error
		return 0, err
	}
	return result.RowsAffected, nil
}

// ExistsByPair checks whether a (user, album) like exists
func (r *UserAlbumLikeRepositoryImpl) ExistsByPair(ctx context.Context, userID, albumID string) (bool, error) {
	return r.Exists(ctx, models.UserAlbumLikeFilter{
		UserID:  &userID,
		AlbumID: &albumID,
	})
}

// CountByAlbum returns the number of likes for an album
func (r *UserAlbumLikeRepositoryImpl) CountByAlbum(ctx context.Context, albumID string) (int64, error) {
	return r.Count(ctx, models.UserAlbumLikeFilter{AlbumID: &albumID})
}
