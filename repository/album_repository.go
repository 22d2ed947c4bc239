// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/openmusic/api/models"
	"github.com/openmusic/api/utils"
	"gorm.io/gorm"
)

// AlbumRepositoryImpl implements AlbumRepository interface
type AlbumRepositoryImpl struct {
	*BaseRepository[models.Album, models.AlbumFilter]
}

// NewAlbumRepository creates a new album repository
func NewAlbumRepository(db *gorm.DB) AlbumRepository {
	return &AlbumRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Album, models.AlbumFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *AlbumRepositoryImpl) applyFilter(query *gorm.DB, filter models.AlbumFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}
	return query
}

// ByFilter retrieves albums based on filter criteria
func (r *AlbumRepositoryImpl) ByFilter(ctx context.Context, filter models.AlbumFilter, orderBy string, limit, offset int) ([]*models.Album, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Album{}), filter)

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

	var albums []*models.Album
	if err := query.Find(&albums).Error; err != nil {
		return nil, err
	}
	return albums, nil
}

// Count returns the number of albums matching the filter
func (r *AlbumRepositoryImpl) Count(ctx context.Context, filter models.AlbumFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Album{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any album matching the filter exists
func (r *AlbumRepositoryImpl) Exists(ctx context.Context, filter models.AlbumFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update rewrites the album's name and year; returns rows matched
func (r *AlbumRepositoryImpl) Update(ctx context.Context, id, name string, year int) (int64, error) {
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

	result := db.Model(&models.Album{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       name,
			"year":       year,
			"updated_at": utils.UTCNow(),
		})
	if result.Error != nil {
		err = result.Error
		return 0, err
	}
	return result.RowsAffected, nil
}

// Delete removes an album by ID; returns rows matched
func (r *AlbumRepositoryImpl) Delete(ctx context.Context, id string) (int64, error) {
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

	result := db.Where("id = ?", id).Delete(&models.Album{})
	if result.Error != nil {
		err = result.Error
		return 0, err
	}
	return result.RowsAffected, nil
}

// SetCoverURL writes the album's cover URL; returns rows matched
func (r *AlbumRepositoryImpl) SetCoverURL(ctx context.Context, id, coverURL string) (int64, error) {
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

	result := db.Model(&models.Album{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"cover_url":  coverURL,
			"updated_at": utils.UTCNow(),
		})
	if result.Error != nil {
		err = result.Error
		return 0, err
	}
	return result.RowsAffected, nil
}
