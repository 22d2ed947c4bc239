// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/openmusic/api/models"
	"gorm.io/gorm"
)

// AuthenticationRepositoryImpl implements AuthenticationRepository interface
type AuthenticationRepositoryImpl struct {
	db *gorm.DB
}

// NewAuthenticationRepository creates a new refresh token repository
func NewAuthenticationRepository(db *gorm.DB) AuthenticationRepository {
	return &AuthenticationRepositoryImpl{db: db}
}

func (r *AuthenticationRepositoryImpl) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db
}

// Save persists an issued refresh token
func (r *AuthenticationRepositoryImpl) Save(ctx context.Context, auth *models.Authentication) error {
	db := r.getDB(ctx)
	if err := db.Create(auth).Error; err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// TokenExists checks whether a refresh token is still registered
func (r *AuthenticationRepositoryImpl) TokenExists(ctx context.Context, token string) (bool, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.Authentication{}).
		Where("token = ?", token).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete revokes a refresh token; returns rows matched
func (r *AuthenticationRepositoryImpl) Delete(ctx context.Context, token string) (int64, error) {
	db := r.getDB(ctx)

	result := db.Where("token = ?", token).Delete(&models.Authentication{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
