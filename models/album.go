// Package models contains domain entities and business models for the music catalog
package models

import "time"

// Album represents a music album
// Table: albums
// IDs are opaque strings with an "album-" prefix
type Album struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Year      int       `gorm:"not null" json:"year"`
	CoverURL  *string   `gorm:"size:512" json:"coverUrl"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Album) TableName() string { return "albums" }

// AlbumFilter represents filter criteria for album queries
type AlbumFilter struct {
	ID   *string
	Name *string
	Year *int
}
