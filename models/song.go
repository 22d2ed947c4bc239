package models

import "time"

// Song represents a single track, optionally attached to an album
// Table: songs
type Song struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Year      int       `gorm:"not null" json:"year"`
	Genre     string    `gorm:"size:100;not null" json:"genre"`
	Performer string    `gorm:"size:255;not null;index:idx_songs_performer" json:"performer"`
	Duration  *int      `json:"duration,omitempty"`
	AlbumID   *string   `gorm:"size:64;index:idx_songs_album_id" json:"albumId,omitempty"`
	Album     *Album    `gorm:"foreignKey:AlbumID;references:ID" json:"-"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Song) TableName() string { return "songs" }

// SongFilter represents filter criteria for song queries.
// Title and Performer match case-insensitively on substrings.
type SongFilter struct {
	ID        *string
	Title     *string
	Performer *string
	AlbumID   *string
}
