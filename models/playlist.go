package models

import "time"

// Playlist represents a user-owned song collection
// Table: playlists
// Exactly one owner per playlist; owner must reference an existing user
type Playlist struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	OwnerID   string    `gorm:"size:64;not null;index:idx_playlists_owner_id" json:"owner"`
	Owner     *User     `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Playlist) TableName() string { return "playlists" }

// PlaylistSummary is a playlist row joined with its owner's username,
// the shape returned by playlist listings.
type PlaylistSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// PlaylistFilter represents filter criteria for playlist queries
type PlaylistFilter struct {
	ID      *string
	Name    *string
	OwnerID *string
}
