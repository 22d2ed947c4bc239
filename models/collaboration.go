package models

import "time"

// Collaboration grants a non-owner user read/write access to a playlist
// Table: collaborations
// Unique per (playlist_id, user_id) pair
type Collaboration struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	PlaylistID string    `gorm:"size:64;not null;uniqueIndex:uk_collaborations_pair;index:idx_collaborations_playlist_id" json:"playlistId"`
	UserID     string    `gorm:"size:64;not null;uniqueIndex:uk_collaborations_pair" json:"userId"`
	Playlist   *Playlist `gorm:"foreignKey:PlaylistID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	User       *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (Collaboration) TableName() string { return "collaborations" }

// CollaborationFilter represents filter criteria for collaboration queries
type CollaborationFilter struct {
	ID         *string
	PlaylistID *string
	UserID     *string
}
