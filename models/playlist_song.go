package models

import "time"

// PlaylistSong is a playlist membership row. The unique index on the
// (playlist_id, song_id) pair makes a duplicate insert a store conflict
// rather than a silent no-op; there is intentionally no transaction
// around the caller's check-then-insert sequence.
// Table: playlist_songs
type PlaylistSong struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	PlaylistID string    `gorm:"size:64;not null;uniqueIndex:uk_playlist_songs_pair;index:idx_playlist_songs_playlist_id" json:"playlistId"`
	SongID     string    `gorm:"size:64;not null;uniqueIndex:uk_playlist_songs_pair" json:"songId"`
	Playlist   *Playlist `gorm:"foreignKey:PlaylistID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Song       *Song     `gorm:"foreignKey:SongID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (PlaylistSong) TableName() string { return "playlist_songs" }

// PlaylistSongFilter represents filter criteria for membership queries
type PlaylistSongFilter struct {
	ID         *string
	PlaylistID *string
	SongID     *string
}
