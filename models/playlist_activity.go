package models

import "time"

// Activity action constants
const (
	ActivityActionAdd    = "add"
	ActivityActionDelete = "delete"
)

// PlaylistActivity is an append-only log entry recorded for every song
// added to or removed from a playlist. Rows are never updated or deleted.
// Table: playlist_song_activities
type PlaylistActivity struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID string    `gorm:"size:64;not null;index:idx_playlist_activities_playlist_id" json:"playlistId"`
	SongID     string    `gorm:"size:64;not null" json:"songId"`
	UserID     string    `gorm:"size:64;not null" json:"userId"`
	Action     string    `gorm:"size:10;not null" json:"action"`
	Time       time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_playlist_activities_time" json:"time"`
}

func (PlaylistActivity) TableName() string { return "playlist_song_activities" }

// PlaylistActivityFilter represents filter criteria for activity queries
type PlaylistActivityFilter struct {
	PlaylistID *string
	UserID     *string
	Action     *string
}

// ActivityEntry is an activity row joined with the acting user's name and
// the song title, the shape returned to clients.
type ActivityEntry struct {
	Username string    `json:"username"`
	Title    string    `json:"title"`
	Action   string    `json:"action"`
	Time     time.Time `json:"time"`
}
