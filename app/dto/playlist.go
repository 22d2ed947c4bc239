package dto

// PlaylistRequest is the payload for creating a playlist
type PlaylistRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// PlaylistIDData wraps a newly created playlist identifier
type PlaylistIDData struct {
	PlaylistID string `json:"playlistId"`
}

// PlaylistListItem is the playlist shape used in listings
type PlaylistListItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// PlaylistsData wraps a playlist listing for the envelope
type PlaylistsData struct {
	Playlists []PlaylistListItem `json:"playlists"`
}

// PlaylistSongRequest carries the song identifier for membership changes
type PlaylistSongRequest struct {
	SongID string `json:"songId" validate:"required,min=1"`
}

// PlaylistWithSongs is a playlist detail including its songs
type PlaylistWithSongs struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Username string         `json:"username"`
	Songs    []SongListItem `json:"songs"`
}

// PlaylistSongsData wraps a playlist detail for the envelope
type PlaylistSongsData struct {
	Playlist PlaylistWithSongs `json:"playlist"`
}

// ActivityItem is one entry of a playlist activity log
type ActivityItem struct {
	Username string `json:"username"`
	Title    string `json:"title"`
	Action   string `json:"action"`
	Time     string `json:"time"`
}

// ActivitiesData wraps a playlist activity log for the envelope
type ActivitiesData struct {
	PlaylistID string         `json:"playlistId"`
	Activities []ActivityItem `json:"activities"`
}
