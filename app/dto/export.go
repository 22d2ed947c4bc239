package dto

// ExportRequest is the payload for requesting a playlist export
type ExportRequest struct {
	TargetEmail string `json:"targetEmail" validate:"required,email"`
}

// ExportMessage is the queue payload consumed by the export worker
type ExportMessage struct {
	PlaylistID  string `json:"playlistId"`
	TargetEmail string `json:"targetEmail"`
}

// ExportedPlaylist is the JSON document attached to the export email
type ExportedPlaylist struct {
	Playlist ExportedPlaylistBody `json:"playlist"`
}

// ExportedPlaylistBody holds the playlist snapshot inside an export document
type ExportedPlaylistBody struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Songs []SongListItem `json:"songs"`
}
