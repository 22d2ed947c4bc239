package dto

// CollaborationRequest identifies the playlist/user pair of a grant
type CollaborationRequest struct {
	PlaylistID string `json:"playlistId" validate:"required,min=1"`
	UserID     string `json:"userId" validate:"required,min=1"`
}

// CollaborationIDData wraps a newly created grant identifier
type CollaborationIDData struct {
	CollaborationID string `json:"collaborationId"`
}
