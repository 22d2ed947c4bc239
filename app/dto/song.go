package dto

// SongRequest is the payload for creating or replacing a song
type SongRequest struct {
	Title     string  `json:"title" validate:"required,min=1,max=255"`
	Year      int     `json:"year" validate:"required,min=1900,max=2100"`
	Genre     string  `json:"genre" validate:"required,min=1,max=100"`
	Performer string  `json:"performer" validate:"required,min=1,max=255"`
	Duration  *int    `json:"duration,omitempty" validate:"omitempty,min=1"`
	AlbumID   *string `json:"albumId,omitempty" validate:"omitempty,min=1"`
}

// SongIDData wraps a newly created song identifier
type SongIDData struct {
	SongID string `json:"songId"`
}

// SongDetail is the full song shape
type SongDetail struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

// SongData wraps a song detail for the envelope
type SongData struct {
	Song SongDetail `json:"song"`
}

// SongsData wraps a song listing for the envelope
type SongsData struct {
	Songs []SongListItem `json:"songs"`
}

// SongListFilter carries the optional query parameters of the song listing
type SongListFilter struct {
	Title     string
	Performer string
}
