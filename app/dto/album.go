package dto

// AlbumRequest is the payload for creating or replacing an album
type AlbumRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Year int    `json:"year" validate:"required,min=1900,max=2100"`
}

// AlbumIDData wraps a newly created album identifier
type AlbumIDData struct {
	AlbumID string `json:"albumId"`
}

// SongListItem is the compact song shape used in listings and album details
type SongListItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// AlbumDetail is the full album shape including its songs
type AlbumDetail struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Year     int            `json:"year"`
	CoverURL *string        `json:"coverUrl"`
	Songs    []SongListItem `json:"songs"`
}

// AlbumData wraps an album detail for the envelope
type AlbumData struct {
	Album AlbumDetail `json:"album"`
}

// LikesData wraps a like count
type LikesData struct {
	Likes int64 `json:"likes"`
}
