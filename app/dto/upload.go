package dto

// CoverUploadData wraps the public URL of an uploaded album cover
type CoverUploadData struct {
	CoverURL string `json:"coverUrl"`
}
