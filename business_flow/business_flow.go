// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"
	"time"

	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for logging and tracing
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToSongListItem converts a song model to its compact listing shape
func ToSongListItem(song *models.Song) dto.SongListItem {
	return dto.SongListItem{
		ID:        song.ID,
		Title:     song.Title,
		Performer: song.Performer,
	}
}

// ToSongListItems converts a slice of song models to listing shapes
func ToSongListItems(songs []*models.Song) []dto.SongListItem {
	items := make([]dto.SongListItem, 0, len(songs))
	for _, song := range songs {
		items = append(items, ToSongListItem(song))
	}
	return items
}

// ToSongDetail converts a song model to its full shape
func ToSongDetail(song *models.Song) dto.SongDetail {
	return dto.SongDetail{
		ID:        song.ID,
		Title:     song.Title,
		Year:      song.Year,
		Genre:     song.Genre,
		Performer: song.Performer,
		Duration:  song.Duration,
		AlbumID:   song.AlbumID,
	}
}

// ToActivityItems converts activity log rows to their wire shape
func ToActivityItems(entries []models.ActivityEntry) []dto.ActivityItem {
	items := make([]dto.ActivityItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.ActivityItem{
			Username: entry.Username,
			Title:    entry.Title,
			Action:   entry.Action,
			Time:     entry.Time.UTC().Format(time.RFC3339),
		})
	}
	return items
}

// getAlbum fetches an album or returns the not-found sentinel
func getAlbum(ctx context.Context, repo repository.AlbumRepository, id string) (*models.Album, error) {
	album, err := repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, ErrAlbumNotFound
	}
	return album, nil
}

// getSong fetches a song or returns the not-found sentinel
func getSong(ctx context.Context, repo repository.SongRepository, id string) (*models.Song, error) {
	song, err := repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, ErrSongNotFound
	}
	return song, nil
}

// getPlaylist fetches a playlist or returns the not-found sentinel
func getPlaylist(ctx context.Context, repo repository.PlaylistRepository, id string) (*models.Playlist, error) {
	playlist, err := repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, ErrPlaylistNotFound
	}
	return playlist, nil
}

// getUser fetches a user or returns the not-found sentinel
func getUser(ctx context.Context, repo repository.UserRepository, id string) (*models.User, error) {
	user, err := repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
