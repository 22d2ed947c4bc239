// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/openmusic/api/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id string) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// AlbumRepository defines operations for albums
type AlbumRepository interface {
	Repository[models.Album, models.AlbumFilter]
	// Update rewrites name and year; returns the number of rows matched.
	Update(ctx context.Context, id, name string, year int) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	SetCoverURL(ctx context.Context, id, coverURL string) (int64, error)
}

// SongRepository defines operations for songs
type SongRepository interface {
	Repository[models.Song, models.SongFilter]
	Update(ctx context.Context, song *models.Song) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	ByPlaylistID(ctx context.Context, playlistID string) ([]*models.Song, error)
}

// UserRepository defines operations for users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthenticationRepository defines operations for stored refresh tokens
type AuthenticationRepository interface {
	Save(ctx context.Context, auth *models.Authentication) error
	TokenExists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) (int64, error)
}

// PlaylistRepository defines operations for playlists
type PlaylistRepository interface {
	Repository[models.Playlist, models.PlaylistFilter]
	Delete(ctx context.Context, id string) (int64, error)
	// ListForUser returns playlists the user owns or collaborates on,
	// each with the owner's username.
	ListForUser(ctx context.Context, userID string) ([]models.PlaylistSummary, error)
}

// CollaborationRepository defines operations for collaborator grants
type CollaborationRepository interface {
	Repository[models.Collaboration, models.CollaborationFilter]
	DeleteByPair(ctx context.Context, playlistID, userID string) (int64, error)
	ExistsByPair(ctx context.Context, playlistID, userID string) (bool, error)
}

// PlaylistSongRepository defines operations for playlist membership rows
type PlaylistSongRepository interface {
	Repository[models.PlaylistSong, models.PlaylistSongFilter]
	DeleteByPair(ctx context.Context, playlistID, songID string) (int64, error)
	ExistsByPair(ctx context.Context, playlistID, songID string) (bool, error)
}

// PlaylistActivityRepository defines operations for the activity log.
// Entries are append-only: there is deliberately no update or delete.
type PlaylistActivityRepository interface {
	Append(ctx context.Context, activity *models.PlaylistActivity) error
	ByPlaylistID(ctx context.Context, playlistID string) ([]models.ActivityEntry, error)
	Count(ctx context.Context, filter models.PlaylistActivityFilter) (int64, error)
}

// UserAlbumLikeRepository defines operations for album likes
type UserAlbumLikeRepository interface {
	Repository[models.UserAlbumLike, models.UserAlbumLikeFilter]
	DeleteByPair(ctx context.Context, userID, albumID string) (int64, error)
	ExistsByPair(ctx context.Context, userID, albumID string) (bool, error)
	CountByAlbum(ctx context.Context, albumID string) (int64, error)
}
