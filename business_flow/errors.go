// Package businessflow contains the core business logic and use cases for the catalog workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Catalog errors
	ErrAlbumNotFound = errors.New("album not found")
	ErrSongNotFound  = errors.New("song not found")

	// User and session errors
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameTaken         = errors.New("username already taken")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrRefreshTokenInvalid   = errors.New("refresh token is invalid")
	ErrAccessTokenInvalid    = errors.New("access token is invalid")
	ErrPasswordHashingFailed = errors.New("password hashing failed")

	// Playlist errors
	ErrPlaylistNotFound      = errors.New("playlist not found")
	ErrForbidden             = errors.New("resource access forbidden")
	ErrSongNotInPlaylist     = errors.New("song is not in the playlist")
	ErrSongAlreadyInPlaylist = errors.New("song is already in the playlist")

	// Collaboration errors
	ErrCollaborationNotFound = errors.New("collaboration not found")
	ErrCollaborationExists   = errors.New("collaboration already exists")
	ErrCollaboratorIsOwner   = errors.New("owner cannot be added as collaborator")

	// Like errors
	ErrAlreadyLiked = errors.New("album already liked")
	ErrLikeNotFound = errors.New("like not found")

	// Upload errors
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrCoverTooLarge        = errors.New("cover file exceeds the size limit")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsAlbumNotFound(err error) bool {
	return errors.Is(err, ErrAlbumNotFound)
}

func IsSongNotFound(err error) bool {
	return errors.Is(err, ErrSongNotFound)
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsUsernameTaken(err error) bool {
	return errors.Is(err, ErrUsernameTaken)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsRefreshTokenInvalid(err error) bool {
	return errors.Is(err, ErrRefreshTokenInvalid)
}

func IsAccessTokenInvalid(err error) bool {
	return errors.Is(err, ErrAccessTokenInvalid)
}

func IsPlaylistNotFound(err error) bool {
	return errors.Is(err, ErrPlaylistNotFound)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsSongNotInPlaylist(err error) bool {
	return errors.Is(err, ErrSongNotInPlaylist)
}

func IsSongAlreadyInPlaylist(err error) bool {
	return errors.Is(err, ErrSongAlreadyInPlaylist)
}

func IsCollaborationNotFound(err error) bool {
	return errors.Is(err, ErrCollaborationNotFound)
}

func IsCollaborationExists(err error) bool {
	return errors.Is(err, ErrCollaborationExists)
}

func IsCollaboratorIsOwner(err error) bool {
	return errors.Is(err, ErrCollaboratorIsOwner)
}

func IsAlreadyLiked(err error) bool {
	return errors.Is(err, ErrAlreadyLiked)
}

func IsLikeNotFound(err error) bool {
	return errors.Is(err, ErrLikeNotFound)
}

func IsUnsupportedImageType(err error) bool {
	return errors.Is(err, ErrUnsupportedImageType)
}

func IsCoverTooLarge(err error) bool {
	return errors.Is(err, ErrCoverTooLarge)
}

// IsNotFound reports whether err is any of the resource-missing sentinels
func IsNotFound(err error) bool {
	return IsAlbumNotFound(err) ||
		IsSongNotFound(err) ||
		IsUserNotFound(err) ||
		IsPlaylistNotFound(err) ||
		IsCollaborationNotFound(err) ||
		IsSongNotInPlaylist(err) ||
		IsLikeNotFound(err)
}
