package businessflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewBusinessError("CREATE_ALBUM_FAILED", "Failed to create album", cause)

	assert.Equal(t, "CREATE_ALBUM_FAILED", err.Code)
	assert.Equal(t, "Failed to create album: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewBusinessError("NO_CAUSE", "Something happened", nil)
	assert.Equal(t, "Something happened", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestBusinessErrorf(t *testing.T) {
	err := NewBusinessErrorf("EXPORT_FAILED", "Failed to export playlist %s", nil, "playlist-1")
	assert.Equal(t, "Failed to export playlist playlist-1", err.Message)
}

func TestSentinelHelpersSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading playlist: %w", ErrPlaylistNotFound)
	assert.True(t, IsPlaylistNotFound(wrapped))

	viaBusiness := NewBusinessError("GET_FAILED", "Failed to load", ErrAlbumNotFound)
	assert.True(t, IsAlbumNotFound(viaBusiness))
	assert.False(t, IsSongNotFound(viaBusiness))
}

func TestIsNotFoundCoversResourceSentinels(t *testing.T) {
	notFound := []error{
		ErrAlbumNotFound,
		ErrSongNotFound,
		ErrUserNotFound,
		ErrPlaylistNotFound,
		ErrCollaborationNotFound,
		ErrSongNotInPlaylist,
		ErrLikeNotFound,
	}
	for _, err := range notFound {
		assert.True(t, IsNotFound(err), "expected IsNotFound for %v", err)
	}

	ruleViolations := []error{
		ErrForbidden,
		ErrUsernameTaken,
		ErrInvalidCredentials,
		ErrSongAlreadyInPlaylist,
		ErrCollaborationExists,
		ErrAlreadyLiked,
		ErrCoverTooLarge,
	}
	for _, err := range ruleViolations {
		assert.False(t, IsNotFound(err), "did not expect IsNotFound for %v", err)
	}
}
