// Package testing provides test utilities and database setup for testing the music catalog
package testing

import (
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"github.com/openmusic/api/models"
	"github.com/openmusic/api/utils"
)

// TestPassword is the plaintext behind every fixture user's password hash
const TestPassword = "secretpassword"

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates a user with a unique username and a bcrypt hash
// of TestPassword
func (tf *TestFixtures) CreateTestUser(username string) (*models.User, error) {
	if username == "" {
		username = fmt.Sprintf("user%d", rand.Intn(100000000))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           utils.NewID("user"),
		Username:     username,
		PasswordHash: string(hashedPassword),
		Fullname:     "Test User",
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}
	return user, nil
}

// CreateTestAlbum creates an album
func (tf *TestFixtures) CreateTestAlbum(name string, year int) (*models.Album, error) {
	album := &models.Album{
		ID:   utils.NewID("album"),
		Name: name,
		Year: year,
	}

	if err := tf.DB.DB.Create(album).Error; err != nil {
		return nil, fmt.Errorf("failed to create test album: %w", err)
	}
	return album, nil
}

// CreateTestSong creates a song, optionally attached to an album
func (tf *TestFixtures) CreateTestSong(title string, albumID *string) (*models.Song, error) {
	duration := 240
	song := &models.Song{
		ID:        utils.NewID("song"),
		Title:     title,
		Year:      2020,
		Genre:     "Rock",
		Performer: "Test Performer",
		Duration:  &duration,
		AlbumID:   albumID,
	}

	if err := tf.DB.DB.Create(song).Error; err != nil {
		return nil, fmt.Errorf("failed to create test song: %w", err)
	}
	return song, nil
}

// CreateTestPlaylist creates a playlist owned by the given user
func (tf *TestFixtures) CreateTestPlaylist(name, ownerID string) (*models.Playlist, error) {
	playlist := &models.Playlist{
		ID:      utils.NewID("playlist"),
		Name:    name,
		OwnerID: ownerID,
	}

	if err := tf.DB.DB.Create(playlist).Error; err != nil {
		return nil, fmt.Errorf("failed to create test playlist: %w", err)
	}
	return playlist, nil
}

// CreateTestCollaboration grants a user access to a playlist
func (tf *TestFixtures) CreateTestCollaboration(playlistID, userID string) (*models.Collaboration, error) {
	collaboration := &models.Collaboration{
		ID:         utils.NewID("collab"),
		PlaylistID: playlistID,
		UserID:     userID,
	}

	if err := tf.DB.DB.Create(collaboration).Error; err != nil {
		return nil, fmt.Errorf("failed to create test collaboration: %w", err)
	}
	return collaboration, nil
}

// AddTestPlaylistSong inserts a membership row directly
func (tf *TestFixtures) AddTestPlaylistSong(playlistID, songID string) (*models.PlaylistSong, error) {
	member := &models.PlaylistSong{
		ID:         utils.NewID("playlistsong"),
		PlaylistID: playlistID,
		SongID:     songID,
	}

	if err := tf.DB.DB.Create(member).Error; err != nil {
		return nil, fmt.Errorf("failed to create test playlist song: %w", err)
	}
	return member, nil
}

// CreateTestLike records a like directly
func (tf *TestFixtures) CreateTestLike(userID, albumID string) (*models.UserAlbumLike, error) {
	like := &models.UserAlbumLike{
		ID:      utils.NewID("like"),
		UserID:  userID,
		AlbumID: albumID,
	}

	if err := tf.DB.DB.Create(like).Error; err != nil {
		return nil, fmt.Errorf("failed to create test like: %w", err)
	}
	return like, nil
}
