// Package tests contains test cases for the repository layer
package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
	testingutil "github.com/openmusic/api/testing"
	"github.com/openmusic/api/utils"
)

func TestPlaylistRepositoryListForUser(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	repo := repository.NewPlaylistRepository(testDB.DB)
	ctx := testingutil.CreateTestContext()

	owner, err := fixtures.CreateTestUser("listowner")
	require.NoError(t, err)
	collaborator, err := fixtures.CreateTestUser("listcollab")
	require.NoError(t, err)

	owned, err := fixtures.CreateTestPlaylist("Owned", owner.ID)
	require.NoError(t, err)
	shared, err := fixtures.CreateTestPlaylist("Shared", collaborator.ID)
	require.NoError(t, err)
	_, err = fixtures.CreateTestCollaboration(shared.ID, owner.ID)
	require.NoError(t, err)

	// Owner sees both owned and collaborated playlists, each attributed
	// to its owner's username
	summaries, err := repo.ListForUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := map[string]models.PlaylistSummary{}
	for _, s := range summaries {
		byID[s.ID] = s
	}
	assert.Equal(t, owner.Username, byID[owned.ID].Username)
	assert.Equal(t, collaborator.Username, byID[shared.ID].Username)

	// Being both owner and collaborator yields one row, not two
	_, err = fixtures.CreateTestCollaboration(owned.ID, collaborator.ID)
	require.NoError(t, err)
	summaries, err = repo.ListForUser(ctx, collaborator.ID)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestSongRepositoryByPlaylistID(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	repo := repository.NewSongRepository(testDB.DB)
	ctx := testingutil.CreateTestContext()

	owner, err := fixtures.CreateTestUser("orderowner")
	require.NoError(t, err)
	playlist, err := fixtures.CreateTestPlaylist("Ordered", owner.ID)
	require.NoError(t, err)

	first, err := fixtures.CreateTestSong("First Added", nil)
	require.NoError(t, err)
	second, err := fixtures.CreateTestSong("Second Added", nil)
	require.NoError(t, err)

	_, err = fixtures.AddTestPlaylistSong(playlist.ID, first.ID)
	require.NoError(t, err)
	_, err = fixtures.AddTestPlaylistSong(playlist.ID, second.ID)
	require.NoError(t, err)

	songs, err := repo.ByPlaylistID(ctx, playlist.ID)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, first.ID, songs[0].ID)
	assert.Equal(t, second.ID, songs[1].ID)

	// A playlist without songs yields an empty slice, not an error
	empty, err := fixtures.CreateTestPlaylist("Empty", owner.ID)
	require.NoError(t, err)
	songs, err = repo.ByPlaylistID(ctx, empty.ID)
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestAuthenticationRepository(t *testing.T) {
	testDB := setupDB(t)
	repo := repository.NewAuthenticationRepository(testDB.DB)
	ctx := testingutil.CreateTestContext()

	token := "opaque-refresh-token"
	require.NoError(t, repo.Save(ctx, &models.Authentication{Token: token}))

	exists, err := repo.TokenExists(ctx, token)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.TokenExists(ctx, "never-issued")
	require.NoError(t, err)
	assert.False(t, exists)

	rows, err := repo.Delete(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.Delete(ctx, token)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestDuplicateKeyDetection(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	repo := repository.NewUserAlbumLikeRepository(testDB.DB)
	ctx := testingutil.CreateTestContext()

	fan, err := fixtures.CreateTestUser("constraintfan")
	require.NoError(t, err)
	album, err := fixtures.CreateTestAlbum("Guarded", 2020)
	require.NoError(t, err)

	_, err = fixtures.CreateTestLike(fan.ID, album.ID)
	require.NoError(t, err)

	err = repo.Save(ctx, &models.UserAlbumLike{
		ID:      utils.NewID("like"),
		UserID:  fan.ID,
		AlbumID: album.ID,
	})
	require.Error(t, err)
	assert.True(t, repository.IsDuplicateKeyError(err))
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	activityRepo := repository.NewPlaylistActivityRepository(testDB.DB)
	ctx := testingutil.CreateTestContext()

	owner, err := fixtures.CreateTestUser("txowner")
	require.NoError(t, err)
	playlist, err := fixtures.CreateTestPlaylist("Atomic", owner.ID)
	require.NoError(t, err)
	song, err := fixtures.CreateTestSong("Tentative", nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = repository.WithTransaction(ctx, testDB.DB, func(txCtx context.Context) error {
		appendErr := activityRepo.Append(txCtx, &models.PlaylistActivity{
			PlaylistID: playlist.ID,
			SongID:     song.ID,
			UserID:     owner.ID,
			Action:     models.ActivityActionAdd,
			Time:       utils.UTCNow(),
		})
		require.NoError(t, appendErr)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// The appended entry must not survive the rollback
	count, err := activityRepo.Count(ctx, models.PlaylistActivityFilter{PlaylistID: utils.ToPtr(playlist.ID)})
	require.NoError(t, err)
	assert.Zero(t, count)
}
