// Package tests contains integration tests for the business flows
package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmusic/api/app/dto"
	businessflow "github.com/openmusic/api/business_flow"
	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
	testingutil "github.com/openmusic/api/testing"
)

func newPlaylistFlow(testDB *testingutil.TestDB) businessflow.PlaylistFlow {
	return businessflow.NewPlaylistFlow(
		repository.NewPlaylistRepository(testDB.DB),
		repository.NewSongRepository(testDB.DB),
		repository.NewUserRepository(testDB.DB),
		repository.NewPlaylistSongRepository(testDB.DB),
		repository.NewCollaborationRepository(testDB.DB),
		repository.NewPlaylistActivityRepository(testDB.DB),
		testDB.DB,
	)
}

func TestPlaylistFlow(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	playlistFlow := newPlaylistFlow(testDB)

	ctx := context.Background()
	metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

	t.Run("CreateAndListPlaylists", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("playlistowner")
		require.NoError(t, err)

		created, err := playlistFlow.CreatePlaylist(ctx, owner.ID, &dto.PlaylistRequest{Name: "Morning Mix"}, metadata)
		require.NoError(t, err)
		assert.NotEmpty(t, created.PlaylistID)

		items, err := playlistFlow.ListPlaylists(ctx, owner.ID, metadata)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, created.PlaylistID, items[0].ID)
		assert.Equal(t, "Morning Mix", items[0].Name)
		assert.Equal(t, owner.Username, items[0].Username)
	})

	t.Run("ListIncludesCollaborations", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("sharingowner")
		require.NoError(t, err)
		collaborator, err := fixtures.CreateTestUser("invitee")
		require.NoError(t, err)

		playlist, err := fixtures.CreateTestPlaylist("Shared", owner.ID)
		require.NoError(t, err)
		_, err = fixtures.CreateTestCollaboration(playlist.ID, collaborator.ID)
		require.NoError(t, err)

		// The collaborator sees the playlist under the owner's username
		items, err := playlistFlow.ListPlaylists(ctx, collaborator.ID, metadata)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, playlist.ID, items[0].ID)
		assert.Equal(t, owner.Username, items[0].Username)

		// A third user sees nothing
		stranger, err := fixtures.CreateTestUser("stranger1")
		require.NoError(t, err)
		items, err = playlistFlow.ListPlaylists(ctx, stranger.ID, metadata)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("DeletePlaylistOwnerOnly", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("deleteowner")
		require.NoError(t, err)
		collaborator, err := fixtures.CreateTestUser("deletecollab")
		require.NoError(t, err)

		playlist, err := fixtures.CreateTestPlaylist("Doomed", owner.ID)
		require.NoError(t, err)
		_, err = fixtures.CreateTestCollaboration(playlist.ID, collaborator.ID)
		require.NoError(t, err)

		// Collaborator access is not ownership
		err = playlistFlow.DeletePlaylist(ctx, playlist.ID, collaborator.ID, metadata)
		assert.True(t, businessflow.IsForbidden(err))

		require.NoError(t, playlistFlow.DeletePlaylist(ctx, playlist.ID, owner.ID, metadata))

		err = playlistFlow.DeletePlaylist(ctx, playlist.ID, owner.ID, metadata)
		assert.True(t, businessflow.IsPlaylistNotFound(err))
	})

	t.Run("MissingPlaylistWinsOverAccess", func(t *testing.T) {
		user, err := fixtures.CreateTestUser("probing")
		require.NoError(t, err)

		// NotFound, not Forbidden, for a playlist that does not exist
		err = playlistFlow.DeletePlaylist(ctx, "playlist-missing", user.ID, metadata)
		assert.True(t, businessflow.IsPlaylistNotFound(err))

		_, err = playlistFlow.GetSongsFromPlaylist(ctx, "playlist-missing", user.ID, metadata)
		assert.True(t, businessflow.IsPlaylistNotFound(err))
	})

	t.Run("AddAndGetSongs", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("songadder")
		require.NoError(t, err)
		playlist, err := fixtures.CreateTestPlaylist("Road Trip", owner.ID)
		require.NoError(t, err)
		song, err := fixtures.CreateTestSong("Highway Star", nil)
		require.NoError(t, err)

		err = playlistFlow.AddSongToPlaylist(ctx, playlist.ID, owner.ID, &dto.PlaylistSongRequest{SongID: song.ID}, metadata)
		require.NoError(t, err)

		withSongs, err := playlistFlow.GetSongsFromPlaylist(ctx, playlist.ID, owner.ID, metadata)
		require.NoError(t, err)
		assert.Equal(t, playlist.ID, withSongs.ID)
		assert.Equal(t, owner.Username, withSongs.Username)
		require.Len(t, withSongs.Songs, 1)
		assert.Equal(t, song.ID, withSongs.Songs[0].ID)
	})

	t.Run("AddDuplicateSongRejected", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("dupadder")
		require.NoError(t, err)
		playlist, err := fixtures.CreateTestPlaylist("No Repeats", owner.ID)
		require.NoError(t, err)
		song, err := fixtures.CreateTestSong("Once Only", nil)
		require.NoError(t, err)

		req := &dto.PlaylistSongRequest{SongID: song.ID}
		require.NoError(t, playlistFlow.AddSongToPlaylist(ctx, playlist.ID, owner.ID, req, metadata))

		err = playlistFlow.AddSongToPlaylist(ctx, playlist.ID, owner.ID, req, metadata)
		assert.True(t, businessflow.IsSongAlreadyInPlaylist(err))

		// The failed add left no activity entry behind
		activities, err := playlistFlow.GetActivities(ctx, playlist.ID, owner.ID, metadata)
		require.NoError(t, err)
		assert.Len(t, activities.Activities, 1)
	})

	t.Run("AddMissingSongRejected", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("nosong")
		require.NoError(t, err)
		playlist, err := fixtures.CreateTestPlaylist("Empty Handed", owner.ID)
		require.NoError(t, err)

		err = playlistFlow.AddSongToPlaylist(ctx, playlist.ID, owner.ID, &dto.PlaylistSongRequest{SongID: "song-missing"}, metadata)
		assert.True(t, businessflow.IsSongNotFound(err))
	})

	t.Run("CollaboratorCanManageSongs", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("bandleader")
		require.NoError(t, err)
		collaborator, err := fixtures.CreateTestUser("bandmate")
		require.NoError(t, err)
		stranger, err := fixtures.CreateTestUser("stranger2")
		require.NoError(t, err)

		playlist, err := fixtures.CreateTestPlaylist("Band Picks", owner.ID)
		require.NoError(t, err)
		_, err = fixtures.CreateTestCollaboration(playlist.ID, collaborator.ID)
		require.NoError(t, err)
		song, err := fixtures.CreateTestSong("Group Effort", nil)
		require.NoError(t, err)

		req := &dto.PlaylistSongRequest{SongID: song.ID}

		err = playlistFlow.AddSongToPlaylist(ctx, playlist.ID, stranger.ID, req, metadata)
		assert.True(t, businessflow.IsForbidden(err))

		require.NoError(t, playlistFlow.AddSongToPlaylist(ctx, playlist.ID, collaborator.ID, req, metadata))

		_, err = playlistFlow.GetSongsFromPlaylist(ctx, playlist.ID, stranger.ID, metadata)
		assert.True(t, businessflow.IsForbidden(err))

		require.NoError(t, playlistFlow.DeleteSongFromPlaylist(ctx, playlist.ID, collaborator.ID, req, metadata))
	})

	t.Run("DeleteSongNotInPlaylist", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("remover")
		require.NoError(t, err)
		playlist, err := fixtures.CreateTestPlaylist("Sparse", owner.ID)
		require.NoError(t, err)
		song, err := fixtures.CreateTestSong("Never Added", nil)
		require.NoError(t, err)

		err = playlistFlow.DeleteSongFromPlaylist(ctx, playlist.ID, owner.ID, &dto.PlaylistSongRequest{SongID: song.ID}, metadata)
		assert.True(t, businessflow.IsSongNotInPlaylist(err))
	})

	t.Run("ActivityLogRecordsHistoryInOrder", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("historian")
		require.NoError(t, err)
		collaborator, err := fixtures.CreateTestUser("cowriter")
		require.NoError(t, err)

		playlist, err := fixtures.CreateTestPlaylist("Chronicle", owner.ID)
		require.NoError(t, err)
		_, err = fixtures.CreateTestCollaboration(playlist.ID, collaborator.ID)
		require.NoError(t, err)
		song, err := fixtures.CreateTestSong("Logged Track", nil)
		require.NoError(t, err)

		req := &dto.PlaylistSongRequest{SongID: song.ID}
		require.NoError(t, playlistFlow.AddSongToPlaylist(ctx, playlist.ID, owner.ID, req, metadata))
		require.NoError(t, playlistFlow.DeleteSongFromPlaylist(ctx, playlist.ID, collaborator.ID, req, metadata))
		require.NoError(t, playlistFlow.AddSongToPlaylist(ctx, playlist.ID, owner.ID, req, metadata))

		activities, err := playlistFlow.GetActivities(ctx, playlist.ID, owner.ID, metadata)
		require.NoError(t, err)
		assert.Equal(t, playlist.ID, activities.PlaylistID)
		require.Len(t, activities.Activities, 3)

		// Oldest first, attributed to the acting user
		assert.Equal(t, models.ActivityActionAdd, activities.Activities[0].Action)
		assert.Equal(t, owner.Username, activities.Activities[0].Username)
		assert.Equal(t, "Logged Track", activities.Activities[0].Title)

		assert.Equal(t, models.ActivityActionDelete, activities.Activities[1].Action)
		assert.Equal(t, collaborator.Username, activities.Activities[1].Username)

		assert.Equal(t, models.ActivityActionAdd, activities.Activities[2].Action)
		assert.Equal(t, owner.Username, activities.Activities[2].Username)

		// Collaborators may read the log too; strangers may not
		_, err = playlistFlow.GetActivities(ctx, playlist.ID, collaborator.ID, metadata)
		assert.NoError(t, err)

		stranger, err := fixtures.CreateTestUser("stranger3")
		require.NoError(t, err)
		_, err = playlistFlow.GetActivities(ctx, playlist.ID, stranger.ID, metadata)
		assert.True(t, businessflow.IsForbidden(err))
	})
}
