// Package tests contains integration tests for the business flows
package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmusic/api/app/dto"
	businessflow "github.com/openmusic/api/business_flow"
	"github.com/openmusic/api/repository"
	testingutil "github.com/openmusic/api/testing"
)

func TestAlbumFlow(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)

	albumRepo := repository.NewAlbumRepository(testDB.DB)
	songRepo := repository.NewSongRepository(testDB.DB)
	albumFlow := businessflow.NewAlbumFlow(albumRepo, songRepo, newMemoryCache(), testDB.DB)

	ctx := context.Background()
	metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

	t.Run("CreateAndGetAlbum", func(t *testing.T) {
		created, err := albumFlow.CreateAlbum(ctx, &dto.AlbumRequest{Name: "Viva la Vida", Year: 2008}, metadata)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotEmpty(t, created.AlbumID)

		detail, err := albumFlow.GetAlbum(ctx, created.AlbumID, metadata)
		require.NoError(t, err)
		assert.Equal(t, created.AlbumID, detail.ID)
		assert.Equal(t, "Viva la Vida", detail.Name)
		assert.Equal(t, 2008, detail.Year)
		assert.Nil(t, detail.CoverURL)
		assert.Empty(t, detail.Songs)
	})

	t.Run("GetAlbumIncludesSongs", func(t *testing.T) {
		album, err := fixtures.CreateTestAlbum("Hybrid Theory", 2000)
		require.NoError(t, err)

		song, err := fixtures.CreateTestSong("In the End", &album.ID)
		require.NoError(t, err)

		detail, err := albumFlow.GetAlbum(ctx, album.ID, metadata)
		require.NoError(t, err)
		require.Len(t, detail.Songs, 1)
		assert.Equal(t, song.ID, detail.Songs[0].ID)
		assert.Equal(t, "In the End", detail.Songs[0].Title)
		assert.Equal(t, song.Performer, detail.Songs[0].Performer)
	})

	t.Run("GetAlbumNotFound", func(t *testing.T) {
		_, err := albumFlow.GetAlbum(ctx, "album-missing", metadata)
		assert.True(t, businessflow.IsAlbumNotFound(err))
	})

	t.Run("UpdateAlbum", func(t *testing.T) {
		album, err := fixtures.CreateTestAlbum("Old Name", 1999)
		require.NoError(t, err)

		err = albumFlow.UpdateAlbum(ctx, album.ID, &dto.AlbumRequest{Name: "New Name", Year: 2001}, metadata)
		require.NoError(t, err)

		detail, err := albumFlow.GetAlbum(ctx, album.ID, metadata)
		require.NoError(t, err)
		assert.Equal(t, "New Name", detail.Name)
		assert.Equal(t, 2001, detail.Year)
	})

	t.Run("UpdateAlbumNotFound", func(t *testing.T) {
		err := albumFlow.UpdateAlbum(ctx, "album-missing", &dto.AlbumRequest{Name: "X", Year: 2000}, metadata)
		assert.True(t, businessflow.IsAlbumNotFound(err))
	})

	t.Run("DeleteAlbum", func(t *testing.T) {
		album, err := fixtures.CreateTestAlbum("Ephemeral", 2010)
		require.NoError(t, err)

		require.NoError(t, albumFlow.DeleteAlbum(ctx, album.ID, metadata))

		_, err = albumFlow.GetAlbum(ctx, album.ID, metadata)
		assert.True(t, businessflow.IsAlbumNotFound(err))

		err = albumFlow.DeleteAlbum(ctx, album.ID, metadata)
		assert.True(t, businessflow.IsAlbumNotFound(err))
	})
}

func TestSongFlow(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)

	albumRepo := repository.NewAlbumRepository(testDB.DB)
	songRepo := repository.NewSongRepository(testDB.DB)
	songFlow := businessflow.NewSongFlow(songRepo, albumRepo, testDB.DB)

	ctx := context.Background()
	metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

	t.Run("CreateAndGetSong", func(t *testing.T) {
		duration := 301
		created, err := songFlow.CreateSong(ctx, &dto.SongRequest{
			Title:     "Bohemian Rhapsody",
			Year:      1975,
			Genre:     "Rock",
			Performer: "Queen",
			Duration:  &duration,
		}, metadata)
		require.NoError(t, err)
		assert.NotEmpty(t, created.SongID)

		detail, err := songFlow.GetSong(ctx, created.SongID, metadata)
		require.NoError(t, err)
		assert.Equal(t, "Bohemian Rhapsody", detail.Title)
		assert.Equal(t, 1975, detail.Year)
		assert.Equal(t, "Queen", detail.Performer)
		require.NotNil(t, detail.Duration)
		assert.Equal(t, 301, *detail.Duration)
		assert.Nil(t, detail.AlbumID)
	})

	t.Run("CreateSongRejectsMissingAlbum", func(t *testing.T) {
		missing := "album-missing"
		_, err := songFlow.CreateSong(ctx, &dto.SongRequest{
			Title:     "Orphan",
			Year:      2020,
			Genre:     "Pop",
			Performer: "Nobody",
			AlbumID:   &missing,
		}, metadata)
		assert.True(t, businessflow.IsAlbumNotFound(err))
	})

	t.Run("ListSongsWithFilters", func(t *testing.T) {
		_, err := songFlow.CreateSong(ctx, &dto.SongRequest{
			Title: "Life in Technicolor", Year: 2008, Genre: "Rock", Performer: "Coldplay",
		}, metadata)
		require.NoError(t, err)
		_, err = songFlow.CreateSong(ctx, &dto.SongRequest{
			Title: "Centimeteries of London", Year: 2008, Genre: "Rock", Performer: "Coldplay",
		}, metadata)
		require.NoError(t, err)

		// Title substring match is case-insensitive
		items, err := songFlow.ListSongs(ctx, dto.SongListFilter{Title: "life"}, metadata)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Life in Technicolor", items[0].Title)

		items, err = songFlow.ListSongs(ctx, dto.SongListFilter{Performer: "coldplay"}, metadata)
		require.NoError(t, err)
		assert.Len(t, items, 2)

		// Both filters combine conjunctively
		items, err = songFlow.ListSongs(ctx, dto.SongListFilter{Title: "london", Performer: "coldplay"}, metadata)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("UpdateSongMovesAlbum", func(t *testing.T) {
		album, err := fixtures.CreateTestAlbum("Destination", 2015)
		require.NoError(t, err)
		song, err := fixtures.CreateTestSong("Wanderer", nil)
		require.NoError(t, err)

		err = songFlow.UpdateSong(ctx, song.ID, &dto.SongRequest{
			Title:     "Wanderer",
			Year:      2015,
			Genre:     "Indie",
			Performer: "Test Performer",
			AlbumID:   &album.ID,
		}, metadata)
		require.NoError(t, err)

		detail, err := songFlow.GetSong(ctx, song.ID, metadata)
		require.NoError(t, err)
		require.NotNil(t, detail.AlbumID)
		assert.Equal(t, album.ID, *detail.AlbumID)
		assert.Equal(t, "Indie", detail.Genre)
	})

	t.Run("DeleteSong", func(t *testing.T) {
		song, err := fixtures.CreateTestSong("Short Lived", nil)
		require.NoError(t, err)

		require.NoError(t, songFlow.DeleteSong(ctx, song.ID, metadata))

		_, err = songFlow.GetSong(ctx, song.ID, metadata)
		assert.True(t, businessflow.IsSongNotFound(err))

		err = songFlow.DeleteSong(ctx, song.ID, metadata)
		assert.True(t, businessflow.IsSongNotFound(err))
	})
}
