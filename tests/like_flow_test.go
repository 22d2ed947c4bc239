// Package tests contains integration tests for the business flows
package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	businessflow "github.com/openmusic/api/business_flow"
	"github.com/openmusic/api/repository"
	testingutil "github.com/openmusic/api/testing"
)

func TestLikeFlow(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)

	likeRepo := repository.NewUserAlbumLikeRepository(testDB.DB)
	albumRepo := repository.NewAlbumRepository(testDB.DB)
	cache := newMemoryCache()
	likeFlow := businessflow.NewLikeFlow(likeRepo, albumRepo, cache, 30*time.Minute, testDB.DB)

	ctx := context.Background()
	metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

	t.Run("AddAndCountLikes", func(t *testing.T) {
		album, err := fixtures.CreateTestAlbum("Crowd Pleaser", 2019)
		require.NoError(t, err)
		first, err := fixtures.CreateTestUser("fanone")
		require.NoError(t, err)
		second, err := fixtures.CreateTestUser("fantwo")
		require.NoError(t, err)

		require.NoError(t, likeFlow.AddLike(ctx, first.ID, album.ID, metadata))
		require.NoError(t, likeFlow.AddLike(ctx, second.ID, album.ID, metadata))

		// First read misses the cache and populates it
		count, fromCache, err := likeFlow.GetLikesCount(ctx, album.ID, metadata)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.False(t, fromCache)

		// Second read is served from the cache
		count, fromCache, err = likeFlow.GetLikesCount(ctx, album.ID, metadata)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.True(t, fromCache)
	})

	t.Run("DuplicateLikeRejected", func(t *testing.T) {
		album, err := fixtures.CreateTestAlbum("One Per Fan", 2021)
		require.NoError(t, err)
		fan, err := fixtures.CreateTestUser("doublefan")
		require.NoError(t, err)

		require.NoError(t, likeFlow.AddLike(ctx, fan.ID, album.ID, metadata))

		// Populate the cache so a spurious invalidation would show up
		count, _, err := likeFlow.GetLikesCount(ctx, album.ID, metadata)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		err = likeFlow.AddLike(ctx, fan.ID, album.ID, metadata)
		assert.True(t, businessflow.IsAlreadyLiked(err))

		// The rejected duplicate must not invalidate the cached counter
		assert.True(t, cache.has("likes:"+album.ID))
		count, fromCache, err := likeFlow.GetLikesCount(ctx, album.ID, metadata)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.True(t, fromCache)
	})

	t.Run("LikeMissingAlbumRejected", func(t *testing.T) {
		fan, err := fixtures.CreateTestUser("lostfan")
		require.NoError(t, err)

		err = likeFlow.AddLike(ctx, fan.ID, "album-missing", metadata)
		assert.True(t, businessflow.IsAlbumNotFound(err))
	})

	t.Run("WriteInvalidatesCache", func(t *testing.T) {
		album, err := fixtures.CreateTestAlbum("Fresh Counts", 2022)
		require.NoError(t, err)
		fan, err := fixtures.CreateTestUser("freshfan")
		require.NoError(t, err)

		require.NoError(t, likeFlow.AddLike(ctx, fan.ID, album.ID, metadata))

		count, _, err := likeFlow.GetLikesCount(ctx, album.ID, metadata)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// Unliking drops the cached counter; the next read recomputes
		require.NoError(t, likeFlow.DeleteLike(ctx, fan.ID, album.ID, metadata))

		count, fromCache, err := likeFlow.GetLikesCount(ctx, album.ID, metadata)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
		assert.False(t, fromCache)
	})

	t.Run("DeleteAbsentLike", func(t *testing.T) {
		album, err := fixtures.CreateTestAlbum("Unloved", 2023)
		require.NoError(t, err)
		fan, err := fixtures.CreateTestUser("fickle")
		require.NoError(t, err)

		err = likeFlow.DeleteLike(ctx, fan.ID, album.ID, metadata)
		assert.True(t, businessflow.IsLikeNotFound(err))
	})

	t.Run("CacheFailureDegradesToDatabase", func(t *testing.T) {
		album, err := fixtures.CreateTestAlbum("Resilient", 2024)
		require.NoError(t, err)
		fan, err := fixtures.CreateTestUser("reliablefan")
		require.NoError(t, err)
		require.NoError(t, likeFlow.AddLike(ctx, fan.ID, album.ID, metadata))

		failing := newMemoryCache()
		failing.failReads = true
		failing.readErr = errors.New("connection refused")
		degradedFlow := businessflow.NewLikeFlow(likeRepo, albumRepo, failing, 30*time.Minute, testDB.DB)

		count, fromCache, err := degradedFlow.GetLikesCount(ctx, album.ID, metadata)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.False(t, fromCache)
	})
}
