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

func TestCollaborationFlow(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)

	collabRepo := repository.NewCollaborationRepository(testDB.DB)
	playlistRepo := repository.NewPlaylistRepository(testDB.DB)
	userRepo := repository.NewUserRepository(testDB.DB)
	collaborationFlow := businessflow.NewCollaborationFlow(collabRepo, playlistRepo, userRepo, testDB.DB)

	ctx := context.Background()
	metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

	t.Run("AddCollaboration", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("grantowner")
		require.NoError(t, err)
		invitee, err := fixtures.CreateTestUser("grantinvitee")
		require.NoError(t, err)
		playlist, err := fixtures.CreateTestPlaylist("Joint Venture", owner.ID)
		require.NoError(t, err)

		created, err := collaborationFlow.AddCollaboration(ctx, owner.ID, &dto.CollaborationRequest{
			PlaylistID: playlist.ID,
			UserID:     invitee.ID,
		}, metadata)
		require.NoError(t, err)
		assert.NotEmpty(t, created.CollaborationID)

		granted, err := collabRepo.ExistsByPair(ctx, playlist.ID, invitee.ID)
		require.NoError(t, err)
		assert.True(t, granted)
	})

	t.Run("OnlyOwnerMayGrant", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("soleowner")
		require.NoError(t, err)
		outsider, err := fixtures.CreateTestUser("wouldbegranter")
		require.NoError(t, err)
		target, err := fixtures.CreateTestUser("granttarget")
		require.NoError(t, err)
		playlist, err := fixtures.CreateTestPlaylist("Private Club", owner.ID)
		require.NoError(t, err)

		_, err = collaborationFlow.AddCollaboration(ctx, outsider.ID, &dto.CollaborationRequest{
			PlaylistID: playlist.ID,
			UserID:     target.ID,
		}, metadata)
		assert.True(t, businessflow.IsForbidden(err))
	})

	t.Run("MissingPlaylistBeforeForbidden", func(t *testing.T) {
		requester, err := fixtures.CreateTestUser("confusedgranter")
		require.NoError(t, err)
		target, err := fixtures.CreateTestUser("confusedtarget")
		require.NoError(t, err)

		_, err = collaborationFlow.AddCollaboration(ctx, requester.ID, &dto.CollaborationRequest{
			PlaylistID: "playlist-missing",
			UserID:     target.ID,
		}, metadata)
		assert.True(t, businessflow.IsPlaylistNotFound(err))
	})

	t.Run("MissingTargetUser", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("lonelygranter")
		require.NoError(t, err)
		playlist, err := fixtures.CreateTestPlaylist("Ghost Invite", owner.ID)
		require.NoError(t, err)

		_, err = collaborationFlow.AddCollaboration(ctx, owner.ID, &dto.CollaborationRequest{
			PlaylistID: playlist.ID,
			UserID:     "user-missing",
		}, metadata)
		assert.True(t, businessflow.IsUserNotFound(err))
	})

	t.Run("OwnerCannotBeCollaborator", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("selfgranter")
		require.NoError(t, err)
		playlist, err := fixtures.CreateTestPlaylist("Mirror", owner.ID)
		require.NoError(t, err)

		_, err = collaborationFlow.AddCollaboration(ctx, owner.ID, &dto.CollaborationRequest{
			PlaylistID: playlist.ID,
			UserID:     owner.ID,
		}, metadata)
		assert.True(t, businessflow.IsCollaboratorIsOwner(err))
	})

	t.Run("DuplicateGrantRejected", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("repeatgranter")
		require.NoError(t, err)
		invitee, err := fixtures.CreateTestUser("repeatinvitee")
		require.NoError(t, err)
		playlist, err := fixtures.CreateTestPlaylist("Once Shared", owner.ID)
		require.NoError(t, err)

		req := &dto.CollaborationRequest{PlaylistID: playlist.ID, UserID: invitee.ID}
		_, err = collaborationFlow.AddCollaboration(ctx, owner.ID, req, metadata)
		require.NoError(t, err)

		_, err = collaborationFlow.AddCollaboration(ctx, owner.ID, req, metadata)
		assert.True(t, businessflow.IsCollaborationExists(err))
	})

	t.Run("DeleteCollaboration", func(t *testing.T) {
		owner, err := fixtures.CreateTestUser("revoker")
		require.NoError(t, err)
		invitee, err := fixtures.CreateTestUser("revokee")
		require.NoError(t, err)
		playlist, err := fixtures.CreateTestPlaylist("Falling Out", owner.ID)
		require.NoError(t, err)
		_, err = fixtures.CreateTestCollaboration(playlist.ID, invitee.ID)
		require.NoError(t, err)

		req := &dto.CollaborationRequest{PlaylistID: playlist.ID, UserID: invitee.ID}

		// The collaborator cannot revoke their own grant
		err = collaborationFlow.DeleteCollaboration(ctx, invitee.ID, req, metadata)
		assert.True(t, businessflow.IsForbidden(err))

		require.NoError(t, collaborationFlow.DeleteCollaboration(ctx, owner.ID, req, metadata))

		granted, err := collabRepo.ExistsByPair(ctx, playlist.ID, invitee.ID)
		require.NoError(t, err)
		assert.False(t, granted)

		// Deleting an absent grant reports not found
		err = collaborationFlow.DeleteCollaboration(ctx, owner.ID, req, metadata)
		assert.True(t, businessflow.IsCollaborationNotFound(err))
	})
}
