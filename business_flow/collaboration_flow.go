// Package businessflow contains the core business logic and use cases for collaborator grants
package businessflow

import (
	"context"

	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
	"github.com/openmusic/api/utils"
	"gorm.io/gorm"
)

// CollaborationFlow defines operations for sharing playlists
type CollaborationFlow interface {
	AddCollaboration(ctx context.Context, requesterID string, req *dto.CollaborationRequest, metadata *ClientMetadata) (*dto.CollaborationIDData, error)
	DeleteCollaboration(ctx context.Context, requesterID string, req *dto.CollaborationRequest, metadata *ClientMetadata) error
}

// CollaborationFlowImpl implements CollaborationFlow
type CollaborationFlowImpl struct {
	collabRepo   repository.CollaborationRepository
	playlistRepo repository.PlaylistRepository
	userRepo     repository.UserRepository
	db           *gorm.DB
}

// NewCollaborationFlow constructs a CollaborationFlow
func NewCollaborationFlow(
	collabRepo repository.CollaborationRepository,
	playlistRepo repository.PlaylistRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
) CollaborationFlow {
	return &CollaborationFlowImpl{
		collabRepo:   collabRepo,
		playlistRepo: playlistRepo,
		userRepo:     userRepo,
		db:           db,
	}
}

// AddCollaboration grants a user access to a playlist. Only the owner may
// grant, the target user must exist, and the owner cannot grant to itself.
func (c *CollaborationFlowImpl) AddCollaboration(ctx context.Context, requesterID string, req *dto.CollaborationRequest, metadata *ClientMetadata) (*dto.CollaborationIDData, error) {
	playlist, err := verifyPlaylistOwner(ctx, c.playlistRepo, req.PlaylistID, requesterID)
	if err != nil {
		return nil, err
	}

	if _, err := getUser(ctx, c.userRepo, req.UserID); err != nil {
		return nil, err
	}

	if playlist.OwnerID == req.UserID {
		return nil, ErrCollaboratorIsOwner
	}

	collaboration := &models.Collaboration{
		ID:         utils.NewID("collab"),
		PlaylistID: req.PlaylistID,
		UserID:     req.UserID,
		CreatedAt:  utils.UTCNow(),
	}

	if err := c.collabRepo.Save(ctx, collaboration); err != nil {
		if repository.IsDuplicateKeyError(err) {
			return nil, ErrCollaborationExists
		}
		return nil, NewBusinessError("ADD_COLLABORATION_FAILED", "Failed to add collaboration", err)
	}

	return &dto.CollaborationIDData{CollaborationID: collaboration.ID}, nil
}

// DeleteCollaboration revokes a grant. Only the owner may revoke.
func (c *CollaborationFlowImpl) DeleteCollaboration(ctx context.Context, requesterID string, req *dto.CollaborationRequest, metadata *ClientMetadata) error {
	if _, err := verifyPlaylistOwner(ctx, c.playlistRepo, req.PlaylistID, requesterID); err != nil {
		return err
	}

	rows, err := c.collabRepo.DeleteByPair(ctx, req.PlaylistID, req.UserID)
	if err != nil {
		return NewBusinessError("DELETE_COLLABORATION_FAILED", "Failed to delete collaboration", err)
	}
	if rows == 0 {
		return ErrCollaborationNotFound
	}
	return nil
}
