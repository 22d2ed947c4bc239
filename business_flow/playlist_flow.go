// Package businessflow contains the core business logic and use cases for playlists
package businessflow

import (
	"context"

	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
	"github.com/openmusic/api/utils"
	"gorm.io/gorm"
)

// PlaylistFlow defines operations for playlists, their membership, and
// the activity log
type PlaylistFlow interface {
	CreatePlaylist(ctx context.Context, userID string, req *dto.PlaylistRequest, metadata *ClientMetadata) (*dto.PlaylistIDData, error)
	ListPlaylists(ctx context.Context, userID string, metadata *ClientMetadata) ([]dto.PlaylistListItem, error)
	DeletePlaylist(ctx context.Context, playlistID, userID string, metadata *ClientMetadata) error
	AddSongToPlaylist(ctx context.Context, playlistID, userID string, req *dto.PlaylistSongRequest, metadata *ClientMetadata) error
	DeleteSongFromPlaylist(ctx context.Context, playlistID, userID string, req *dto.PlaylistSongRequest, metadata *ClientMetadata) error
	GetSongsFromPlaylist(ctx context.Context, playlistID, userID string, metadata *ClientMetadata) (*dto.PlaylistWithSongs, error)
	GetActivities(ctx context.Context, playlistID, userID string, metadata *ClientMetadata) (*dto.ActivitiesData, error)
}

// PlaylistFlowImpl implements PlaylistFlow
type PlaylistFlowImpl struct {
	playlistRepo repository.PlaylistRepository
	songRepo     repository.SongRepository
	userRepo     repository.UserRepository
	memberRepo   repository.PlaylistSongRepository
	collabRepo   repository.CollaborationRepository
	activityRepo repository.PlaylistActivityRepository
	db           *gorm.DB
}

// NewPlaylistFlow constructs a PlaylistFlow
func NewPlaylistFlow(
	playlistRepo repository.PlaylistRepository,
	songRepo repository.SongRepository,
	userRepo repository.UserRepository,
	memberRepo repository.PlaylistSongRepository,
	collabRepo repository.CollaborationRepository,
	activityRepo repository.PlaylistActivityRepository,
	db *gorm.DB,
) PlaylistFlow {
	return &PlaylistFlowImpl{
		playlistRepo: playlistRepo,
		songRepo:     songRepo,
		userRepo:     userRepo,
		memberRepo:   memberRepo,
		collabRepo:   collabRepo,
		activityRepo: activityRepo,
		db:           db,
	}
}

// verifyPlaylistOwner loads the playlist and requires userID to be its
// owner. Missing playlist wins over access: NotFound before Forbidden.
func verifyPlaylistOwner(ctx context.Context, playlistRepo repository.PlaylistRepository, playlistID, userID string) (*models.Playlist, error) {
	playlist, err := getPlaylist(ctx, playlistRepo, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != userID {
		return nil, ErrForbidden
	}
	return playlist, nil
}

// verifyPlaylistAccess allows the owner through directly and otherwise
// requires a collaborator grant for the pair
func verifyPlaylistAccess(ctx context.Context, playlistRepo repository.PlaylistRepository, collabRepo repository.CollaborationRepository, playlistID, userID string) (*models.Playlist, error) {
	playlist, err := getPlaylist(ctx, playlistRepo, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID == userID {
		return playlist, nil
	}

	granted, err := collabRepo.ExistsByPair(ctx, playlistID, userID)
	if err != nil {
		return nil, NewBusinessError("VERIFY_ACCESS_FAILED", "Failed to check collaborator grant", err)
	}
	if !granted {
		return nil, ErrForbidden
	}
	return playlist, nil
}

// CreatePlaylist inserts a playlist owned by the authenticated user
func (p *PlaylistFlowImpl) CreatePlaylist(ctx context.Context, userID string, req *dto.PlaylistRequest, metadata *ClientMetadata) (*dto.PlaylistIDData, error) {
	playlist := &models.Playlist{
		ID:        utils.NewID("playlist"),
		Name:      req.Name,
		OwnerID:   userID,
		CreatedAt: utils.UTCNow(),
		UpdatedAt: utils.UTCNow(),
	}

	if err := p.playlistRepo.Save(ctx, playlist); err != nil {
		return nil, NewBusinessError("CREATE_PLAYLIST_FAILED", "Failed to create playlist", err)
	}

	return &dto.PlaylistIDData{PlaylistID: playlist.ID}, nil
}

// ListPlaylists returns playlists the user owns or collaborates on
func (p *PlaylistFlowImpl) ListPlaylists(ctx context.Context, userID string, metadata *ClientMetadata) ([]dto.PlaylistListItem, error) {
	summaries, err := p.playlistRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("LIST_PLAYLISTS_FAILED", "Failed to list playlists", err)
	}

	items := make([]dto.PlaylistListItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, dto.PlaylistListItem{
			ID:       s.ID,
			Name:     s.Name,
			Username: s.Username,
		})
	}
	return items, nil
}

// DeletePlaylist removes a playlist. Only the owner may delete;
// collaborators get Forbidden.
func (p *PlaylistFlowImpl) DeletePlaylist(ctx context.Context, playlistID, userID string, metadata *ClientMetadata) error {
	if _, err := verifyPlaylistOwner(ctx, p.playlistRepo, playlistID, userID); err != nil {
		return err
	}

	rows, err := p.playlistRepo.Delete(ctx, playlistID)
	if err != nil {
		return NewBusinessError("DELETE_PLAYLIST_FAILED", "Failed to delete playlist", err)
	}
	if rows == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// AddSongToPlaylist adds an existing song to a playlist the user can
// access, then appends an "add" entry to the activity log. Membership
// insert and log append share one transaction so the log never records
// an add that did not happen.
func (p *PlaylistFlowImpl) AddSongToPlaylist(ctx context.Context, playlistID, userID string, req *dto.PlaylistSongRequest, metadata *ClientMetadata) error {
	if _, err := getSong(ctx, p.songRepo, req.SongID); err != nil {
		return err
	}

	if _, err := verifyPlaylistAccess(ctx, p.playlistRepo, p.collabRepo, playlistID, userID); err != nil {
		return err
	}

	return repository.WithTransaction(ctx, p.db, func(txCtx context.Context) error {
		member := &models.PlaylistSong{
			ID:         utils.NewID("playlistsong"),
			PlaylistID: playlistID,
			SongID:     req.SongID,
			CreatedAt:  utils.UTCNow(),
		}
		if err := p.memberRepo.Save(txCtx, member); err != nil {
			if repository.IsDuplicateKeyError(err) {
				return ErrSongAlreadyInPlaylist
			}
			return NewBusinessError("ADD_PLAYLIST_SONG_FAILED", "Failed to add song to playlist", err)
		}

		activity := &models.PlaylistActivity{
			PlaylistID: playlistID,
			SongID:     req.SongID,
			UserID:     userID,
			Action:     models.ActivityActionAdd,
			Time:       utils.UTCNow(),
		}
		if err := p.activityRepo.Append(txCtx, activity); err != nil {
			return NewBusinessError("ADD_PLAYLIST_SONG_FAILED", "Failed to record activity", err)
		}
		return nil
	})
}

// DeleteSongFromPlaylist removes a song from a playlist the user can
// access and appends a "delete" entry only when a row was removed
func (p *PlaylistFlowImpl) DeleteSongFromPlaylist(ctx context.Context, playlistID, userID string, req *dto.PlaylistSongRequest, metadata *ClientMetadata) error {
	if _, err := verifyPlaylistAccess(ctx, p.playlistRepo, p.collabRepo, playlistID, userID); err != nil {
		return err
	}

	return repository.WithTransaction(ctx, p.db, func(txCtx context.Context) error {
		rows, err := p.memberRepo.DeleteByPair(txCtx, playlistID, req.SongID)
		if err != nil {
			return NewBusinessError("DELETE_PLAYLIST_SONG_FAILED", "Failed to remove song from playlist", err)
		}
		if rows == 0 {
			return ErrSongNotInPlaylist
		}

		activity := &models.PlaylistActivity{
			PlaylistID: playlistID,
			SongID:     req.SongID,
			UserID:     userID,
			Action:     models.ActivityActionDelete,
			Time:       utils.UTCNow(),
		}
		if err := p.activityRepo.Append(txCtx, activity); err != nil {
			return NewBusinessError("DELETE_PLAYLIST_SONG_FAILED", "Failed to record activity", err)
		}
		return nil
	})
}

// GetSongsFromPlaylist returns the playlist with the owner's username and
// its member songs. A playlist without songs yields an empty slice.
func (p *PlaylistFlowImpl) GetSongsFromPlaylist(ctx context.Context, playlistID, userID string, metadata *ClientMetadata) (*dto.PlaylistWithSongs, error) {
	playlist, err := verifyPlaylistAccess(ctx, p.playlistRepo, p.collabRepo, playlistID, userID)
	if err != nil {
		return nil, err
	}

	owner, err := getUser(ctx, p.userRepo, playlist.OwnerID)
	if err != nil {
		return nil, err
	}

	songs, err := p.songRepo.ByPlaylistID(ctx, playlistID)
	if err != nil {
		return nil, NewBusinessError("GET_PLAYLIST_SONGS_FAILED", "Failed to load playlist songs", err)
	}

	return &dto.PlaylistWithSongs{
		ID:       playlist.ID,
		Name:     playlist.Name,
		Username: owner.Username,
		Songs:    ToSongListItems(songs),
	}, nil
}

// GetActivities returns the append-only activity log of a playlist,
// oldest entry first
func (p *PlaylistFlowImpl) GetActivities(ctx context.Context, playlistID, userID string, metadata *ClientMetadata) (*dto.ActivitiesData, error) {
	if _, err := verifyPlaylistAccess(ctx, p.playlistRepo, p.collabRepo, playlistID, userID); err != nil {
		return nil, err
	}

	entries, err := p.activityRepo.ByPlaylistID(ctx, playlistID)
	if err != nil {
		return nil, NewBusinessError("GET_ACTIVITIES_FAILED", "Failed to load activities", err)
	}

	return &dto.ActivitiesData{
		PlaylistID: playlistID,
		Activities: ToActivityItems(entries),
	}, nil
}
