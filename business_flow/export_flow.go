// Package businessflow contains the core business logic and use cases for playlist exports
package businessflow

import (
	"context"

	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/app/services"
	"github.com/openmusic/api/repository"
	"gorm.io/gorm"
)

// ExportQueueName is the durable queue the export worker consumes
const ExportQueueName = "export:playlists"

// ExportFlow defines the enqueue side of playlist exports
type ExportFlow interface {
	ExportPlaylist(ctx context.Context, playlistID, requesterID string, req *dto.ExportRequest, metadata *ClientMetadata) error
}

// ExportFlowImpl implements ExportFlow
type ExportFlowImpl struct {
	playlistRepo repository.PlaylistRepository
	producer     services.ProducerService
	queueName    string
	db           *gorm.DB
}

// NewExportFlow constructs an ExportFlow publishing to queueName
func NewExportFlow(
	playlistRepo repository.PlaylistRepository,
	producer services.ProducerService,
	queueName string,
	db *gorm.DB,
) ExportFlow {
	if queueName == "" {
		queueName = ExportQueueName
	}
	return &ExportFlowImpl{
		playlistRepo: playlistRepo,
		producer:     producer,
		queueName:    queueName,
		db:           db,
	}
}

// ExportPlaylist publishes an export request for a playlist the requester
// owns. The request is fire-and-forget: the caller gets an acknowledgement
// that the message is queued, not that the email was sent.
func (e *ExportFlowImpl) ExportPlaylist(ctx context.Context, playlistID, requesterID string, req *dto.ExportRequest, metadata *ClientMetadata) error {
	if _, err := verifyPlaylistOwner(ctx, e.playlistRepo, playlistID, requesterID); err != nil {
		return err
	}

	message := dto.ExportMessage{
		PlaylistID:  playlistID,
		TargetEmail: req.TargetEmail,
	}
	if err := e.producer.Publish(ctx, e.queueName, message); err != nil {
		return NewBusinessError("EXPORT_PLAYLIST_FAILED", "Failed to queue export", err)
	}
	return nil
}
