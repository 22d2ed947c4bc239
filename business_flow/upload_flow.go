// Package businessflow contains the core business logic and use cases for cover uploads
package businessflow

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/app/services"
	"github.com/openmusic/api/repository"
	"github.com/openmusic/api/utils"
	"gorm.io/gorm"
)

// UploadFlow defines the album cover upload operation
type UploadFlow interface {
	UploadAlbumCover(ctx context.Context, albumID, filename, contentType string, reader io.Reader, size int64, metadata *ClientMetadata) (*dto.CoverUploadData, error)
}

// UploadFlowImpl implements UploadFlow
type UploadFlowImpl struct {
	albumRepo repository.AlbumRepository
	storage   services.StorageService
	maxBytes  int64
	db        *gorm.DB
}

// NewUploadFlow constructs an UploadFlow rejecting files above maxBytes
func NewUploadFlow(albumRepo repository.AlbumRepository, storage services.StorageService, maxBytes int64, db *gorm.DB) UploadFlow {
	if maxBytes <= 0 {
		maxBytes = 512 * 1024
	}
	return &UploadFlowImpl{
		albumRepo: albumRepo,
		storage:   storage,
		maxBytes:  maxBytes,
		db:        db,
	}
}

// UploadAlbumCover stores the image in object storage and writes the
// resulting public URL to the album row. Re-uploads get a fresh object
// name so stale CDN entries never mask the new cover.
func (u *UploadFlowImpl) UploadAlbumCover(ctx context.Context, albumID, filename, contentType string, reader io.Reader, size int64, metadata *ClientMetadata) (*dto.CoverUploadData, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedImageType
	}
	if size > u.maxBytes {
		return nil, ErrCoverTooLarge
	}

	if _, err := getAlbum(ctx, u.albumRepo, albumID); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("covers/%s/%d%s", albumID, utils.UTCNow().UnixNano(), filepath.Ext(filename))
	coverURL, err := u.storage.Upload(ctx, objectName, contentType, reader, size)
	if err != nil {
		return nil, NewBusinessError("UPLOAD_COVER_FAILED", "Failed to store cover", err)
	}

	rows, err := u.albumRepo.SetCoverURL(ctx, albumID, coverURL)
	if err != nil {
		return nil, NewBusinessError("UPLOAD_COVER_FAILED", "Failed to update album cover", err)
	}
	if rows == 0 {
		return nil, ErrAlbumNotFound
	}

	return &dto.CoverUploadData{CoverURL: coverURL}, nil
}
