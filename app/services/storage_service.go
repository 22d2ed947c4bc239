// Package services provides external service integrations and technical concerns like tokens, caching, and messaging
package services

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService stores uploaded objects and returns their public URLs
type StorageService interface {
	Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error)
	EnsureBucket(ctx context.Context) error
}

// MinioStorageService implements StorageService against an S3-compatible store
type MinioStorageService struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStorageService creates a storage service for the given endpoint and bucket.
// publicURL is the externally reachable base used to build object URLs.
func NewMinioStorageService(endpoint, accessKey, secretKey, bucket, publicURL string, useSSL bool) (StorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &MinioStorageService{
		client:    client,
		bucket:    bucket,
		publicURL: publicURL,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *MinioStorageService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Upload stores the object and returns its public URL
func (s *MinioStorageService) Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store object %s: %w", objectName, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}
