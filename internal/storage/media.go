package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// thumbnailURLTTL is how long a presigned thumbnail link stays valid.
const thumbnailURLTTL = 7 * 24 * time.Hour

// MediaStorage keeps portfolio thumbnails in an object bucket. Video
// itself is hosted externally; only the preview images live here.
type MediaStorage struct {
	client *minio.Client
	bucket string
}

// NewMediaStorage connects to MinIO and ensures the media bucket exists.
func NewMediaStorage(cfg *MinIOConfig) (*MediaStorage, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &MediaStorage{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// tolerate a bucket that already exists
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// UploadThumbnail stores one preview image and returns its object key.
// Only image content types are accepted.
func (s *MediaStorage) UploadThumbnail(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unsupported thumbnail content type %q", contentType)
	}
	key := "thumbnails/" + uuid.NewString() + path.Ext(filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return key, nil
}

// ThumbnailURL returns a presigned GET URL for a stored thumbnail.
func (s *MediaStorage) ThumbnailURL(ctx context.Context, key string) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, thumbnailURLTTL, nil)
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}

// RemoveThumbnail deletes a stored thumbnail, for when a portfolio item
// is removed or its preview replaced.
func (s *MediaStorage) RemoveThumbnail(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
