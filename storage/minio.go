package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/TemaXo00/musium-web-application/config"
	"github.com/TemaXo00/musium-web-application/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageStore uploads avatar and cover images to MinIO and hands back the
// public URL that ends up in avatar_url / entity avatar fields.
type ImageStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewImageStore connects to MinIO and makes sure the bucket exists.
func NewImageStore(cfg *config.Config) (*ImageStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("Created storage bucket", logger.String("bucket", cfg.MinioBucket))
	}

	return &ImageStore{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: cfg.MinioPublicURL,
	}, nil
}

// UploadImage stores an image under a random object name, keeping the
// original extension, and returns its public URL.
func (s *ImageStore) UploadImage(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (string, error) {
	objectName := fmt.Sprintf("images/%s%s", uuid.NewString(), path.Ext(filename))

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	logger.Debug("Uploaded image",
		logger.String("bucket", s.bucket),
		logger.String("object", objectName))

	return fmt.Sprintf("%s/%s", s.publicURL, objectName), nil
}
