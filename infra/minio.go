package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tnqbao/gau-media-service/config"
)

// MinioClient talks to the source bucket where clients PUT raw files before
// the transcoding stack picks them up. Delivery never reads this bucket.
type MinioClient struct {
	Client       *minio.Client
	SourceBucket string
	UploadExpire time.Duration
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}
	if cfg.Minio.AccessKey == "" || cfg.Minio.SecretKey == "" {
		panic("MinIO credentials are not configured")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	return &MinioClient{
		Client:       client,
		SourceBucket: cfg.Minio.SourceBucket,
		UploadExpire: time.Duration(cfg.Minio.UploadExpire) * time.Second,
	}
}

// EnsureSourceBucket creates the source bucket if it does not exist yet.
func (m *MinioClient) EnsureSourceBucket(ctx context.Context) error {
	exists, err := m.Client.BucketExists(ctx, m.SourceBucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.Client.MakeBucket(ctx, m.SourceBucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// PresignUpload returns a time-limited PUT URL for the given storage key on
// the source bucket.
func (m *MinioClient) PresignUpload(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key cannot be empty")
	}
	presigned, err := m.Client.PresignedPutObject(ctx, m.SourceBucket, key, m.UploadExpire)
	if err != nil {
		return "", fmt.Errorf("failed to presign upload URL: %w", err)
	}
	return presigned.String(), nil
}

// DeleteObjectsWithPrefix removes every source object below the prefix. Used
// to drop stale raw files when an upload is re-initiated.
func (m *MinioClient) DeleteObjectsWithPrefix(ctx context.Context, prefix string) error {
	objectCh := m.Client.ListObjects(ctx, m.SourceBucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	objectsCh := make(chan minio.ObjectInfo)

	go func() {
		defer close(objectsCh)
		for obj := range objectCh {
			if obj.Err != nil {
				continue
			}
			objectsCh <- obj
		}
	}()

	errorCh := m.Client.RemoveObjects(ctx, m.SourceBucket, objectsCh, minio.RemoveObjectsOptions{})

	for err := range errorCh {
		if err.Err != nil {
			return fmt.Errorf("failed to delete object %s: %w", err.ObjectName, err.Err)
		}
	}

	return nil
}
