package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrEndpointRequired = errors.New("minio: endpoint is required")

// IMinIO is the object-storage client used for archiving digest reports.
type IMinIO interface {
	EnsureBucket(ctx context.Context, bucket string) error
	PutJSON(ctx context.Context, bucket, objectName string, data []byte) error
	HealthCheck(ctx context.Context) error
}

// Config holds MinIO connection configuration.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type minioImpl struct {
	client *minio.Client
}

// New builds a MinIO client. The connection is verified lazily on first use.
func New(cfg Config) (IMinIO, error) {
	if cfg.Endpoint == "" {
		return nil, ErrEndpointRequired
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return &minioImpl{client: client}, nil
}

func (m *minioImpl) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", bucket, err)
	}
	return nil
}

func (m *minioImpl) PutJSON(ctx context.Context, bucket, objectName string, data []byte) error {
	_, err := m.client.PutObject(ctx, bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to put object %q: %w", objectName, err)
	}
	return nil
}

func (m *minioImpl) HealthCheck(ctx context.Context) error {
	if _, err := m.client.ListBuckets(ctx); err != nil {
		return fmt.Errorf("MinIO health check failed: %w", err)
	}
	return nil
}
