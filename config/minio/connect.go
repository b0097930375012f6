package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auditor-srv/config"
	miniopkg "auditor-srv/pkg/minio"
)

const defaultConnectTimeout = 5 * time.Second

var (
	instance miniopkg.IMinIO
	mu       sync.Mutex
)

// Connect builds the MinIO client and verifies the connection. Returns the
// existing instance if already connected.
func Connect(ctx context.Context, cfg config.MinIOConfig) (miniopkg.IMinIO, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	impl, err := miniopkg.New(miniopkg.Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		UseSSL:    cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	if err := impl.HealthCheck(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	if err := impl.EnsureBucket(connectCtx, cfg.Bucket); err != nil {
		return nil, err
	}

	instance = impl
	return instance, nil
}

// Disconnect resets the singleton.
func Disconnect() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}
