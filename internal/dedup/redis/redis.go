package redis

import (
	"context"
	"time"

	"auditor-srv/internal/dedup"
	"auditor-srv/internal/model"
	pkgLog "auditor-srv/pkg/log"
	pkgRedis "auditor-srv/pkg/redis"
)

const (
	keyPrefix = "auditor:dedup:"

	// dayBucketTTL keeps day-bucket keys around long enough to cover clock
	// skew across a day boundary, then lets Redis expire them.
	dayBucketTTL = 48 * time.Hour
)

// Tracker is a Redis-backed dedup store. Fired state survives process
// restarts, so a crash between cycles cannot re-alert one-shot keys.
type Tracker struct {
	l     pkgLog.Logger
	redis pkgRedis.IRedis
}

var _ dedup.Tracker = &Tracker{}

func New(l pkgLog.Logger, redis pkgRedis.IRedis) *Tracker {
	return &Tracker{l: l, redis: redis}
}

func (t *Tracker) ShouldFire(ctx context.Context, key string, bucket model.DedupBucket, now time.Time) (bool, error) {
	exists, err := t.redis.Exists(ctx, keyPrefix+dedup.ScopedKey(key, bucket, now))
	if err != nil {
		t.l.Errorf(ctx, "internal.dedup.redis.ShouldFire.Exists: %v", err)
		return false, err
	}
	return !exists, nil
}

func (t *Tracker) RecordFired(ctx context.Context, key string, bucket model.DedupBucket, at time.Time) error {
	var ttl time.Duration
	if bucket == model.DedupBucketDay {
		ttl = dayBucketTTL
	}
	err := t.redis.Set(ctx, keyPrefix+dedup.ScopedKey(key, bucket, at), at.UTC().Format(time.RFC3339), ttl)
	if err != nil {
		t.l.Errorf(ctx, "internal.dedup.redis.RecordFired.Set: %v", err)
	}
	return err
}
