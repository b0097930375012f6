package dedup

import (
	"context"
	"time"

	"auditor-srv/internal/model"
)

// Tracker remembers which dedup keys have already produced a successful
// delivery. ShouldFire is consulted before rendering/dispatch; RecordFired
// is called only after at least one channel delivery succeeds, so a total
// delivery failure leaves the key eligible for the next cycle.
type Tracker interface {
	ShouldFire(ctx context.Context, key string, bucket model.DedupBucket, now time.Time) (bool, error)
	RecordFired(ctx context.Context, key string, bucket model.DedupBucket, at time.Time) error
}

// ScopedKey namespaces a dedup key with its time bucket. Day buckets use
// the UTC calendar date so "once per day" means once per UTC day.
func ScopedKey(key string, bucket model.DedupBucket, t time.Time) string {
	if bucket == model.DedupBucketDay {
		return key + ":" + t.UTC().Format("2006-01-02")
	}
	return key
}
