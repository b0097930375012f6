package memory

import (
	"context"
	"sync"
	"time"

	"auditor-srv/internal/dedup"
	"auditor-srv/internal/model"
)

// Tracker is an in-process dedup store. State lives for the lifetime of the
// process only: after a restart, previously fired one-shot alerts may fire
// again. Deployments that need durability configure the Redis backend.
type Tracker struct {
	mu    sync.Mutex
	fired map[string]time.Time
}

var _ dedup.Tracker = &Tracker{}

func New() *Tracker {
	return &Tracker{fired: make(map[string]time.Time)}
}

func (t *Tracker) ShouldFire(_ context.Context, key string, bucket model.DedupBucket, now time.Time) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, seen := t.fired[dedup.ScopedKey(key, bucket, now)]
	return !seen, nil
}

func (t *Tracker) RecordFired(_ context.Context, key string, bucket model.DedupBucket, at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fired[dedup.ScopedKey(key, bucket, at)] = at
	t.pruneLocked(at)
	return nil
}

// pruneLocked drops day-bucket entries older than two days so the map does
// not grow without bound on a long-running process.
func (t *Tracker) pruneLocked(now time.Time) {
	cutoff := now.Add(-48 * time.Hour)
	for k, at := range t.fired {
		if len(k) > 10 && k[len(k)-11] == ':' && at.Before(cutoff) {
			delete(t.fired, k)
		}
	}
}
