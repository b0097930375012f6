package usecase

import (
	"context"
	"sync"
	"time"

	"auditor-srv/internal/model"
	postgresPkg "auditor-srv/pkg/postgre"
)

// dispatch delivers one due alert to each of its target channels
// concurrently and returns the populated event. Channels share no mutable
// state, so per-channel failures are logged individually and never block
// the others.
func (uc *implUseCase) dispatch(ctx context.Context, cand candidate) model.AlertEvent {
	ev := model.AlertEvent{
		ID:        postgresPkg.NewUUID(),
		Kind:      cand.kind,
		RuleID:    cand.ruleID,
		LeadID:    cand.leadID,
		DedupKey:  cand.dedupKey,
		Bucket:    cand.bucket,
		Targets:   cand.targets,
		Results:   make(map[string]model.DeliveryResult, len(cand.targets)),
		CreatedAt: uc.clock().UTC(),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, name := range cand.targets {
		ch := uc.channelByName(name)
		if ch == nil {
			uc.l.Warnf(ctx, "internal.auditor.usecase.dispatch: unknown target channel %q", name)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()

			deliverCtx, cancel := context.WithTimeout(ctx, uc.cfg.DeliveryTimeout)
			defer cancel()

			res := ch.Deliver(deliverCtx, cand.msg)
			if !res.OK {
				uc.l.Errorf(ctx, "internal.auditor.usecase.dispatch: event %s delivery to %s failed: %s",
					ev.ID, ch.Name(), res.Reason)
			}

			mu.Lock()
			ev.Results[ch.Name()] = res
			mu.Unlock()
		}()
	}
	wg.Wait()

	return ev
}

// recordIfFired updates dedup state when at least one channel accepted the
// event. On total failure the key stays unfired so the next cycle retries.
// Tracker write errors are logged and swallowed: alerting twice is better
// than never.
func (uc *implUseCase) recordIfFired(ctx context.Context, ev model.AlertEvent, at time.Time) {
	if !ev.Fired() {
		return
	}
	if err := uc.dedup.RecordFired(ctx, ev.DedupKey, ev.Bucket, at); err != nil {
		uc.l.Errorf(ctx, "internal.auditor.usecase.recordIfFired: %v", err)
	}
}
