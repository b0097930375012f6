package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auditor-srv/internal/auditor"
	"auditor-srv/internal/lead/repository"
	"auditor-srv/internal/model"
	postgresPkg "auditor-srv/pkg/postgre"
)

// Run executes one cycle immediately, then one per poll interval until ctx
// is cancelled. A tick that arrives while the previous cycle is still
// dispatching is skipped rather than queued, so dedup keys are never
// evaluated concurrently.
func (uc *implUseCase) Run(ctx context.Context) error {
	uc.l.Infof(ctx, "internal.auditor.usecase.Run: starting audit loop (interval %s)", uc.cfg.PollInterval)

	ticker := time.NewTicker(uc.cfg.PollInterval)
	defer ticker.Stop()

	uc.runScheduled(ctx)
	for {
		select {
		case <-ctx.Done():
			uc.l.Info(ctx, "internal.auditor.usecase.Run: audit loop stopped")
			return nil
		case <-ticker.C:
			uc.runScheduled(ctx)
		}
	}
}

func (uc *implUseCase) runScheduled(ctx context.Context) {
	if _, err := uc.RunCycle(ctx); err != nil {
		if errors.Is(err, auditor.ErrCycleInProgress) {
			uc.l.Warn(ctx, "internal.auditor.usecase.Run: previous cycle still running, skipping tick")
			return
		}
		uc.l.Errorf(ctx, "internal.auditor.usecase.Run: cycle failed: %v", err)
	}
}

// RunCycle performs one fetch/evaluate/dispatch/record pass.
func (uc *implUseCase) RunCycle(ctx context.Context) (model.CycleReport, error) {
	if !uc.cycleMu.TryLock() {
		return model.CycleReport{}, auditor.ErrCycleInProgress
	}
	defer uc.cycleMu.Unlock()

	now := uc.clock().UTC()
	report := model.CycleReport{
		CycleID:      postgresPkg.NewUUID(),
		StartedAt:    now,
		StoreHealthy: true,
	}

	leads, err := uc.repo.List(ctx, repository.ListOptions{Limit: uc.cfg.FetchLimit})
	if err != nil {
		// Store outage: skip straight to the health alert, nothing else can
		// be evaluated this cycle.
		uc.l.Errorf(ctx, "internal.auditor.usecase.RunCycle: lead fetch failed: %v", err)
		report.StoreHealthy = false
		uc.processCandidates(ctx, []candidate{uc.healthCandidate(err.Error(), now)}, &report, now)
		return uc.finishReport(ctx, report), nil
	}
	report.LeadsFetched = len(leads)

	var cands []candidate
	if reason, anomalous := uc.observeLeadCount(len(leads)); anomalous {
		report.StoreHealthy = false
		cands = append(cands, uc.healthCandidate(reason, now))
	}

	var tasks []model.TrackedTask
	if uc.tasks != nil {
		tasks, err = uc.tasks.ListOpenTasks(ctx)
		if err != nil {
			// Tracker trouble only disables the overdue rule this cycle.
			uc.l.Warnf(ctx, "internal.auditor.usecase.RunCycle: task listing failed, skipping overdue rule: %v", err)
			tasks = nil
		}
	}

	cands = append(cands, uc.evaluate(ctx, leads, tasks, now)...)
	uc.processCandidates(ctx, cands, &report, now)

	return uc.finishReport(ctx, report), nil
}

// observeLeadCount records the latest successful observation and reports
// whether an unexpected zero-lead snapshot was seen.
func (uc *implUseCase) observeLeadCount(count int) (string, bool) {
	uc.prevMu.Lock()
	defer uc.prevMu.Unlock()

	anomalous := count == 0 && uc.prevObserved && uc.prevCount > 0
	reason := ""
	if anomalous {
		reason = fmt.Sprintf("lead store returned zero leads (previously observed %d)", uc.prevCount)
	}
	uc.prevCount = count
	uc.prevObserved = true
	return reason, anomalous
}

// processCandidates runs the dedup gate and dispatch for each candidate.
func (uc *implUseCase) processCandidates(ctx context.Context, cands []candidate, report *model.CycleReport, now time.Time) {
	for _, cand := range cands {
		report.Evaluated++

		if len(cand.targets) == 0 {
			uc.l.Warnf(ctx, "internal.auditor.usecase.processCandidates: rule %s has no target channels", cand.ruleID)
			continue
		}

		ok, err := uc.dedup.ShouldFire(ctx, cand.dedupKey, cand.bucket, now)
		if err != nil {
			// Fail open: a broken tracker must degrade to duplicate alerts,
			// not to silence.
			uc.l.Errorf(ctx, "internal.auditor.usecase.processCandidates: dedup check failed for %s: %v", cand.dedupKey, err)
			ok = true
		}
		if !ok {
			report.Suppressed++
			continue
		}

		ev := uc.dispatch(ctx, cand)
		report.Events = append(report.Events, ev)

		if !ev.Fired() {
			report.Failed++
			continue
		}
		report.Fired++
		uc.recordIfFired(ctx, ev, now)

		if cand.kind == model.AlertKindDailyDigest {
			uc.archiveDigest(ctx, cand, now)
		}
	}
}

// archiveDigest stores the delivered digest payload when an archiver is
// configured. Archive failure is logged only; the digest already reached
// its channels.
func (uc *implUseCase) archiveDigest(ctx context.Context, cand candidate, now time.Time) {
	if uc.archiver == nil || cand.digest == nil {
		return
	}
	payload, err := json.Marshal(cand.digest)
	if err != nil {
		uc.l.Errorf(ctx, "internal.auditor.usecase.archiveDigest: marshal: %v", err)
		return
	}
	if err := uc.archiver.ArchiveDigest(ctx, cand.digest.Date, payload); err != nil {
		uc.l.Errorf(ctx, "internal.auditor.usecase.archiveDigest: %v", err)
	}
}

func (uc *implUseCase) finishReport(ctx context.Context, report model.CycleReport) model.CycleReport {
	report.FinishedAt = uc.clock().UTC()
	uc.l.Infof(ctx, "internal.auditor.usecase.RunCycle: cycle %s done: leads=%d evaluated=%d fired=%d suppressed=%d failed=%d healthy=%v",
		report.CycleID, report.LeadsFetched, report.Evaluated, report.Fired, report.Suppressed, report.Failed, report.StoreHealthy)
	return report
}
