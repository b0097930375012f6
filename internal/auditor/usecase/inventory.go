package usecase

import (
	"context"
	"fmt"

	"auditor-srv/internal/auditor"
	"auditor-srv/internal/lead/repository"
	"auditor-srv/internal/model"
)

// Inventory reports current lead counts per status and per digest score
// threshold, straight from the store.
func (uc *implUseCase) Inventory(ctx context.Context) (auditor.InventorySummary, error) {
	summary := auditor.InventorySummary{
		ByStatus:  make(map[model.LeadStatus]int),
		FetchedAt: uc.clock().UTC(),
	}

	total, err := uc.repo.Count(ctx, repository.Filter{})
	if err != nil {
		uc.l.Errorf(ctx, "internal.auditor.usecase.Inventory.Count: %v", err)
		return auditor.InventorySummary{}, err
	}
	summary.Total = total

	for _, status := range []model.LeadStatus{
		model.LeadStatusNew,
		model.LeadStatusContacted,
		model.LeadStatusQualified,
		model.LeadStatusClosed,
		model.LeadStatusLost,
	} {
		count, err := uc.repo.Count(ctx, repository.Filter{Status: status})
		if err != nil {
			uc.l.Errorf(ctx, "internal.auditor.usecase.Inventory.Count(%s): %v", status, err)
			return auditor.InventorySummary{}, err
		}
		summary.ByStatus[status] = count
	}

	for _, th := range uc.cfg.DigestBuckets {
		count, err := uc.repo.Count(ctx, repository.Filter{Status: model.LeadStatusNew, MinScore: th})
		if err != nil {
			uc.l.Errorf(ctx, "internal.auditor.usecase.Inventory.Count(score>=%d): %v", th, err)
			return auditor.InventorySummary{}, err
		}
		summary.Thresholds = append(summary.Thresholds, model.BucketCount{Threshold: th, Count: count})
	}

	return summary, nil
}

// MarkLeadStatus writes a status change through to the lead store. The
// status a lead lands in also decides whether the hot-lead rule keeps
// considering it, so this is the acknowledge path for hot-lead alerts.
func (uc *implUseCase) MarkLeadStatus(ctx context.Context, leadID string, status model.LeadStatus) error {
	if err := uc.repo.UpdateStatus(ctx, leadID, status); err != nil {
		uc.l.Errorf(ctx, "internal.auditor.usecase.MarkLeadStatus: %v", err)
		return err
	}
	uc.l.Infof(ctx, "internal.auditor.usecase.MarkLeadStatus: lead %s marked %s", leadID, status)
	return nil
}

// SendTestMessage pushes an online notice through every chat channel and
// reports the first failure, if any.
func (uc *implUseCase) SendTestMessage(ctx context.Context) error {
	now := uc.clock().UTC()
	msg := uc.renderTest(now)

	var firstErr error
	for _, name := range uc.chatTargets() {
		ch := uc.channelByName(name)
		if ch == nil {
			continue
		}
		deliverCtx, cancel := context.WithTimeout(ctx, uc.cfg.DeliveryTimeout)
		res := ch.Deliver(deliverCtx, msg)
		cancel()

		if !res.OK {
			uc.l.Errorf(ctx, "internal.auditor.usecase.SendTestMessage: %s failed: %s", name, res.Reason)
			if firstErr == nil {
				firstErr = fmt.Errorf("test message to %s failed: %s", name, res.Reason)
			}
			continue
		}
		uc.l.Infof(ctx, "internal.auditor.usecase.SendTestMessage: delivered to %s in %s", name, res.Elapsed)
	}
	return firstErr
}
