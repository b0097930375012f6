package usecase

import (
	"context"
	"fmt"
	"time"

	"auditor-srv/internal/auditor"
	"auditor-srv/internal/channel"
	"auditor-srv/internal/model"
)

// candidate is an alert a rule considers due, before dedup is consulted.
type candidate struct {
	ruleID   string
	kind     model.AlertKind
	leadID   string
	dedupKey string
	bucket   model.DedupBucket
	targets  []string
	msg      channel.Message

	// digest carries the computed payload for archiving after delivery.
	digest *model.DigestCounts
}

// evaluate runs every rule against the snapshot and returns all due
// candidates. Rules are independent: several may fire for the same lead in
// the same cycle, and a lead that breaks one rule's evaluation is skipped
// for that rule only.
func (uc *implUseCase) evaluate(ctx context.Context, leads []model.Lead, tasks []model.TrackedTask, now time.Time) []candidate {
	var out []candidate
	out = append(out, uc.evaluateHotLeads(ctx, leads, now)...)
	out = append(out, uc.evaluateOverdueTasks(tasks, now)...)
	if c := uc.evaluateDigest(leads, now); c != nil {
		out = append(out, *c)
	}
	return out
}

// evaluateHotLeads fires for every new lead at or above the score
// threshold. The dedup key includes the score decade, so a lead that is
// reset to new and later re-qualifies in a higher decade alerts again,
// while the same crossing never re-fires.
func (uc *implUseCase) evaluateHotLeads(ctx context.Context, leads []model.Lead, now time.Time) []candidate {
	var out []candidate
	for _, l := range leads {
		if err := l.Validate(); err != nil {
			uc.l.Warnf(ctx, "internal.auditor.usecase.evaluateHotLeads: skipping lead: %v", err)
			continue
		}
		if l.Status != model.LeadStatusNew || l.Score < uc.cfg.HotLeadThreshold {
			continue
		}
		out = append(out, candidate{
			ruleID:   auditor.RuleHotLead,
			kind:     model.AlertKindHotLead,
			leadID:   l.ID,
			dedupKey: fmt.Sprintf("%s:%s:d%d", auditor.RuleHotLead, l.ID, l.ScoreDecade()),
			bucket:   model.DedupBucketNone,
			targets:  uc.channelNames(),
			msg:      uc.renderHotLead(l, now),
		})
	}
	return out
}

// evaluateOverdueTasks fires once per calendar day for every open task past
// its due date.
func (uc *implUseCase) evaluateOverdueTasks(tasks []model.TrackedTask, now time.Time) []candidate {
	var out []candidate
	for _, t := range tasks {
		if !t.IsOverdue(now) {
			continue
		}
		out = append(out, candidate{
			ruleID:   auditor.RuleOverdueTask,
			kind:     model.AlertKindOverdueTask,
			leadID:   t.LeadID,
			dedupKey: fmt.Sprintf("%s:%s", auditor.RuleOverdueTask, t.ID),
			bucket:   model.DedupBucketDay,
			targets:  uc.chatTargets(),
			msg:      uc.renderOverdueTask(t, now),
		})
	}
	return out
}

// evaluateDigest fires once per UTC day at or after the configured boundary
// hour, independent of any single lead.
func (uc *implUseCase) evaluateDigest(leads []model.Lead, now time.Time) *candidate {
	if now.UTC().Hour() < uc.cfg.DigestHourUTC {
		return nil
	}
	counts := computeDigest(leads, uc.cfg.DigestBuckets, now)
	return &candidate{
		ruleID:   auditor.RuleDailyDigest,
		kind:     model.AlertKindDailyDigest,
		dedupKey: auditor.RuleDailyDigest,
		bucket:   model.DedupBucketDay,
		targets:  uc.chatTargets(),
		msg:      uc.renderDigest(counts, now),
		digest:   &counts,
	}
}

// healthCandidate builds the store-health alert, deduped per day so an
// outage spanning many cycles produces a single notification.
func (uc *implUseCase) healthCandidate(reason string, now time.Time) candidate {
	return candidate{
		ruleID:   auditor.RuleHealthCheck,
		kind:     model.AlertKindHealthCheck,
		dedupKey: auditor.RuleHealthCheck,
		bucket:   model.DedupBucketDay,
		targets:  uc.chatTargets(),
		msg:      uc.renderHealth(reason, now),
	}
}
