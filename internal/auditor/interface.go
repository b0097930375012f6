package auditor

import (
	"context"

	"auditor-srv/internal/model"
)

// UseCase drives the audit loop: fetch leads, evaluate rules, fan alerts
// out to channels and record dedup state.
type UseCase interface {
	// Run blocks, executing one cycle per poll interval until ctx is
	// cancelled. Cycles never overlap.
	Run(ctx context.Context) error

	// RunCycle executes a single fetch/evaluate/dispatch/record pass. It is
	// also the manual-trigger entry point; ErrCycleInProgress is returned
	// when a scheduled cycle is already running.
	RunCycle(ctx context.Context) (model.CycleReport, error)

	// SendTestMessage pushes an online notice through every chat channel.
	SendTestMessage(ctx context.Context) error

	// Inventory reports current lead counts per status and score threshold.
	Inventory(ctx context.Context) (InventorySummary, error)

	// MarkLeadStatus updates a lead's pipeline status in the store, e.g.
	// to acknowledge a hot-lead alert by marking the lead contacted.
	MarkLeadStatus(ctx context.Context, leadID string, status model.LeadStatus) error
}

// TaskSource supplies the open follow-up tasks the overdue rule inspects.
type TaskSource interface {
	ListOpenTasks(ctx context.Context) ([]model.TrackedTask, error)
}

// Archiver persists delivered digest payloads for audit history.
type Archiver interface {
	ArchiveDigest(ctx context.Context, date string, payload []byte) error
}
