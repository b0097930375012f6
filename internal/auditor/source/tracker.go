package source

import (
	"context"

	"auditor-srv/internal/auditor"
	"auditor-srv/internal/model"
	pkgLog "auditor-srv/pkg/log"
	"auditor-srv/pkg/tracker"
)

// TrackerSource adapts the tracker API client into the TaskSource the
// overdue rule consumes.
type TrackerSource struct {
	l      pkgLog.Logger
	client tracker.ITracker
}

var _ auditor.TaskSource = &TrackerSource{}

func NewTrackerSource(l pkgLog.Logger, client tracker.ITracker) *TrackerSource {
	return &TrackerSource{l: l, client: client}
}

func (s *TrackerSource) ListOpenTasks(ctx context.Context) ([]model.TrackedTask, error) {
	tasks, err := s.client.ListOpenTasks(ctx)
	if err != nil {
		s.l.Errorf(ctx, "internal.auditor.source.ListOpenTasks: %v", err)
		return nil, err
	}

	out := make([]model.TrackedTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, model.TrackedTask{
			ID:      t.ID,
			LeadID:  t.LeadID,
			Title:   t.Title,
			Status:  model.TaskStatus(t.Status),
			DueDate: t.DueDate,
			URL:     t.URL,
		})
	}
	return out, nil
}
