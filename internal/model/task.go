package model

import "time"

// TaskStatus is the tracker-side status of a follow-up task.
type TaskStatus string

const (
	TaskStatusOpen   TaskStatus = "open"
	TaskStatusClosed TaskStatus = "closed"
)

// TrackedTask is a follow-up task sourced from the task tracker.
type TrackedTask struct {
	ID      string     `json:"id"`
	LeadID  string     `json:"lead_id,omitempty"`
	Title   string     `json:"title"`
	Status  TaskStatus `json:"status"`
	DueDate *time.Time `json:"due_date,omitempty"`
	URL     string     `json:"url,omitempty"`
}

// IsOverdue reports whether the task is open with a due date in the past.
func (t TrackedTask) IsOverdue(now time.Time) bool {
	return t.Status == TaskStatusOpen && t.DueDate != nil && t.DueDate.Before(now)
}
