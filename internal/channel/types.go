package channel

import (
	"time"

	"auditor-srv/internal/model"
)

// Channel names, used as AlertEvent targets and in delivery logs.
const (
	NameDiscord  = "discord"
	NameTelegram = "telegram"
	NameTracker  = "tracker"
)

// Field is one labeled value in a rendered message. Inline hints that the
// destination may place it side by side with its neighbors.
type Field struct {
	Label  string
	Value  string
	Inline bool
}

// TaskSpec asks the task-tracker channel to create a follow-up task.
// Messages delivered to other channels ignore it.
type TaskSpec struct {
	Title       string
	Description string
	DueDate     *time.Time
	LeadID      string
}

// Message is one rendered notification, formatted per channel at delivery
// time. The dispatcher only ever sees the uniform DeliveryResult.
type Message struct {
	Kind      model.AlertKind
	Severity  model.Severity
	Title     string
	Body      string
	Fields    []Field
	Footer    string
	Timestamp time.Time
	Task      *TaskSpec
}
