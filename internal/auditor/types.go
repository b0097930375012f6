package auditor

import (
	"time"

	"auditor-srv/internal/model"
)

// Rule IDs. The rule set is static configuration built at startup.
const (
	RuleHotLead     = "hot-lead"
	RuleOverdueTask = "overdue-task"
	RuleDailyDigest = "daily-digest"
	RuleHealthCheck = "health-check"
)

// Config tunes the rule set and the audit loop.
type Config struct {
	PollInterval     time.Duration
	DeliveryTimeout  time.Duration
	HotLeadThreshold int
	DigestBuckets    []int
	DigestHourUTC    int
	FetchLimit       int
}

// InventorySummary is the list-current-inventory maintenance payload.
type InventorySummary struct {
	Total      int                      `json:"total"`
	ByStatus   map[model.LeadStatus]int `json:"by_status"`
	Thresholds []model.BucketCount      `json:"thresholds"`
	FetchedAt  time.Time                `json:"fetched_at"`
}
