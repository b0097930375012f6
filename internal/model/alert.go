package model

import "time"

// AlertKind identifies the rule family that produced an alert.
type AlertKind string

const (
	AlertKindHotLead     AlertKind = "hot_lead"
	AlertKindOverdueTask AlertKind = "overdue_task"
	AlertKindDailyDigest AlertKind = "daily_digest"
	AlertKindHealthCheck AlertKind = "health_check"
)

// DedupBucket scopes a dedup key in time.
type DedupBucket string

const (
	// DedupBucketNone marks a one-shot alert: at most one successful
	// delivery ever for a given key.
	DedupBucketNone DedupBucket = "none"
	// DedupBucketDay allows one successful delivery per UTC calendar day.
	DedupBucketDay DedupBucket = "day"
)

// Severity drives channel-specific formatting (embed color, emoji).
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// AlertEvent is one concrete firing of a rule within a dispatch cycle.
// It is created when a rule fires and terminates (delivered, failed or
// suppressed) before the cycle ends.
type AlertEvent struct {
	ID        string                    `json:"id"`
	Kind      AlertKind                 `json:"kind"`
	RuleID    string                    `json:"rule_id"`
	LeadID    string                    `json:"lead_id,omitempty"`
	DedupKey  string                    `json:"dedup_key"`
	Bucket    DedupBucket               `json:"bucket"`
	Targets   []string                  `json:"targets"`
	Results   map[string]DeliveryResult `json:"results,omitempty"`
	CreatedAt time.Time                 `json:"created_at"`
}

// Fired reports whether at least one target channel accepted the event
// (the default any-success dedup policy).
func (e AlertEvent) Fired() bool {
	for _, r := range e.Results {
		if r.OK {
			return true
		}
	}
	return false
}

// DeliveryResult is the per-channel outcome of one delivery attempt.
type DeliveryResult struct {
	OK      bool          `json:"ok"`
	Reason  string        `json:"reason,omitempty"`
	Elapsed time.Duration `json:"elapsed,omitempty"`
}

// CycleReport summarizes one audit cycle for logging and the maintenance API.
type CycleReport struct {
	CycleID      string       `json:"cycle_id"`
	StartedAt    time.Time    `json:"started_at"`
	FinishedAt   time.Time    `json:"finished_at"`
	LeadsFetched int          `json:"leads_fetched"`
	Evaluated    int          `json:"evaluated"`
	Fired        int          `json:"fired"`
	Suppressed   int          `json:"suppressed"`
	Failed       int          `json:"failed"`
	StoreHealthy bool         `json:"store_healthy"`
	Events       []AlertEvent `json:"events,omitempty"`
}

// DigestCounts is the daily-digest payload: cumulative counts of new leads
// at or above each configured score threshold ("Leads with Score >= N").
type DigestCounts struct {
	Date       string        `json:"date"`
	Total      int           `json:"total"`
	Thresholds []BucketCount `json:"thresholds"`
}

// BucketCount is one digest line.
type BucketCount struct {
	Threshold int `json:"threshold"`
	Count     int `json:"count"`
}
