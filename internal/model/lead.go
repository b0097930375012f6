package model

import (
	"fmt"
	"time"
)

// LeadStatus is the pipeline status of a lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusClosed    LeadStatus = "closed"
	LeadStatusLost      LeadStatus = "lost"
)

// IsValid reports whether s is a known lead status.
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusClosed, LeadStatusLost:
		return true
	}
	return false
}

// Lead is a read-only snapshot of a lead record owned by the lead store.
// The auditor never mutates leads except through UpdateStatus.
type Lead struct {
	ID           string            `json:"id"`
	BusinessName string            `json:"business_name"`
	ContactEmail *string           `json:"contact_email,omitempty"`
	Score        int               `json:"score"`
	Status       LeadStatus        `json:"status"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Validate checks the invariants a rule evaluation relies on.
func (l Lead) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("lead has no id")
	}
	if l.Score < 0 || l.Score > 100 {
		return fmt.Errorf("lead %s has score %d outside 0-100", l.ID, l.Score)
	}
	if !l.Status.IsValid() {
		return fmt.Errorf("lead %s has unknown status %q", l.ID, l.Status)
	}
	return nil
}

// ScoreDecade returns the decade bucket of the score (85 -> 8). Used in
// hot-lead dedup keys so a lead that is reset and later re-qualifies in a
// higher bucket can alert again.
func (l Lead) ScoreDecade() int {
	d := l.Score / 10
	if d > 10 {
		d = 10
	}
	return d
}
