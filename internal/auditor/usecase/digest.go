package usecase

import (
	"sort"
	"time"

	"auditor-srv/internal/model"
)

// computeDigest aggregates the snapshot into cumulative per-threshold
// counts of new leads: a lead scoring 85 counts toward every bucket at or
// below 85 ("Leads with Score >= N").
func computeDigest(leads []model.Lead, buckets []int, now time.Time) model.DigestCounts {
	thresholds := make([]int, len(buckets))
	copy(thresholds, buckets)
	sort.Sort(sort.Reverse(sort.IntSlice(thresholds)))

	counts := model.DigestCounts{
		Date:       now.UTC().Format("2006-01-02"),
		Thresholds: make([]model.BucketCount, len(thresholds)),
	}
	for i, th := range thresholds {
		counts.Thresholds[i] = model.BucketCount{Threshold: th}
	}

	for _, l := range leads {
		if l.Status != model.LeadStatusNew {
			continue
		}
		counts.Total++
		for i, th := range thresholds {
			if l.Score >= th {
				counts.Thresholds[i].Count++
			}
		}
	}
	return counts
}
