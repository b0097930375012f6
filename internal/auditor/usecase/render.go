package usecase

import (
	"fmt"
	"strconv"
	"time"

	"auditor-srv/internal/channel"
	"auditor-srv/internal/model"
)

const footerText = "Lead Auditor"

func (uc *implUseCase) renderHotLead(l model.Lead, now time.Time) channel.Message {
	fields := []channel.Field{
		{Label: "Business", Value: l.BusinessName, Inline: true},
		{Label: "Score", Value: strconv.Itoa(l.Score), Inline: true},
		{Label: "Status", Value: string(l.Status), Inline: true},
	}
	if l.ContactEmail != nil {
		fields = append(fields, channel.Field{Label: "Contact", Value: *l.ContactEmail, Inline: true})
	}
	if source, ok := l.Metadata["source"]; ok {
		fields = append(fields, channel.Field{Label: "Source", Value: source, Inline: true})
	}

	due := now.Add(24 * time.Hour)
	return channel.Message{
		Kind:      model.AlertKindHotLead,
		Severity:  model.SeverityCritical,
		Title:     fmt.Sprintf("🔥 Hot Lead: %s", l.BusinessName),
		Body:      fmt.Sprintf("Lead scored **%d** (threshold %d) and has not been contacted yet.", l.Score, uc.cfg.HotLeadThreshold),
		Fields:    fields,
		Footer:    footerText,
		Timestamp: now,
		Task: &channel.TaskSpec{
			Title:       fmt.Sprintf("Follow up hot lead: %s", l.BusinessName),
			Description: fmt.Sprintf("Score %d, status %s. Reach out within 24h.", l.Score, l.Status),
			DueDate:     &due,
			LeadID:      l.ID,
		},
	}
}

func (uc *implUseCase) renderOverdueTask(t model.TrackedTask, now time.Time) channel.Message {
	overdueFor := "unknown"
	if t.DueDate != nil {
		overdueFor = now.Sub(*t.DueDate).Round(time.Hour).String()
	}
	fields := []channel.Field{
		{Label: "Task", Value: t.Title, Inline: false},
		{Label: "Overdue for", Value: overdueFor, Inline: true},
	}
	if t.URL != "" {
		fields = append(fields, channel.Field{Label: "Link", Value: t.URL, Inline: false})
	}
	return channel.Message{
		Kind:      model.AlertKindOverdueTask,
		Severity:  model.SeverityWarning,
		Title:     "⏰ Overdue Follow-up",
		Body:      fmt.Sprintf("Task **%s** is past its due date and still open.", t.Title),
		Fields:    fields,
		Footer:    footerText,
		Timestamp: now,
	}
}

func (uc *implUseCase) renderDigest(counts model.DigestCounts, now time.Time) channel.Message {
	fields := make([]channel.Field, 0, len(counts.Thresholds)+1)
	for _, bc := range counts.Thresholds {
		fields = append(fields, channel.Field{
			Label:  fmt.Sprintf("Leads with Score >= %d", bc.Threshold),
			Value:  strconv.Itoa(bc.Count),
			Inline: true,
		})
	}
	fields = append(fields, channel.Field{Label: "Total new leads", Value: strconv.Itoa(counts.Total), Inline: true})

	return channel.Message{
		Kind:      model.AlertKindDailyDigest,
		Severity:  model.SeverityInfo,
		Title:     fmt.Sprintf("📊 Daily Lead Digest — %s", counts.Date),
		Body:      "Pipeline summary for leads awaiting first contact.",
		Fields:    fields,
		Footer:    footerText,
		Timestamp: now,
	}
}

func (uc *implUseCase) renderHealth(reason string, now time.Time) channel.Message {
	return channel.Message{
		Kind:     model.AlertKindHealthCheck,
		Severity: model.SeverityCritical,
		Title:    "🩺 Lead Store Health Alert",
		Body:     "The auditor could not obtain a usable lead snapshot.",
		Fields: []channel.Field{
			{Label: "Reason", Value: reason, Inline: false},
		},
		Footer:    footerText,
		Timestamp: now,
	}
}

func (uc *implUseCase) renderTest(now time.Time) channel.Message {
	return channel.Message{
		Kind:      model.AlertKindHealthCheck,
		Severity:  model.SeverityInfo,
		Title:     "✅ Lead Auditor Online",
		Body:      "Test notification — the audit pipeline is up and can reach this channel.",
		Footer:    footerText,
		Timestamp: now,
	}
}
