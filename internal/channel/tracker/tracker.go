package tracker

import (
	"context"
	"time"

	"auditor-srv/internal/channel"
	"auditor-srv/internal/model"
	pkgLog "auditor-srv/pkg/log"
	"auditor-srv/pkg/tracker"
)

type implChannel struct {
	l      pkgLog.Logger
	client tracker.ITracker
}

var _ channel.Channel = &implChannel{}

// New wraps the tracker API client as a notification channel. Delivery
// means creating a follow-up task, so only messages carrying a TaskSpec
// can be delivered here.
func New(l pkgLog.Logger, client tracker.ITracker) *implChannel {
	return &implChannel{l: l, client: client}
}

func (c *implChannel) Name() string {
	return channel.NameTracker
}

func (c *implChannel) Deliver(ctx context.Context, msg channel.Message) model.DeliveryResult {
	start := time.Now()

	if msg.Task == nil {
		// The dispatcher only targets the tracker for rules that render a
		// task payload; reaching this is a wiring bug, not a transport error.
		c.l.Warnf(ctx, "internal.channel.tracker.Deliver: message %q has no task payload", msg.Title)
		return model.DeliveryResult{OK: false, Reason: "no task payload", Elapsed: time.Since(start)}
	}

	_, err := c.client.CreateTask(ctx, tracker.CreateTaskInput{
		Title:       msg.Task.Title,
		Description: msg.Task.Description,
		DueDate:     msg.Task.DueDate,
		LeadID:      msg.Task.LeadID,
	})
	if err != nil {
		c.l.Errorf(ctx, "internal.channel.tracker.Deliver: %v", err)
		return model.DeliveryResult{OK: false, Reason: err.Error(), Elapsed: time.Since(start)}
	}
	return model.DeliveryResult{OK: true, Elapsed: time.Since(start)}
}
