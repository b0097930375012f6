package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auditor-srv/internal/channel"
	"auditor-srv/internal/model"
	pkgLog "auditor-srv/pkg/log"
	"auditor-srv/pkg/telegram"
)

type implChannel struct {
	l   pkgLog.Logger
	bot telegram.IBot
}

var _ channel.Channel = &implChannel{}

// New wraps the bot client as a notification channel.
func New(l pkgLog.Logger, bot telegram.IBot) *implChannel {
	return &implChannel{l: l, bot: bot}
}

func (c *implChannel) Name() string {
	return channel.NameTelegram
}

func severityPrefix(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "🚨"
	case model.SeverityWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// render flattens the structured message to Markdown text.
func render(msg channel.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n", severityPrefix(msg.Severity), msg.Title)
	if msg.Body != "" {
		b.WriteString(msg.Body)
		b.WriteString("\n")
	}
	for _, f := range msg.Fields {
		value := f.Value
		if value == "" {
			value = "N/A"
		}
		fmt.Fprintf(&b, "• %s: %s\n", f.Label, value)
	}
	if msg.Footer != "" {
		fmt.Fprintf(&b, "_%s_", msg.Footer)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *implChannel) Deliver(ctx context.Context, msg channel.Message) model.DeliveryResult {
	start := time.Now()

	if err := c.bot.Send(ctx, render(msg)); err != nil {
		c.l.Errorf(ctx, "internal.channel.telegram.Deliver: %v", err)
		return model.DeliveryResult{OK: false, Reason: err.Error(), Elapsed: time.Since(start)}
	}
	return model.DeliveryResult{OK: true, Elapsed: time.Since(start)}
}
