package discord

import (
	"context"
	"time"

	"auditor-srv/internal/channel"
	"auditor-srv/internal/model"
	"auditor-srv/pkg/discord"
	pkgLog "auditor-srv/pkg/log"
)

type implChannel struct {
	l      pkgLog.Logger
	client discord.IDiscord
}

var _ channel.Channel = &implChannel{}

// New wraps the webhook client as a notification channel.
func New(l pkgLog.Logger, client discord.IDiscord) *implChannel {
	return &implChannel{l: l, client: client}
}

func (c *implChannel) Name() string {
	return channel.NameDiscord
}

func severityToType(s model.Severity) discord.MessageType {
	switch s {
	case model.SeverityCritical:
		return discord.MessageTypeError
	case model.SeverityWarning:
		return discord.MessageTypeWarning
	default:
		return discord.MessageTypeInfo
	}
}

func (c *implChannel) Deliver(ctx context.Context, msg channel.Message) model.DeliveryResult {
	start := time.Now()

	fields := make([]discord.EmbedField, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		value := f.Value
		if value == "" {
			value = "N/A"
		}
		fields = append(fields, discord.EmbedField{
			Name:   f.Label,
			Value:  value,
			Inline: f.Inline,
		})
	}

	opts := discord.MessageOptions{
		Type:        severityToType(msg.Severity),
		Title:       msg.Title,
		Description: msg.Body,
		Fields:      fields,
		Timestamp:   msg.Timestamp,
	}
	if msg.Footer != "" {
		opts.Footer = &discord.EmbedFooter{Text: msg.Footer}
	}

	if err := c.client.SendEmbed(ctx, opts); err != nil {
		c.l.Errorf(ctx, "internal.channel.discord.Deliver: %v", err)
		return model.DeliveryResult{OK: false, Reason: err.Error(), Elapsed: time.Since(start)}
	}
	return model.DeliveryResult{OK: true, Elapsed: time.Since(start)}
}
