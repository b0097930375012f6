package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"auditor-srv/pkg/log"
)

var (
	errTokenRequired  = errors.New("telegram: bot token is required")
	errChatIDRequired = errors.New("telegram: chat ID is required")
)

const defaultTimeout = 15 * time.Second

// IBot is the outbound-only Telegram client used by the bot notification
// channel. The auditor never polls for updates, it only pushes messages
// to a fixed chat.
type IBot interface {
	Send(ctx context.Context, text string) error
	ChatID() int64
}

// Config holds bot client configuration.
type Config struct {
	Token   string
	ChatID  int64
	Timeout time.Duration

	// Offline skips the getMe call at startup (used in tests).
	Offline bool
}

func teleHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

type botImpl struct {
	l      log.Logger
	bot    *tele.Bot
	chatID int64
}

// New builds a send-only Telegram bot client.
func New(l log.Logger, cfg Config) (IBot, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errTokenRequired
	}
	if cfg.ChatID == 0 {
		return nil, errChatIDRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	b, err := tele.NewBot(tele.Settings{
		Token:   cfg.Token,
		Offline: cfg.Offline,
		Client:  teleHTTPClient(timeout),
	})
	if err != nil {
		return nil, err
	}
	return &botImpl{l: l, bot: b, chatID: cfg.ChatID}, nil
}

func (b *botImpl) ChatID() int64 {
	return b.chatID
}

// Send pushes a Markdown message to the configured chat. telebot carries no
// context through its API, so the caller's deadline is enforced by the
// underlying HTTP client timeout; ctx is still checked up front so an
// already-cancelled cycle does not issue the call.
func (b *botImpl) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.bot.Send(tele.ChatID(b.chatID), text, tele.ModeMarkdown)
	if err != nil && b.l != nil {
		b.l.Errorf(ctx, "pkg.telegram.Send: %v", err)
	}
	return err
}
