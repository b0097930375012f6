package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "auditor",
			Password: "secret",
			DBName:   "leads",
		},
		Discord: DiscordConfig{
			WebhookURL: "https://discord.com/api/webhooks/1/token",
		},
		Auditor: AuditorConfig{
			PollInterval:     5 * time.Minute,
			HotLeadThreshold: 80,
			DigestBuckets:    []int{80, 70, 60, 50},
			DigestHourUTC:    9,
			DedupBackend:     DedupBackendMemory,
		},
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, validate(&cfg))
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
		errMsg string
	}{
		{
			name:   "missing postgres user",
			mutate: func(cfg *Config) { cfg.Postgres.User = "" },
			errMsg: "postgres.user",
		},
		{
			name: "no channel configured",
			mutate: func(cfg *Config) {
				cfg.Discord.WebhookURL = ""
			},
			errMsg: "at least one channel",
		},
		{
			name: "telegram without chat id",
			mutate: func(cfg *Config) {
				cfg.Telegram.BotToken = "123:abc"
			},
			errMsg: "telegram.chat_id",
		},
		{
			name: "tracker without base url",
			mutate: func(cfg *Config) {
				cfg.Tracker.APIKey = "key"
			},
			errMsg: "tracker.base_url",
		},
		{
			name: "redis backend without host",
			mutate: func(cfg *Config) {
				cfg.Auditor.DedupBackend = DedupBackendRedis
			},
			errMsg: "redis.host",
		},
		{
			name:   "unknown dedup backend",
			mutate: func(cfg *Config) { cfg.Auditor.DedupBackend = "disk" },
			errMsg: "dedup_backend",
		},
		{
			name:   "threshold out of range",
			mutate: func(cfg *Config) { cfg.Auditor.HotLeadThreshold = 120 },
			errMsg: "hot_lead_threshold",
		},
		{
			name:   "empty digest buckets",
			mutate: func(cfg *Config) { cfg.Auditor.DigestBuckets = nil },
			errMsg: "digest_buckets",
		},
		{
			name:   "digest hour out of range",
			mutate: func(cfg *Config) { cfg.Auditor.DigestHourUTC = 24 },
			errMsg: "digest_hour_utc",
		},
		{
			name:   "non-positive poll interval",
			mutate: func(cfg *Config) { cfg.Auditor.PollInterval = 0 },
			errMsg: "poll_interval",
		},
		{
			name: "minio enabled without credentials",
			mutate: func(cfg *Config) {
				cfg.MinIO.Enabled = true
				cfg.MinIO.Endpoint = "localhost:9000"
			},
			errMsg: "minio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := validate(&cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
