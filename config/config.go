package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration. Loaded once at startup; never
// reloaded mid-run.
type Config struct {
	Environment EnvironmentConfig

	Server ServerConfig
	Logger LoggerConfig

	Postgres PostgresConfig
	Redis    RedisConfig
	MinIO    MinIOConfig

	Discord  DiscordConfig
	Telegram TelegramConfig
	Tracker  TrackerConfig

	Auditor AuditorConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// ServerConfig is the configuration for the HTTP maintenance server.
type ServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PostgresConfig is the configuration for the lead store database.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig is the configuration for the optional Redis dedup store.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// MinIOConfig is the configuration for the optional digest archive.
type MinIOConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// DiscordConfig is the configuration for the Discord webhook channel.
type DiscordConfig struct {
	WebhookURL string
}

// TelegramConfig is the configuration for the Telegram bot channel.
type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// TrackerConfig is the configuration for the task-tracker channel.
type TrackerConfig struct {
	BaseURL string
	APIKey  string
	ListID  string
}

// AuditorConfig tunes the audit loop and its rules.
type AuditorConfig struct {
	PollInterval     time.Duration
	DeliveryTimeout  time.Duration
	HotLeadThreshold int
	DigestBuckets    []int
	DigestHourUTC    int
	FetchLimit       int
	DedupBackend     string // "memory" or "redis"
}

// Dedup backend names.
const (
	DedupBackendMemory = "memory"
	DedupBackendRedis  = "redis"
)

// Load loads configuration using Viper. A config file is optional;
// environment variables always override.
func Load() (*Config, error) {
	viper.SetConfigName("auditor-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/auditor/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables.
	}

	cfg := &Config{}

	// Environment
	cfg.Environment.Name = viper.GetString("environment.name")

	// Server
	cfg.Server.Host = viper.GetString("server.host")
	cfg.Server.Port = viper.GetInt("server.port")
	cfg.Server.Mode = viper.GetString("server.mode")

	// Logger
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Postgres
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	// MinIO
	cfg.MinIO.Enabled = viper.GetBool("minio.enabled")
	cfg.MinIO.Endpoint = viper.GetString("minio.endpoint")
	cfg.MinIO.AccessKey = viper.GetString("minio.access_key")
	cfg.MinIO.SecretKey = viper.GetString("minio.secret_key")
	cfg.MinIO.UseSSL = viper.GetBool("minio.use_ssl")
	cfg.MinIO.Bucket = viper.GetString("minio.bucket")

	// Channels
	cfg.Discord.WebhookURL = viper.GetString("discord.webhook_url")
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.ChatID = viper.GetInt64("telegram.chat_id")
	cfg.Tracker.BaseURL = viper.GetString("tracker.base_url")
	cfg.Tracker.APIKey = viper.GetString("tracker.api_key")
	cfg.Tracker.ListID = viper.GetString("tracker.list_id")

	// Auditor
	cfg.Auditor.PollInterval = viper.GetDuration("auditor.poll_interval")
	cfg.Auditor.DeliveryTimeout = viper.GetDuration("auditor.delivery_timeout")
	cfg.Auditor.HotLeadThreshold = viper.GetInt("auditor.hot_lead_threshold")
	cfg.Auditor.DigestBuckets = viper.GetIntSlice("auditor.digest_buckets")
	cfg.Auditor.DigestHourUTC = viper.GetInt("auditor.digest_hour_utc")
	cfg.Auditor.FetchLimit = viper.GetInt("auditor.fetch_limit")
	cfg.Auditor.DedupBackend = viper.GetString("auditor.dedup_backend")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8082)
	viper.SetDefault("server.mode", "release")

	// Logger
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("logger.color_enabled", false)

	// Postgres
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.sslmode", "disable")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	// MinIO
	viper.SetDefault("minio.enabled", false)
	viper.SetDefault("minio.use_ssl", false)
	viper.SetDefault("minio.bucket", "audit-digests")

	// Auditor
	viper.SetDefault("auditor.poll_interval", 5*time.Minute)
	viper.SetDefault("auditor.delivery_timeout", 10*time.Second)
	viper.SetDefault("auditor.hot_lead_threshold", 80)
	viper.SetDefault("auditor.digest_buckets", []int{80, 70, 60, 50})
	viper.SetDefault("auditor.digest_hour_utc", 9)
	viper.SetDefault("auditor.fetch_limit", 500)
	viper.SetDefault("auditor.dedup_backend", DedupBackendMemory)
}

func validate(cfg *Config) error {
	// Postgres
	if cfg.Postgres.User == "" {
		return fmt.Errorf("postgres.user is required")
	}
	if cfg.Postgres.Password == "" {
		return fmt.Errorf("postgres.password is required")
	}
	if cfg.Postgres.DBName == "" {
		return fmt.Errorf("postgres.dbname is required")
	}

	// At least one notification channel must be configured.
	if cfg.Discord.WebhookURL == "" && cfg.Telegram.BotToken == "" && cfg.Tracker.APIKey == "" {
		return fmt.Errorf("at least one channel must be configured (discord.webhook_url, telegram.bot_token or tracker.api_key)")
	}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	if cfg.Tracker.APIKey != "" && cfg.Tracker.BaseURL == "" {
		return fmt.Errorf("tracker.base_url is required when tracker.api_key is set")
	}

	// Auditor
	switch cfg.Auditor.DedupBackend {
	case DedupBackendMemory:
	case DedupBackendRedis:
		if cfg.Redis.Host == "" {
			return fmt.Errorf("redis.host is required when auditor.dedup_backend is %q", DedupBackendRedis)
		}
	default:
		return fmt.Errorf("auditor.dedup_backend must be %q or %q", DedupBackendMemory, DedupBackendRedis)
	}
	if cfg.Auditor.HotLeadThreshold < 0 || cfg.Auditor.HotLeadThreshold > 100 {
		return fmt.Errorf("auditor.hot_lead_threshold must be within 0-100")
	}
	if len(cfg.Auditor.DigestBuckets) == 0 {
		return fmt.Errorf("auditor.digest_buckets must not be empty")
	}
	if cfg.Auditor.DigestHourUTC < 0 || cfg.Auditor.DigestHourUTC > 23 {
		return fmt.Errorf("auditor.digest_hour_utc must be within 0-23")
	}
	if cfg.Auditor.PollInterval <= 0 {
		return fmt.Errorf("auditor.poll_interval must be positive")
	}

	// MinIO
	if cfg.MinIO.Enabled {
		if cfg.MinIO.Endpoint == "" || cfg.MinIO.AccessKey == "" || cfg.MinIO.SecretKey == "" {
			return fmt.Errorf("minio.endpoint, minio.access_key and minio.secret_key are required when minio.enabled is true")
		}
	}

	return nil
}
