package main

import (
	"context"
	"fmt"

	"auditor-srv/config"
	minioConfig "auditor-srv/config/minio"
	"auditor-srv/config/postgre"
	redisConfig "auditor-srv/config/redis"
	"auditor-srv/internal/archive"
	"auditor-srv/internal/auditor"
	"auditor-srv/internal/auditor/source"
	auditorUC "auditor-srv/internal/auditor/usecase"
	"auditor-srv/internal/channel"
	discordChannel "auditor-srv/internal/channel/discord"
	telegramChannel "auditor-srv/internal/channel/telegram"
	trackerChannel "auditor-srv/internal/channel/tracker"
	"auditor-srv/internal/dedup"
	dedupMemory "auditor-srv/internal/dedup/memory"
	dedupRedis "auditor-srv/internal/dedup/redis"
	"auditor-srv/internal/httpserver"
	leadPostgres "auditor-srv/internal/lead/repository/postgre"
	"auditor-srv/pkg/discord"
	"auditor-srv/pkg/log"
	pkgRedis "auditor-srv/pkg/redis"
	"auditor-srv/pkg/telegram"
	"auditor-srv/pkg/tracker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:    cfg.Logger.Level,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
	})

	ctx := context.Background()

	// Initialize PostgreSQL (lead store)
	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer postgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// Initialize Redis when the durable dedup backend is configured
	var redisClient pkgRedis.IRedis
	if cfg.Auditor.DedupBackend == config.DedupBackendRedis {
		redisClient, err = redisConfig.Connect(ctx, cfg.Redis)
		if err != nil {
			logger.Error(ctx, "Failed to connect to Redis: ", err)
			return
		}
		defer redisConfig.Disconnect()
		logger.Infof(ctx, "Redis connected successfully to %s:%d", cfg.Redis.Host, cfg.Redis.Port)
	}

	// Initialize notification channels
	var channels []channel.Channel
	var trackerClient tracker.ITracker

	if cfg.Discord.WebhookURL != "" {
		discordClient, err := discord.New(logger, cfg.Discord.WebhookURL)
		if err != nil {
			logger.Error(ctx, "Failed to initialize Discord: ", err)
			return
		}
		defer discordClient.Close()
		channels = append(channels, discordChannel.New(logger, discordClient))
	}

	if cfg.Telegram.BotToken != "" {
		bot, err := telegram.New(logger, telegram.Config{
			Token:  cfg.Telegram.BotToken,
			ChatID: cfg.Telegram.ChatID,
		})
		if err != nil {
			logger.Error(ctx, "Failed to initialize Telegram: ", err)
			return
		}
		channels = append(channels, telegramChannel.New(logger, bot))
	}

	if cfg.Tracker.BaseURL != "" {
		trackerClient, err = tracker.New(logger, tracker.Config{
			BaseURL: cfg.Tracker.BaseURL,
			APIKey:  cfg.Tracker.APIKey,
			ListID:  cfg.Tracker.ListID,
		})
		if err != nil {
			logger.Error(ctx, "Failed to initialize task tracker: ", err)
			return
		}
		defer trackerClient.Close()
		channels = append(channels, trackerChannel.New(logger, trackerClient))
	}

	// Initialize dedup tracker
	var dedupTracker dedup.Tracker
	if cfg.Auditor.DedupBackend == config.DedupBackendRedis {
		dedupTracker = dedupRedis.New(logger, redisClient)
	} else {
		dedupTracker = dedupMemory.New()
	}

	// Initialize MinIO digest archive (optional)
	var archiver auditor.Archiver
	if cfg.MinIO.Enabled {
		minioClient, err := minioConfig.Connect(ctx, cfg.MinIO)
		if err != nil {
			logger.Error(ctx, "Failed to connect to MinIO: ", err)
			return
		}
		defer minioConfig.Disconnect()
		logger.Infof(ctx, "MinIO connected successfully to %s", cfg.MinIO.Endpoint)
		archiver = archive.NewDigestArchive(logger, minioClient, cfg.MinIO.Bucket)
	}

	// Initialize task source for the overdue rule
	var taskSource auditor.TaskSource
	if trackerClient != nil {
		taskSource = source.NewTrackerSource(logger, trackerClient)
	}

	// Initialize auditor usecase
	uc, err := auditorUC.New(
		logger,
		auditor.Config{
			PollInterval:     cfg.Auditor.PollInterval,
			DeliveryTimeout:  cfg.Auditor.DeliveryTimeout,
			HotLeadThreshold: cfg.Auditor.HotLeadThreshold,
			DigestBuckets:    cfg.Auditor.DigestBuckets,
			DigestHourUTC:    cfg.Auditor.DigestHourUTC,
			FetchLimit:       cfg.Auditor.FetchLimit,
		},
		leadPostgres.New(logger, postgresDB),
		channels,
		taskSource,
		dedupTracker,
		archiver,
	)
	if err != nil {
		logger.Error(ctx, "Failed to initialize auditor: ", err)
		return
	}

	// Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
		Mode: cfg.Server.Mode,

		AuditorUC: uc,
		Redis:     redisClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
