package usecase

import (
	"sync"
	"time"

	"auditor-srv/internal/auditor"
	"auditor-srv/internal/channel"
	"auditor-srv/internal/dedup"
	"auditor-srv/internal/lead/repository"
	pkgLog "auditor-srv/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	cfg      auditor.Config
	repo     repository.Repository
	channels []channel.Channel
	tasks    auditor.TaskSource // nil when no tracker is configured
	dedup    dedup.Tracker
	archiver auditor.Archiver // nil when the digest archive is disabled
	clock    func() time.Time

	// cycleMu guarantees cycles never overlap; the scheduled loop and the
	// HTTP manual trigger contend on it.
	cycleMu sync.Mutex

	// Last successful lead-count observation, for the zero-leads anomaly
	// check of the health rule.
	prevMu       sync.Mutex
	prevCount    int
	prevObserved bool
}

var _ auditor.UseCase = &implUseCase{}

func New(
	l pkgLog.Logger,
	cfg auditor.Config,
	repo repository.Repository,
	channels []channel.Channel,
	tasks auditor.TaskSource,
	dedupTracker dedup.Tracker,
	archiver auditor.Archiver,
) (auditor.UseCase, error) {
	if len(channels) == 0 {
		return nil, auditor.ErrNoChannels
	}

	if cfg.HotLeadThreshold <= 0 {
		cfg.HotLeadThreshold = 80
	}
	if len(cfg.DigestBuckets) == 0 {
		cfg.DigestBuckets = []int{80, 70, 60, 50}
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Minute
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = 10 * time.Second
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 500
	}

	return &implUseCase{
		l:        l,
		cfg:      cfg,
		repo:     repo,
		channels: channels,
		tasks:    tasks,
		dedup:    dedupTracker,
		archiver: archiver,
		clock:    time.Now,
	}, nil
}

// channelNames returns every configured channel name, in wiring order.
func (uc *implUseCase) channelNames() []string {
	names := make([]string, 0, len(uc.channels))
	for _, c := range uc.channels {
		names = append(names, c.Name())
	}
	return names
}

// chatTargets returns every channel except the task tracker. Digest, health
// and overdue alerts go to chat destinations only; pushing them into the
// tracker would create tasks about tasks.
func (uc *implUseCase) chatTargets() []string {
	names := make([]string, 0, len(uc.channels))
	for _, c := range uc.channels {
		if c.Name() == channel.NameTracker {
			continue
		}
		names = append(names, c.Name())
	}
	return names
}

func (uc *implUseCase) channelByName(name string) channel.Channel {
	for _, c := range uc.channels {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
