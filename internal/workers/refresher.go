package workers

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/FBSocial/subway2-team-activities/internal/common/logger"
	"github.com/FBSocial/subway2-team-activities/internal/features/activity/repository"
	activityservice "github.com/FBSocial/subway2-team-activities/internal/features/activity/service"
)

// SnapshotRefresher keeps cached snapshots warm: on every tick it
// re-fetches the snapshot of each viewer currently present in the
// cache, so interactive loads rarely pay the upstream round trip.
type SnapshotRefresher struct {
	scheduler *gocron.Scheduler
	service   activityservice.ActivityService
	cache     repository.SnapshotCache
	interval  time.Duration
}

func NewSnapshotRefresher(service activityservice.ActivityService, cache repository.SnapshotCache, interval time.Duration) *SnapshotRefresher {
	return &SnapshotRefresher{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		cache:     cache,
		interval:  interval,
	}
}

func (r *SnapshotRefresher) Start() error {
	if _, err := r.scheduler.Every(r.interval).Do(r.refreshAll); err != nil {
		return err
	}
	r.scheduler.StartAsync()
	logger.Info().Dur("interval", r.interval).Msg("snapshot refresher started")
	return nil
}

func (r *SnapshotRefresher) Stop() {
	r.scheduler.Stop()
}

func (r *SnapshotRefresher) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), r.interval)
	defer cancel()

	keys, err := r.cache.SnapshotViewerKeys(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("snapshot refresher: listing viewers failed")
		return
	}

	refreshed := 0
	for _, key := range keys {
		if err := r.service.Refresh(ctx, key); err != nil {
			logger.Warn().Err(err).Msg("snapshot refresher: refresh failed")
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		logger.Debug().Int("refreshed", refreshed).Msg("snapshot refresher tick")
	}
}
