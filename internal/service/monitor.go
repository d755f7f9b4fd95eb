package service

import (
	"context"
	"time"

	"dlccontrol/internal/logger"
	"dlccontrol/internal/models"
	"dlccontrol/internal/repository"

	"github.com/google/uuid"
)

const monitorSource = "monitor"

type snapshotTaker interface {
	Take(ctx context.Context, source string) (models.Snapshot, error)
}

// MonitorService periodically records the laser's parameters.
type MonitorService struct {
	snapshots snapshotTaker
	eventRepo repository.EventRepo
	log       *logger.Logger
}

func NewMonitorService(snapshots snapshotTaker, eventRepo repository.EventRepo, log *logger.Logger) *MonitorService {
	return &MonitorService{snapshots: snapshots, eventRepo: eventRepo, log: log}
}

// Run ticks at the given interval until ctx is canceled. A failed snapshot
// is logged and recorded as an ERROR event; the loop keeps going.
func (s *MonitorService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.tick(ctx, now)
		}
	}
}

func (s *MonitorService) tick(ctx context.Context, now time.Time) {
	snap, err := s.snapshots.Take(ctx, monitorSource)
	if err == nil {
		s.log.Debugw("monitor_snapshot", "id", snap.ID)
		return
	}
	if ctx.Err() != nil {
		return
	}
	s.log.Warnw("monitor_snapshot_failed", "err", err)
	if aerr := s.eventRepo.Append(ctx, models.SettingEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now.UTC(),
		Type:        "ERROR",
		Description: "Periodic snapshot failed",
		Metadata:    map[string]any{"error": err.Error()},
	}); aerr != nil {
		s.log.Errorw("monitor_event_append_failed", "err", aerr)
	}
}
