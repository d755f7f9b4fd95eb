package service

import (
	"context"
	"fmt"
	"time"

	"dlccontrol/internal/models"
	"dlccontrol/internal/repository"

	"github.com/google/uuid"
)

type parameterReader interface {
	Parameters(ctx context.Context) (models.Parameters, error)
}

type SnapshotService struct {
	laser     parameterReader
	repo      repository.SnapshotRepo
	eventRepo repository.EventRepo
}

func NewSnapshotService(laser parameterReader, repo repository.SnapshotRepo, eventRepo repository.EventRepo) *SnapshotService {
	return &SnapshotService{laser: laser, repo: repo, eventRepo: eventRepo}
}

// Take reads the current parameters, stores them and logs a SNAPSHOT event.
func (s *SnapshotService) Take(ctx context.Context, source string) (models.Snapshot, error) {
	p, err := s.laser.Parameters(ctx)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read parameters: %w", err)
	}
	snap := models.Snapshot{
		ID:         uuid.NewString(),
		TakenAt:    p.Timestamp.UTC(),
		Source:     source,
		Parameters: p,
	}
	if snap.TakenAt.IsZero() {
		snap.TakenAt = time.Now().UTC()
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		return models.Snapshot{}, err
	}
	err = s.eventRepo.Append(ctx, models.SettingEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  snap.TakenAt,
		Type:        "SNAPSHOT",
		Description: "Parameter snapshot stored (" + source + ")",
		Metadata:    map[string]any{"snapshot_id": snap.ID},
	})
	return snap, err
}

func (s *SnapshotService) List(ctx context.Context, f SnapshotFilter) ([]models.Snapshot, error) {
	from, to := normalizeToUTC(f.From), normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, ErrInvalidTimeRange
	}
	return s.repo.List(ctx, from, to, f.Limit)
}
