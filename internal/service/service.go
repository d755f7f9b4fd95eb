package service

import (
	"context"
	"time"

	"dlccontrol/internal/dlc"
	"dlccontrol/internal/logger"
	"dlccontrol/internal/models"
	"dlccontrol/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Laser serialises access to the settings facade.
type Laser interface {
	Parameters(ctx context.Context) (models.Parameters, error)
	Limits() models.Limits
	EmissionStatus(ctx context.Context) (models.EmissionStatus, error)
	SetCurrentEnabled(ctx context.Context, enabled bool) error
	SetWavelength(ctx context.Context, nm float64) error
	SetTemperature(ctx context.Context, celsius float64) error
	SetScan(ctx context.Context, p ScanParams) (models.ScanParameters, error)
	SetRemote(ctx context.Context, unit models.RemoteUnit, p RemoteParams) (models.RemoteParameters, error)
	SetUserLevel(ctx context.Context, level models.UserLevel, password string) (models.UserLevel, error)
	Close() error
}

// Snapshots takes and stores parameter snapshots.
type Snapshots interface {
	Take(ctx context.Context, source string) (models.Snapshot, error)
	List(ctx context.Context, f SnapshotFilter) ([]models.Snapshot, error)
}

// EventLog exposes the settings audit log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.SettingEvent, error)
}

// Monitor stores a snapshot every interval until ctx is canceled.
type Monitor interface {
	Run(ctx context.Context, interval time.Duration)
}

type Service struct {
	Laser
	Snapshots
	EventLog
	Monitor
	Authorization
}

// Config carries the settings the services need beyond the repositories.
type Config struct {
	SigningKey string
	TokenTTL   time.Duration
	Logger     *logger.Logger
}

// NewService wires the repositories and the controller into the services.
// The controller should have been opened with repos.EventRepo as its
// recorder so every write lands in the audit log.
func NewService(repos *repository.Repository, ctrl *dlc.Controller, cfg Config) *Service {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	laser := NewLaserService(ctrl)
	snapshots := NewSnapshotService(laser, repos.Snapshots, repos.EventRepo)
	return &Service{
		Laser:         laser,
		Snapshots:     snapshots,
		EventLog:      NewEventLogService(repos.EventRepo),
		Monitor:       NewMonitorService(snapshots, repos.EventRepo, log),
		Authorization: NewAuthService(repos.Auth, cfg.SigningKey, cfg.TokenTTL),
	}
}
